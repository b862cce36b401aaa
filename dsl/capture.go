// Copyright 2026 The Parsekit Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dsl

import (
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/token"
)

// Capture wraps inner so the grammar gets a token.Lexeme spanning exactly
// what inner consumed, discarding whatever values inner itself produced.
// inner runs in a no-whitespace scope so the captured span reflects raw
// input, not whatever implicit skipping inner's own sub-rules might
// otherwise trigger mid-span; whitespace resumes being skipped once the
// whole capture completes.
func Capture[U any](inner rule.Rule[U]) rule.Rule[U] {
	if b, ok := inner.(rule.Branch[U]); ok {
		return &branchCapture[U]{inner: b}
	}
	return &plainCapture[U]{inner: inner}
}

type plainCapture[U any] struct {
	inner rule.Rule[U]
}

func (pc *plainCapture[U]) IsBranch() bool { return false }
func (pc *plainCapture[U]) IsToken() bool  { return true }

func (pc *plainCapture[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	sub := c.EnterNoWhitespace()
	if !pc.inner.Parse(sub, r, nil, rule.Accept[U]()) {
		return false
	}
	lex := token.Lexeme[U]{Begin: begin, End: r.Position()}
	c.SkipWhitespace(r)
	return next.Parse(c, r, args.Append(lex))
}

type captureWrap[U any] struct {
	begin reader.Iterator
	sub   *pctx.Context[U]
}

type branchCapture[U any] struct {
	inner rule.Branch[U]
}

func (bc *branchCapture[U]) IsBranch() bool        { return true }
func (bc *branchCapture[U]) IsToken() bool         { return true }
func (bc *branchCapture[U]) IsUnconditional() bool { return bc.inner.IsUnconditional() }

func (bc *branchCapture[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	outcome, probeArgs := bc.TryParse(c, r)
	switch outcome {
	case rule.Backtracked:
		return false
	case rule.Failed:
		return false
	default:
		return bc.Finish(c, r, probeArgs, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], produced rule.Args) bool {
			return next.Parse(c, r, args.Append(produced...))
		}))
	}
}

func (bc *branchCapture[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	begin := r.Position()
	sub := c.EnterNoWhitespace()
	outcome, probeArgs := bc.inner.TryParse(sub, r)
	if outcome == rule.Backtracked {
		return rule.Backtracked, nil
	}
	return outcome, probeArgs.Append(captureWrap[U]{begin: begin, sub: sub})
}

func (bc *branchCapture[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	end := r.Position()
	r.SetPosition(begin)
	if end != begin {
		c.On(pctx.Event[U]{Kind: pctx.Backtracked, Begin: begin, End: end})
	}
}

func (bc *branchCapture[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	w := probeArgs[len(probeArgs)-1].(captureWrap[U])
	rest := probeArgs[:len(probeArgs)-1]
	if !bc.inner.Finish(w.sub, r, rest, rule.Accept[U]()) {
		return false
	}
	lex := token.Lexeme[U]{Begin: w.begin, End: r.Position()}
	c.SkipWhitespace(r)
	return next.Parse(c, r, rule.Args{lex})
}
