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
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
)

// quietProbe runs br against a throwaway copy of the reader, under a fresh
// root context sharing only the real context's control block, so the probe
// neither advances the real reader nor emits events. It is how Until and
// Minus check "does this match right here" without committing.
func quietProbe[U any](c *pctx.Context[U], at reader.Reader[U], br rule.Branch[U]) bool {
	quiet := pctx.NewRoot[U](nil, c.Control())
	outcome, _ := br.TryParse(quiet, &at)
	return outcome == rule.Taken
}

// untilRule implements Until: consume one code unit at a time until term
// matches, then consume term itself too.
type untilRule[U any] struct {
	term rule.Branch[U]
}

// Until builds a rule that skips input one code unit at a time until term's
// characteristic prefix matches, then matches term itself — the inclusive
// "read until delimiter, and consume the delimiter" idiom used to scan the
// body of a comment or an unescaped delimited span.
func Until[U any](term rule.Branch[U]) *untilRule[U] {
	return &untilRule[U]{term: term}
}

func (u *untilRule[U]) IsBranch() bool { return false }
func (u *untilRule[U]) IsToken() bool  { return false }

func (u *untilRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	for !quietProbe(c, *r, u.term) {
		if _, ok := r.Peek(); !ok {
			c.Fail(perror.New(perror.Unexpected{Begin: begin, End: r.Position()}, c.Production()))
			return false
		}
		r.Bump()
	}
	outcome, probeArgs := u.term.TryParse(c, r)
	switch outcome {
	case rule.Taken:
		return u.term.Finish(c, r, probeArgs, next)
	case rule.Failed:
		return false
	default: // Backtracked: quietProbe and the real TryParse disagreed, treat as not found.
		c.Fail(perror.New(perror.Unexpected{Begin: begin, End: r.Position()}, c.Production()))
		return false
	}
}

// minusRule implements Minus: tok must match, and additionally except must
// not match at the same starting position.
type minusRule[U any] struct {
	tok    rule.Rule[U]
	except rule.Branch[U]
}

// Minus builds a rule matching tok, unless except also matches at the same
// position, in which case it fails with MinusFailure without trying tok at
// all — the "anything but the reserved spellings" idiom.
func Minus[U any](tok rule.Rule[U], except rule.Branch[U]) *minusRule[U] {
	return &minusRule[U]{tok: tok, except: except}
}

func (m *minusRule[U]) IsBranch() bool { return false }
func (m *minusRule[U]) IsToken() bool  { return m.tok.IsToken() }

func (m *minusRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	if quietProbe(c, *r, m.except) {
		c.Fail(perror.New(perror.MinusFailure{Begin: begin, End: begin}, c.Production()))
		return false
	}
	return m.tok.Parse(c, r, args, next)
}
