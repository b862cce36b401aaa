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

// assertRule is the shared shape behind Peek, PeekNot, Require, and Prevent:
// a non-consuming probe of inner that succeeds (unconditionally, appending
// nothing) when the probe outcome matches wantMatch, or fails with onFail
// otherwise. The reader is never advanced either way.
type assertRule[U any] struct {
	inner     rule.Branch[U]
	wantMatch bool
	onFail    func(pos reader.Iterator) perror.Tag
}

func (a *assertRule[U]) IsBranch() bool        { return true }
func (a *assertRule[U]) IsToken() bool         { return false }
func (a *assertRule[U]) IsUnconditional() bool { return true }

func (a *assertRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	pos := r.Position()
	if quietProbe(c, *r, a.inner) != a.wantMatch {
		c.Fail(perror.New(a.onFail(pos), c.Production()))
		return false
	}
	return next.Parse(c, r, args)
}

func (a *assertRule[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	pos := r.Position()
	if quietProbe(c, *r, a.inner) != a.wantMatch {
		c.Fail(perror.New(a.onFail(pos), c.Production()))
		return rule.Failed, nil
	}
	return rule.Taken, nil
}

func (a *assertRule[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	// Never consumes, so there is nothing to restore.
}

func (a *assertRule[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	return next.Parse(c, r, probeArgs)
}

// Peek succeeds, consuming nothing, if inner's characteristic prefix would
// match here; a subsequent Then(Peek(inner), inner) consumes exactly what
// inner alone would have.
func Peek[U any](inner rule.Branch[U]) rule.Branch[U] {
	return &assertRule[U]{inner: inner, wantMatch: true, onFail: func(pos reader.Iterator) perror.Tag {
		return perror.PeekFailure{Pos: pos}
	}}
}

// PeekNot succeeds, consuming nothing, if inner would NOT match here.
func PeekNot[U any](inner rule.Branch[U]) rule.Branch[U] {
	return &assertRule[U]{inner: inner, wantMatch: false, onFail: func(pos reader.Iterator) perror.Tag {
		begin := pos
		return perror.Unexpected{Begin: begin, End: begin}
	}}
}

// Require is Peek under the name spec.md uses for a bare non-consuming
// assertion rather than a branch-selection probe.
func Require[U any](inner rule.Branch[U]) rule.Branch[U] { return Peek[U](inner) }

// Prevent is PeekNot under the name spec.md uses for a bare non-consuming
// negative assertion.
func Prevent[U any](inner rule.Branch[U]) rule.Branch[U] { return PeekNot[U](inner) }

// lookaheadRule implements Lookahead: search forward for needle before end
// (or EOF), without consuming either way.
type lookaheadRule[U any] struct {
	needle rule.Branch[U]
	end    rule.Branch[U]
}

// Lookahead succeeds, consuming nothing, if needle can be found scanning
// forward from here before end matches (or EOF); otherwise it fails with
// LookaheadFailure.
func Lookahead[U any](needle, end rule.Branch[U]) *lookaheadRule[U] {
	return &lookaheadRule[U]{needle: needle, end: end}
}

func (l *lookaheadRule[U]) IsBranch() bool        { return true }
func (l *lookaheadRule[U]) IsToken() bool         { return false }
func (l *lookaheadRule[U]) IsUnconditional() bool { return true }

func (l *lookaheadRule[U]) found(c *pctx.Context[U], r reader.Reader[U]) bool {
	for {
		if quietProbe(c, r, l.needle) {
			return true
		}
		if quietProbe(c, r, l.end) {
			return false
		}
		if _, ok := r.Peek(); !ok {
			return false
		}
		r.Bump()
	}
}

func (l *lookaheadRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	if !l.found(c, *r) {
		c.Fail(perror.New(perror.LookaheadFailure{Begin: begin, End: r.Position()}, c.Production()))
		return false
	}
	return next.Parse(c, r, args)
}

func (l *lookaheadRule[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	begin := r.Position()
	if !l.found(c, *r) {
		c.Fail(perror.New(perror.LookaheadFailure{Begin: begin, End: r.Position()}, c.Production()))
		return rule.Failed, nil
	}
	return rule.Taken, nil
}

func (l *lookaheadRule[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {}

func (l *lookaheadRule[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	return next.Parse(c, r, probeArgs)
}
