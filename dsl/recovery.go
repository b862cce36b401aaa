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
)

// recoveryRule implements Try: run inner, and on failure resynchronize by
// skipping input one code unit at a time until one of limits matches (or
// EOF is reached, which the source treats as a successful recovery
// terminator), then continue as if inner had produced no values.
type recoveryRule[U any] struct {
	inner  rule.Rule[U]
	limits []rule.Branch[U]
}

// Try wraps inner so that its failure doesn't propagate: a Try rule never
// fails. It parses inner and, if inner fails, emits RecoveryStart, skips
// input until one of limits' characteristic prefixes matches (without
// consuming the limit token itself) or EOF is reached, emits RecoveryFinish,
// and continues next with whatever args had already been collected before
// inner ran. limits defaults to whatever the caller supplies; a Try with no
// limits recovers only at EOF.
func Try[U any](inner rule.Rule[U], limits ...rule.Branch[U]) rule.Rule[U] {
	return &recoveryRule[U]{inner: inner, limits: limits}
}

func (t *recoveryRule[U]) IsBranch() bool { return false }
func (t *recoveryRule[U]) IsToken() bool  { return false }

func (t *recoveryRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	ok := t.inner.Parse(c, r, args, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
		args = a
		return true
	}))
	if ok {
		return next.Parse(c, r, args)
	}

	begin := r.Position()
	c.On(pctx.Event[U]{Kind: pctx.RecoveryStart, Begin: begin})
	for {
		if _, ok := r.Peek(); !ok {
			break // EOF is a successful recovery terminator
		}
		if t.atLimit(c, r) {
			break
		}
		r.Bump()
	}
	c.On(pctx.Event[U]{Kind: pctx.RecoveryFinish, Begin: begin, End: r.Position()})
	return next.Parse(c, r, args)
}

func (t *recoveryRule[U]) atLimit(c *pctx.Context[U], r *reader.Reader[U]) bool {
	for _, lim := range t.limits {
		if quietProbe(c, *r, lim) {
			return true
		}
	}
	return false
}
