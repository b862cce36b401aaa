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
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/token"
)

// matchFunc is the core of every primitive token rule: given a read-only
// snapshot of the reader (reader.Reader is a cheap-to-copy value type), it
// reports how many code units a match would consume, or ok=false. It never
// mutates its argument; atomicToken is responsible for actually advancing
// the real reader once a match is confirmed.
type matchFunc[U any] func(r reader.Reader[U]) (length int, ok bool)

// atomicToken is the shared implementation behind nearly every built-in
// token rule in spec.md §4.T: it probes via matchFunc, and on success
// advances the reader, emits a token.Kind event, and runs implicit
// whitespace skipping — all in one step, since a token rule's characteristic
// prefix is the whole rule (is_token primitives don't nest productions).
type atomicToken[U any] struct {
	kind          token.Kind
	match         matchFunc[U]
	onFail        func(pos reader.Iterator) perror.Tag
	unconditional bool
	suppress      bool
}

// newAtomicToken builds a branch token rule from a pure matcher.
func newAtomicToken[U any](kind token.Kind, match matchFunc[U], onFail func(reader.Iterator) perror.Tag) *atomicToken[U] {
	return &atomicToken[U]{kind: kind, match: match, onFail: onFail}
}

// Kind overrides the token kind this rule reports on a match (the DSL
// surface's ".kind<K>()").
func (t *atomicToken[U]) Kind(k token.Kind) *atomicToken[U] {
	t.kind = k
	return t
}

// Suppress disables the TokenMatched event for a successful match, while
// still advancing the reader and running whitespace skipping. Combinators
// like Capture use this on their own internal bookkeeping matches.
func (t *atomicToken[U]) Suppress() *atomicToken[U] {
	t.suppress = true
	return t
}

// markUnconditional marks the rule as always Taken without consuming (used by
// Any and the zero-width markers); it only affects IsUnconditional's report
// to parent combinators, not matching behavior itself.
func (t *atomicToken[U]) markUnconditional() *atomicToken[U] {
	t.unconditional = true
	return t
}

func (t *atomicToken[U]) IsBranch() bool        { return true }
func (t *atomicToken[U]) IsToken() bool         { return true }
func (t *atomicToken[U]) IsUnconditional() bool { return t.unconditional }

func (t *atomicToken[U]) advance(c *pctx.Context[U], r *reader.Reader[U], length int) {
	begin := r.Position()
	for i := 0; i < length; i++ {
		r.Bump()
	}
	end := r.Position()
	if !t.suppress {
		c.On(pctx.Event[U]{
			Kind:  pctx.TokenMatched,
			Begin: begin,
			End:   end,
			Token: token.Token[U]{Kind: t.kind, Lexeme: token.Lexeme[U]{Begin: begin, End: end}},
		})
	}
	c.SkipWhitespace(r)
}

// Parse is the ordinary (non-probed) realization: on failure it reports
// onFail's tag, since nothing else will.
func (t *atomicToken[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	length, ok := t.match(*r)
	if !ok {
		if t.onFail != nil {
			c.Fail(perror.New(t.onFail(begin), c.Production()))
		}
		return false
	}
	t.advance(c, r, length)
	return next.Parse(c, r, args)
}

// TryParse never reports an error on Backtracked: a parent Alt/Switch tries
// other alternatives and only the exhausted-choice path (or a direct,
// unprobed Parse) is ever a real diagnostic.
func (t *atomicToken[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	length, ok := t.match(*r)
	if !ok {
		return rule.Backtracked, nil
	}
	t.advance(c, r, length)
	return rule.Taken, nil
}

func (t *atomicToken[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	end := r.Position()
	r.SetPosition(begin)
	if end != begin {
		c.On(pctx.Event[U]{Kind: pctx.Backtracked, Begin: begin, End: end})
	}
}

func (t *atomicToken[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	return next.Parse(c, r, probeArgs)
}
