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
	"github.com/parsekit/parsekit/charclass"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/token"
)

// Identifier matches one lead char followed by zero-or-more trail chars,
// optionally checking the result against a reserved-word predicate (.Reserve)
// that reports ReservedIdentifier without failing the match itself — the
// identifier lexeme is still produced, exactly as spec.md §8's worked
// example requires.
type Identifier[U comparable] struct {
	lead, trail charclass.Class[U]
	reserved    func(content []U) bool
}

// NewIdentifier builds an Identifier matching lead then trail*.
func NewIdentifier[U comparable](lead, trail charclass.Class[U]) *Identifier[U] {
	return &Identifier[U]{lead: lead, trail: trail}
}

// Reserve installs isReserved, checked against the full matched spelling
// once the identifier has matched.
func (id *Identifier[U]) Reserve(isReserved func(content []U) bool) *Identifier[U] {
	id.reserved = isReserved
	return id
}

func (id *Identifier[U]) IsBranch() bool        { return true }
func (id *Identifier[U]) IsToken() bool         { return true }
func (id *Identifier[U]) IsUnconditional() bool { return false }

func (id *Identifier[U]) scan(r reader.Reader[U]) (int, bool) {
	u, ok := r.Peek()
	if !ok || !id.lead.Contains(u) {
		return 0, false
	}
	r.Bump()
	n := 1
	for {
		u, ok := r.Peek()
		if !ok || !id.trail.Contains(u) {
			break
		}
		r.Bump()
		n++
	}
	return n, true
}

// commit advances r past the n already-scanned identifier units, emits its
// token event and reserved-word check, and returns the lexeme it matched so
// callers can hand it onward as a produced value — spec.md §8 scenario 5
// describes identifier as yielding an "identifier lexeme", not merely a
// side-effecting token event.
func (id *Identifier[U]) commit(c *pctx.Context[U], r *reader.Reader[U], n int) token.Lexeme[U] {
	begin := r.Position()
	for i := 0; i < n; i++ {
		r.Bump()
	}
	end := r.Position()
	c.On(pctx.Event[U]{
		Kind:  pctx.TokenMatched,
		Begin: begin,
		End:   end,
		Token: token.Token[U]{Kind: token.Identifier, Lexeme: token.Lexeme[U]{Begin: begin, End: end}},
	})
	if id.reserved != nil {
		content := r.Slice(begin, end)
		if id.reserved(content) {
			c.Fail(perror.New(perror.ReservedIdentifier{Begin: begin, End: end}, c.Production()))
		}
	}
	c.SkipWhitespace(r)
	return token.Lexeme[U]{Begin: begin, End: end}
}

func (id *Identifier[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	n, ok := id.scan(*r)
	if !ok {
		c.Fail(perror.New(perror.ExpectedCharClass{Pos: begin, ClassName: id.lead.Name()}, c.Production()))
		return false
	}
	lex := id.commit(c, r, n)
	return next.Parse(c, r, args.Append(lex))
}

func (id *Identifier[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	n, ok := id.scan(*r)
	if !ok {
		return rule.Backtracked, nil
	}
	lex := id.commit(c, r, n)
	return rule.Taken, rule.Args{lex}
}

func (id *Identifier[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	end := r.Position()
	r.SetPosition(begin)
	if end != begin {
		c.On(pctx.Event[U]{Kind: pctx.Backtracked, Begin: begin, End: end})
	}
}

func (id *Identifier[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	return next.Parse(c, r, probeArgs)
}
