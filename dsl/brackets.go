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
	"github.com/parsekit/parsekit/value"
)

// bracketsBuilder holds the open/close pair until Of supplies the content
// rule, since Go has no direct equivalent of lexy's brackets(open,
// close)(content) call syntax.
type bracketsBuilder[U any] struct {
	open, close rule.Branch[U]
}

// Brackets starts a bracketed-content rule: open and close delimit content,
// supplied via the returned builder's Of.
func Brackets[U any](open, close rule.Branch[U]) *bracketsBuilder[U] {
	return &bracketsBuilder[U]{open: open, close: close}
}

// Of completes the brackets rule with content run between open and close;
// if close is never found (including at EOF) it reports MissingDelimiter
// spanning from the opening delimiter to wherever the search gave up.
func (b *bracketsBuilder[U]) Of(content rule.Rule[U]) rule.Rule[U] {
	return &bracketsRule[U]{open: b.open, close: b.close, content: content}
}

type bracketsRule[U any] struct {
	open, close rule.Branch[U]
	content     rule.Rule[U]
}

func (b *bracketsRule[U]) IsBranch() bool { return false }
func (b *bracketsRule[U]) IsToken() bool  { return false }

func (b *bracketsRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	openOutcome, openProbe := b.open.TryParse(c, r)
	if openOutcome != rule.Taken {
		return false
	}
	if !b.open.Finish(c, r, openProbe, rule.Accept[U]()) {
		return false
	}
	var produced rule.Args
	if !b.content.Parse(c, r, nil, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
		produced = a
		return true
	})) {
		return false
	}
	closeOutcome, closeProbe := b.close.TryParse(c, r)
	if closeOutcome != rule.Taken {
		c.Fail(perror.New(perror.MissingDelimiter{Begin: begin, End: r.Position()}, c.Production()))
		return false
	}
	if !b.close.Finish(c, r, closeProbe, rule.Accept[U]()) {
		return false
	}
	return next.Parse(c, r, args.Append(produced...))
}

// delimitedRule implements Delimited: open, then a run of raw code units
// and/or escape sequences fed into a Sink, then close; a search for close
// that reaches EOF first is MissingDelimiter, and an escape's trigger that
// isn't followed by a valid payload is InvalidEscapeSequence.
type delimitedRule[U any, B any] struct {
	open, close rule.Branch[U]
	escape      rule.Branch[U]
	sink        value.Sink[B]
}

// Delimited matches a delimited span (a quoted string, a fenced block)
// whose raw content (and any escape sequences, recognized by escape —
// nil for none) is folded through sink into the rule's produced value.
func Delimited[U any, B any](open, close rule.Branch[U], escape rule.Branch[U], sink value.Sink[B]) rule.Rule[U] {
	return &delimitedRule[U, B]{open: open, close: close, escape: escape, sink: sink}
}

func (d *delimitedRule[U, B]) IsBranch() bool { return false }
func (d *delimitedRule[U, B]) IsToken() bool  { return false }

func (d *delimitedRule[U, B]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	openOutcome, openProbe := d.open.TryParse(c, r)
	if openOutcome != rule.Taken {
		return false
	}
	if !d.open.Finish(c, r, openProbe, rule.Accept[U]()) {
		return false
	}

	builder := d.sink.NewBuilder()
	for {
		if _, ok := r.Peek(); !ok {
			c.Fail(perror.New(perror.MissingDelimiter{Begin: begin, End: r.Position()}, c.Production()))
			return false
		}
		if quietProbe(c, *r, d.close) {
			break
		}
		if d.escape != nil && quietProbe(c, *r, d.escape) {
			escOutcome, escProbe := d.escape.TryParse(c, r)
			if escOutcome != rule.Taken {
				c.Fail(perror.New(perror.InvalidEscapeSequence{Pos: r.Position()}, c.Production()))
				return false
			}
			var produced rule.Args
			if !d.escape.Finish(c, r, escProbe, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
				produced = a
				return true
			})) {
				c.Fail(perror.New(perror.InvalidEscapeSequence{Pos: r.Position()}, c.Production()))
				return false
			}
			for _, v := range produced {
				builder.Push(v)
			}
			continue
		}
		u, _ := r.Peek()
		builder.Push(u)
		r.Bump()
	}

	closeOutcome, closeProbe := d.close.TryParse(c, r)
	if closeOutcome != rule.Taken {
		c.Fail(perror.New(perror.MissingDelimiter{Begin: begin, End: r.Position()}, c.Production()))
		return false
	}
	if !d.close.Finish(c, r, closeProbe, rule.Accept[U]()) {
		return false
	}
	return next.Parse(c, r, args.Append(builder.Finish()))
}
