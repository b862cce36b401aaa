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
)

// encodeRule implements Encode: span delimits the raw U-typed region,
// transcode converts it to V-typed units, and inner parses those units to
// completion under its own encoding.
type encodeRule[U any, V any] struct {
	span      rule.Branch[U]
	transcode func([]U) ([]V, bool)
	inner     rule.Rule[V]
}

// Encode re-encodes a sub-region of the input through a different code-unit
// type before parsing it: span matches and consumes the raw region (a
// fenced block, an escape payload, anything with its own delimiter), then
// transcode converts whatever it consumed into V-typed units that inner
// parses to completion, independent of the outer grammar's encoding.
// inner must consume every transcoded unit; a short parse is reported as
// Unexpected spanning the whole encoded region, since there is no
// meaningful position within it to blame in the outer encoding's terms.
func Encode[U any, V any](span rule.Branch[U], transcode func([]U) ([]V, bool), inner rule.Rule[V]) rule.Rule[U] {
	return &encodeRule[U, V]{span: span, transcode: transcode, inner: inner}
}

func (e *encodeRule[U, V]) IsBranch() bool { return false }
func (e *encodeRule[U, V]) IsToken() bool  { return true }

func (e *encodeRule[U, V]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	outcome, probeArgs := e.span.TryParse(c, r)
	if outcome != rule.Taken {
		return false
	}
	if !e.span.Finish(c, r, probeArgs, rule.Accept[U]()) {
		return false
	}
	end := r.Position()

	units, ok := e.transcode(r.Slice(begin, end))
	if !ok {
		c.Fail(perror.New(perror.Unexpected{Begin: begin, End: end}, c.Production()))
		return false
	}

	sub := reader.New(units)
	subCtx := pctx.NewRoot[V](pctx.DiscardHandler[V](), c.Control())
	var produced rule.Args
	innerOK := e.inner.Parse(subCtx, &sub, nil, rule.NextFunc[V](func(_ *pctx.Context[V], _ *reader.Reader[V], a rule.Args) bool {
		produced = a
		return true
	}))
	if !innerOK || !sub.AtEOF() {
		c.Fail(perror.New(perror.Unexpected{Begin: begin, End: end}, c.Production()))
		return false
	}

	c.SkipWhitespace(r)
	return next.Parse(c, r, args.Append(produced...))
}
