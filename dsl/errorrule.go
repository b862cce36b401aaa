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
	"fmt"

	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
)

// errorRule implements ErrorRule: an unconditional branch that always
// reports a user-defined failure, optionally after probing span to compute
// the range it blames.
type errorRule[U any, T any] struct {
	payload T
	name    string
	span    rule.Branch[U]
}

// ErrorRule builds a grammar-defined failure: a rule that never matches and
// reports perror.User[T]{Payload: payload} when reached. If span is given,
// ErrorRule probes it first (without committing to it, and regardless of
// whether it actually matches) purely to compute the [begin,end) range the
// error blames; span itself never succeeds through ErrorRule.
func ErrorRule[U any, T any](payload T) *errorRule[U, T] {
	return &errorRule[U, T]{payload: payload, name: fmt.Sprintf("%T", payload)}
}

// Spanning sets the rule ErrorRule probes (without consuming) to compute the
// blamed range, mirroring spec.md's "error<Tag>[(R)]" form.
func (e *errorRule[U, T]) Spanning(span rule.Branch[U]) *errorRule[U, T] {
	e.span = span
	return e
}

func (e *errorRule[U, T]) IsBranch() bool        { return true }
func (e *errorRule[U, T]) IsToken() bool         { return false }
func (e *errorRule[U, T]) IsUnconditional() bool { return true }

func (e *errorRule[U, T]) blamedEnd(c *pctx.Context[U], r *reader.Reader[U]) reader.Iterator {
	if e.span == nil {
		return r.Position()
	}
	probe := *r
	_, _ = e.span.TryParse(pctx.NewRoot[U](nil, c.Control()), &probe)
	return probe.Position()
}

func (e *errorRule[U, T]) fail(c *pctx.Context[U], r *reader.Reader[U]) bool {
	begin := r.Position()
	end := e.blamedEnd(c, r)
	c.Fail(perror.New(perror.User[T]{Begin: begin, End: end, Name: e.name, Payload: e.payload}, c.Production()))
	return false
}

func (e *errorRule[U, T]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	return e.fail(c, r)
}

func (e *errorRule[U, T]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	e.fail(c, r)
	return rule.Failed, nil
}

func (e *errorRule[U, T]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {}

func (e *errorRule[U, T]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	return false
}
