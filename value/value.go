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

// Package value implements the value layer: how the argument list a rule
// chain produces turns into a production's result, either by handing the
// whole list to a callback or by folding it through a sink, optionally
// followed by a callback over the sink's result.
package value

import "github.com/parsekit/parsekit/rule"

// Value builds a T from the arguments a production's rule produced. It is
// the callback/sink/sink-then-callback trichotomy unified behind one method.
type Value[T any] interface {
	Build(args rule.Args) T
}

// Callback adapts a plain function to Value, for productions whose value
// member is "a function that takes the arguments and returns the result".
type Callback[T any] func(rule.Args) T

// Build implements Value.
func (f Callback[T]) Build(args rule.Args) T { return f(args) }

// Builder accumulates pushed items into a final B, as the runtime feeds it
// one rule.Args element at a time.
type Builder[B any] interface {
	Push(item any)
	Finish() B
}

// Sink produces a fresh Builder for each parse of its production, for
// productions whose value member is "an object exposing .sink()".
type Sink[B any] interface {
	NewBuilder() Builder[B]
}

// SinkValue adapts a Sink to Value by pushing every element of args into a
// fresh Builder and returning its Finish.
type SinkValue[B any] struct {
	Sink Sink[B]
}

// Build implements Value.
func (s SinkValue[B]) Build(args rule.Args) B {
	b := s.Sink.NewBuilder()
	for _, a := range args {
		b.Push(a)
	}
	return b.Finish()
}

// FromSink is shorthand for SinkValue{Sink: s}.
func FromSink[B any](s Sink[B]) Value[B] {
	return SinkValue[B]{Sink: s}
}

type sinkThenCallback[B, T any] struct {
	sink Sink[B]
	cb   func(B) T
}

// Then composes a sink with a callback over its finished result: `sink >>
// cb` in the spec's notation.
func Then[B, T any](s Sink[B], cb func(B) T) Value[T] {
	return sinkThenCallback[B, T]{sink: s, cb: cb}
}

// Build implements Value.
func (s sinkThenCallback[B, T]) Build(args rule.Args) T {
	b := s.sink.NewBuilder()
	for _, a := range args {
		b.Push(a)
	}
	return s.cb(b.Finish())
}
