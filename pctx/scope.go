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

package pctx

import "slices"

// scopeKey is a unique, comparable token identifying one variable binding
// slot. Its identity is its address, so two Counters/Flags/identifiers never
// collide even if declared with identical names.
type scopeKey struct{ _ int }

// Counter is a scoped mutable integer, for grammars that need to pair a
// repetition count against a later one (e.g. a manual "N opens must equal
// N closes" check). No dsl combinator uses it itself.
type Counter struct{ key *scopeKey }

// NewCounter allocates a fresh, globally-unique Counter binding point.
func NewCounter() Counter { return Counter{key: &scopeKey{}} }

// BindCounter returns a sub-context in which ctr is readable, initialized to
// initial.
func BindCounter[U any](c *Context[U], ctr Counter, initial int) *Context[U] {
	v := initial
	return c.withBinding(ctr.key, &v)
}

// CounterValue reads ctr's current value. ok is false if ctr was never bound
// in an enclosing scope.
func CounterValue[U any](c *Context[U], ctr Counter) (value int, ok bool) {
	p, ok := lookup[*int](c, ctr.key)
	if !ok {
		return 0, false
	}
	return *p, true
}

// AddToCounter adds delta to ctr's bound value, reporting false if ctr has
// no enclosing binding.
func AddToCounter[U any](c *Context[U], ctr Counter, delta int) bool {
	p, ok := lookup[*int](c, ctr.key)
	if !ok {
		return false
	}
	*p += delta
	return true
}

// Flag is a scoped mutable boolean, for grammars tracking "have we already
// seen X in this subtree" (e.g. Combination's optional-element bookkeeping
// outside the built-in duplicate check).
type Flag struct{ key *scopeKey }

// NewFlag allocates a fresh, globally-unique Flag binding point.
func NewFlag() Flag { return Flag{key: &scopeKey{}} }

// BindFlag returns a sub-context in which fl is readable, initialized to
// initial.
func BindFlag[U any](c *Context[U], fl Flag, initial bool) *Context[U] {
	v := initial
	return c.withBinding(fl.key, &v)
}

// FlagValue reads fl's current value.
func FlagValue[U any](c *Context[U], fl Flag) (value bool, ok bool) {
	p, ok := lookup[*bool](c, fl.key)
	if !ok {
		return false, false
	}
	return *p, true
}

// SetFlag sets fl's bound value, reporting false if fl has no enclosing
// binding.
func SetFlag[U any](c *Context[U], fl Flag, value bool) bool {
	p, ok := lookup[*bool](c, fl.key)
	if !ok {
		return false
	}
	*p = value
	return true
}

// CapturedIdentifier is a scoped slot for the code units of an identifier
// matched once and checked for equality against later occurrences (e.g. a
// here-doc's opening and closing tag, or a balanced XML-style element name).
type CapturedIdentifier[U comparable] struct{ key *scopeKey }

// NewCapturedIdentifier allocates a fresh, globally-unique binding point.
func NewCapturedIdentifier[U comparable]() CapturedIdentifier[U] {
	return CapturedIdentifier[U]{key: &scopeKey{}}
}

// Bind returns a sub-context in which id holds content, copied so later
// mutation of the caller's slice cannot retroactively change the capture.
func (id CapturedIdentifier[U]) Bind(c *Context[U], content []U) *Context[U] {
	stored := slices.Clone(content)
	return c.withBinding(id.key, &stored)
}

// Equals compares content against id's bound capture. hasPrior is false if
// id was never bound in an enclosing scope, in which case equal is also
// false.
func (id CapturedIdentifier[U]) Equals(c *Context[U], content []U) (equal, hasPrior bool) {
	p, ok := lookup[*[]U](c, id.key)
	if !ok {
		return false, false
	}
	return slices.Equal(*p, content), true
}
