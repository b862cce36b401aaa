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

package charclass

// Class is a named predicate over a single code unit (or, for the code-point
// classes in codepoint.go, a single decoded rune). Rules that match "one of a
// set of characters" take a Class rather than hard-coding a switch.
type Class[U any] interface {
	Contains(u U) bool
	Name() string
}

// Predicate is the concrete Class implementation every constructor below
// returns; callers normally hold a Class, not a Predicate.
type Predicate[U any] struct {
	name string
	fn   func(U) bool
}

// Contains implements Class.
func (p Predicate[U]) Contains(u U) bool { return p.fn(u) }

// Name implements Class.
func (p Predicate[U]) Name() string { return p.name }

// NewClass builds a Class from a plain predicate function.
func NewClass[U any](name string, fn func(U) bool) Predicate[U] {
	return Predicate[U]{name: name, fn: fn}
}

// Or returns a class matching anything a or b matches.
func Or[U any](a, b Class[U]) Class[U] {
	return Predicate[U]{
		name: a.Name() + "|" + b.Name(),
		fn:   func(u U) bool { return a.Contains(u) || b.Contains(u) },
	}
}

// Minus returns a class matching a but not b.
func Minus[U any](a, b Class[U]) Class[U] {
	return Predicate[U]{
		name: a.Name() + "-" + b.Name(),
		fn:   func(u U) bool { return a.Contains(u) && !b.Contains(u) },
	}
}

// Not returns the complement of a.
func Not[U any](a Class[U]) Class[U] {
	return Predicate[U]{
		name: "!" + a.Name(),
		fn:   func(u U) bool { return !a.Contains(u) },
	}
}
