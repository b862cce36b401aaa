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

// Package reader provides the stateful cursor that every rule in the engine
// parses from. A Reader is a cheap-to-copy value: peeking never fails (EOF is
// a value, not an error), bumping advances exactly one code unit, and a
// Position/SetPosition pair gives branch-probing and backtracking random
// access to any position the reader has already seen.
//
// The code-unit type is a generic parameter rather than a fixed byte slice,
// so the same cursor logic backs byte-oriented (ASCII, UTF-8, "default")
// input as well as UTF-16 (uint16 halves) and UTF-32 (rune) input. Decoding
// multi-unit code points from those code units is the job of the charclass
// package, not of Reader itself.
package reader

// Iterator is an opaque, comparable, totally ordered handle to a position in
// a Reader's input. It stays valid across copies of the Reader: a Reader
// saved before a probe and one advanced by the probe can both be compared
// against, or restored from, the same Iterator values.
type Iterator int

// Less reports whether it precedes other in the input.
func (it Iterator) Less(other Iterator) bool { return it < other }

// Reader is a cursor over a slice of code units of type U. The zero value is
// not usable; construct one with New.
type Reader[U any] struct {
	units []U
	pos   int
}

// New constructs a Reader over the given code units, positioned at the start.
func New[U any](units []U) Reader[U] {
	return Reader[U]{units: units}
}

// Peek returns the code unit at the current position, or ok=false at EOF.
// Peek is pure: calling it repeatedly without Bump returns the same result.
func (r Reader[U]) Peek() (unit U, ok bool) {
	if r.pos >= len(r.units) {
		return unit, false
	}
	return r.units[r.pos], true
}

// Bump advances the reader by exactly one code unit. It is undefined to call
// Bump when Peek reports ok=false.
func (r *Reader[U]) Bump() {
	r.pos++
}

// Position returns an opaque handle to the current position, stable across
// copies of the reader.
func (r Reader[U]) Position() Iterator {
	return Iterator(r.pos)
}

// SetPosition restores a previously observed position, which may be earlier
// or later than the reader's current position: readers support random access
// within anything they have seen.
func (r *Reader[U]) SetPosition(it Iterator) {
	r.pos = int(it)
}

// AtEOF reports whether the reader has no more code units.
func (r Reader[U]) AtEOF() bool {
	_, ok := r.Peek()
	return !ok
}

// Slice returns the code units in [begin, end), for building a Lexeme's
// underlying content. Both iterators must have come from this reader (or an
// equivalent copy sharing its backing input).
func (r Reader[U]) Slice(begin, end Iterator) []U {
	return r.units[begin:end]
}

// Bounded returns a copy of the reader truncated to end at limit, producing a
// "partial reader" per the reader contract: peeking past limit reports EOF
// even if the underlying input continues.
func (r Reader[U]) Bounded(limit Iterator) Reader[U] {
	end := int(limit)
	if end > len(r.units) {
		end = len(r.units)
	}
	return Reader[U]{units: r.units[:end], pos: r.pos}
}

// TryMatchToken saves a copy of the reader, runs match against *r, and on
// failure restores *r from that copy; on success *r keeps match's advance.
// It is a generic save/restore helper; the dsl token rules do not call it
// (they match against a reader copy and then advance).
func TryMatchToken[U any](r *Reader[U], match func(r *Reader[U]) bool) bool {
	save := *r
	if match(r) {
		return true
	}
	*r = save
	return false
}
