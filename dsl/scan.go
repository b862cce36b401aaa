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
)

// Scanner is the imperative escape hatch Scan hands to a user callback: a
// thin wrapper over the reader and context that exposes the same
// peek/parse/capture/error vocabulary the grammar combinators are built
// from, for a production whose shape isn't naturally declarative (manual
// lookahead, a hand-rolled state machine over a handful of code units).
type Scanner[U any] struct {
	c *pctx.Context[U]
	r *reader.Reader[U]
}

// Peek returns the code unit at the scanner's current position without
// consuming it, mirroring reader.Reader.Peek.
func (s *Scanner[U]) Peek() (unit U, ok bool) { return s.r.Peek() }

// Position returns the scanner's current position.
func (s *Scanner[U]) Position() reader.Iterator { return s.r.Position() }

// Parse runs r against the scanner's reader, discarding any values it
// produced (the scanner only cares whether it matched and where it left the
// reader); failure leaves the reader wherever r's own contract documents.
func (s *Scanner[U]) Parse(rl rule.Rule[U]) bool {
	return rl.Parse(s.c, s.r, nil, rule.Accept[U]())
}

// Capture runs rl and, on success, returns the lexeme it matched.
func (s *Scanner[U]) Capture(rl rule.Rule[U]) (reader.Iterator, reader.Iterator, bool) {
	begin := s.r.Position()
	if !s.Parse(rl) {
		return begin, begin, false
	}
	return begin, s.r.Position(), true
}

// Error reports tag as a failure at the scanner's current position.
func (s *Scanner[U]) Error(tag perror.Tag) {
	s.c.Fail(perror.New(tag, s.c.Production()))
}

// scanRule implements Scan: hand the reader and context to fn as a Scanner
// and let it drive parsing imperatively; fn's own bool return is the match
// result, and its T return (when true) is appended to the rule chain's args.
type scanRule[U any, T any] struct {
	fn func(*Scanner[U]) (T, bool)
}

// Scan builds a rule whose body is an ordinary Go function operating a
// Scanner instead of composed combinators — the manual/hybrid escape hatch
// for grammar fragments that are easier to write by hand than to declare.
func Scan[U any, T any](fn func(*Scanner[U]) (T, bool)) rule.Rule[U] {
	return &scanRule[U, T]{fn: fn}
}

func (s *scanRule[U, T]) IsBranch() bool { return false }
func (s *scanRule[U, T]) IsToken() bool  { return false }

func (s *scanRule[U, T]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	scanner := &Scanner[U]{c: c, r: r}
	value, ok := s.fn(scanner)
	if !ok {
		return false
	}
	return next.Parse(c, r, args.Append(value))
}
