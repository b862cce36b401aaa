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

// Package rule defines the parser protocol every combinator and token rule
// implements: an ordinary continuation-passing parser, and for rules that
// can be probed without committing, a two-phase branch parser.
package rule

import (
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
)

// Args is the accumulator of values a rule chain has produced so far,
// appended to left-to-right as each rule in a Seq/Then chain succeeds. It
// stands in for continuation-passing's argument pack.
type Args []any

// Append returns a new Args with v appended; callers never mutate an Args
// they didn't just build, since the same Args may be reused across a
// backtracked alternative.
func (a Args) Append(v ...any) Args {
	out := make(Args, len(a)+len(v))
	copy(out, a)
	copy(out[len(a):], v)
	return out
}

// Next is the continuation a rule invokes after it succeeds: usually the
// rest of the grammar, ultimately bottoming out at a production's Finish
// (see the production package) or, for the outermost call, an action's
// Accept.
type Next[U any] interface {
	Parse(c *pctx.Context[U], r *reader.Reader[U], args Args) bool
}

// NextFunc adapts a function to Next.
type NextFunc[U any] func(c *pctx.Context[U], r *reader.Reader[U], args Args) bool

// Parse implements Next.
func (f NextFunc[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args Args) bool {
	return f(c, r, args)
}

// Accept is the trivial Next that always succeeds, discarding args; it is
// the terminal continuation for rules probed in isolation (tests, Peek's
// sub-rule, a Lookahead search).
func Accept[U any]() Next[U] {
	return NextFunc[U](func(*pctx.Context[U], *reader.Reader[U], Args) bool { return true })
}

// Rule is the ordinary parser every grammar component implements: given a
// context and reader, attempt to match, and on success invoke next with the
// reader advanced and this rule's values appended to args. On failure the
// rule has already reported a perror.Error through c and returns false; the
// reader position after a failure is rule-specific and documented per rule.
type Rule[U any] interface {
	// Parse attempts this rule.
	Parse(c *pctx.Context[U], r *reader.Reader[U], args Args, next Next[U]) bool
	// IsBranch reports whether this rule also implements Branch.
	IsBranch() bool
	// IsToken reports whether a successful match of this rule should be
	// followed by implicit whitespace skipping (per the production's
	// whitespace-resolution rules), as opposed to a structural combinator
	// whose own sub-rules already triggered any needed whitespace.
	IsToken() bool
}
