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

// Package perror defines the error taxonomy every combinator reports
// through: a closed set of structural/semantic/bounded-search tags plus an
// open door for grammar-defined ones, each carrying the input range (and any
// payload) needed to render a useful diagnostic.
package perror

import "github.com/parsekit/parsekit/reader"

// Tag identifies the kind of failure a rule reported. Every Tag also carries
// whatever position/payload fields that failure needs; TagName is just for
// classification and formatting, callers normally switch on the concrete type.
type Tag interface {
	TagName() string
}

// Severity buckets the tag taxonomy the way the engine's propagation rules
// care about, independent of any one tag's specific payload.
type Severity int

const (
	// Structural failures: a literal, keyword, char class, digit, or choice
	// simply didn't match what was there.
	Structural Severity = iota
	// Semantic failures: the input parsed but violated a grammar-level rule
	// (reserved identifier, duplicate combination element, ...).
	Semantic
	// BoundedSearch failures: a rule searched ahead for something (a
	// delimiter, a lookahead assertion) and didn't find it within bounds.
	BoundedSearch
	// UserDefined failures: an arbitrary tag from a grammar's ErrorRule.
	UserDefined
	// Internal failures: an engine invariant was violated (recursion depth).
	Internal
)

// ExpectedLiteral reports that none of a literal set's alternatives matched.
type ExpectedLiteral struct {
	Pos                  reader.Iterator
	String               string
	IndexOfFirstMismatch int
}

func (ExpectedLiteral) TagName() string { return "expected_literal" }

// ExpectedKeyword reports that an identifier-shaped token didn't equal the
// expected keyword spelling.
type ExpectedKeyword struct {
	Begin, End reader.Iterator
	String     string
}

func (ExpectedKeyword) TagName() string { return "expected_keyword" }

// ExpectedCharClass reports that the code unit at Pos is outside ClassName.
type ExpectedCharClass struct {
	Pos       reader.Iterator
	ClassName string
}

func (ExpectedCharClass) TagName() string { return "expected_char_class" }

// ExhaustedChoice reports that every branch of an Alt failed to match.
type ExhaustedChoice struct {
	Pos reader.Iterator
}

func (ExhaustedChoice) TagName() string { return "exhausted_choice" }

// ExhaustedSwitch reports that no Switch case condition held.
type ExhaustedSwitch struct {
	Begin, End reader.Iterator
}

func (ExhaustedSwitch) TagName() string { return "exhausted_switch" }

// CombinationDuplicate reports that a Combination element matched twice.
type CombinationDuplicate struct {
	Begin, End reader.Iterator
}

func (CombinationDuplicate) TagName() string { return "combination_duplicate" }

// MissingDelimiter reports that a Delimited/Brackets rule never found its
// closing delimiter within the input.
type MissingDelimiter struct {
	Begin, End reader.Iterator
}

func (MissingDelimiter) TagName() string { return "missing_delimiter" }

// InvalidEscapeSequence reports a malformed escape inside a delimited string.
type InvalidEscapeSequence struct {
	Pos reader.Iterator
}

func (InvalidEscapeSequence) TagName() string { return "invalid_escape_sequence" }

// ReservedIdentifier reports that Identifier matched one of its own reserved
// keyword spellings.
type ReservedIdentifier struct {
	Begin, End reader.Iterator
}

func (ReservedIdentifier) TagName() string { return "reserved_identifier" }

// ForbiddenLeadingZero reports a multi-digit integer literal starting with 0.
type ForbiddenLeadingZero struct {
	Begin, End reader.Iterator
}

func (ForbiddenLeadingZero) TagName() string { return "forbidden_leading_zero" }

// MinusFailure reports that Minus's excluded rule matched at the starting
// position, so Minus fails without trying its token.
type MinusFailure struct {
	Begin, End reader.Iterator
}

func (MinusFailure) TagName() string { return "minus_failure" }

// LookaheadFailure reports that a Lookahead assertion's sub-rule was never
// found within the searched window.
type LookaheadFailure struct {
	Begin, End reader.Iterator
}

func (LookaheadFailure) TagName() string { return "lookahead_failure" }

// PeekFailure reports that Peek's sub-rule failed to match at Pos.
type PeekFailure struct {
	Pos reader.Iterator
}

func (PeekFailure) TagName() string { return "peek_failure" }

// Unexpected reports that PeekNot's sub-rule matched when it must not.
type Unexpected struct {
	Begin, End reader.Iterator
}

func (Unexpected) TagName() string { return "unexpected" }

// DifferentIdentifier reports that a captured identifier didn't equal a
// previously captured one from the same context scope.
type DifferentIdentifier struct {
	Begin, End reader.Iterator
}

func (DifferentIdentifier) TagName() string { return "different_identifier" }

// UnequalCounts reports that a repeated element count didn't match a
// previously captured counter value. No built-in rule raises it (Times
// reports too few items as ExhaustedChoice).
type UnequalCounts struct {
	Pos reader.Iterator
}

func (UnequalCounts) TagName() string { return "unequal_counts" }

// RecursionLimitExceeded reports that a production recursed past its
// max_recursion_depth.
type RecursionLimitExceeded struct {
	Pos   reader.Iterator
	Depth int
}

func (RecursionLimitExceeded) TagName() string { return "recursion_limit_exceeded" }

// TrailingSeparator reports a separator after a List's last item when the
// grammar used Sep (which forbids a trailing one) instead of TrailingSep.
// The separator has already been consumed by the time this is reported.
type TrailingSeparator struct {
	Begin, End reader.Iterator
}

func (TrailingSeparator) TagName() string { return "trailing_separator" }

// User wraps an arbitrary grammar-defined tag value, as produced by
// dsl.ErrorRule[T]. Name is supplied by the grammar, typically the type name
// of T, so diagnostics can still group user tags sensibly.
type User[T any] struct {
	Begin, End reader.Iterator
	Name       string
	Payload    T
}

func (u User[T]) TagName() string { return u.Name }
