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

package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/parsekit/charclass"
	"github.com/parsekit/parsekit/dsl"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/token"
	"github.com/parsekit/parsekit/value"
)

// pushConst is a zero-width rule that appends a fixed value to the rule
// chain's Args, standing in for a production's value member in tests that
// only need to tell branches apart, not build a real result type.
type pushConst[U any] struct{ v any }

func (p pushConst[U]) IsBranch() bool { return false }
func (p pushConst[U]) IsToken() bool  { return false }

func (p pushConst[U]) Parse(c *pctx.Context[byte], r *reader.Reader[byte], args rule.Args, next rule.Next[byte]) bool {
	return next.Parse(c, r, args.Append(p.v))
}

// run drives r over input against a fresh root context, returning whether it
// matched, the errors it raised, and how far it consumed.
func run(r rule.Rule[byte], input string) (ok bool, errs []perror.Error, consumed int) {
	var collector perror.Collector
	handler := pctx.HandlerFunc[byte](func(e pctx.Event[byte]) {
		if e.Kind == pctx.ErrorRaised {
			collector.Report(e.Err)
		}
	})
	cb := pctx.NewControlBlock("test", nil)
	c := pctx.NewRoot[byte](handler, cb)
	rd := reader.New([]byte(input))
	ok = r.Parse(c, &rd, nil, rule.Accept[byte]())
	return ok, collector.All(), int(rd.Position())
}

func TestChoiceWithCommit(t *testing.T) {
	abThenC, _ := dsl.Seq[byte](dsl.Lit([]byte("ab"), `"ab"`), dsl.Lit([]byte("c"), `"c"`)).(rule.Branch[byte])
	alt := dsl.Alt[byte](abThenC, dsl.Lit([]byte("ab"), `"ab"`), dsl.Lit([]byte("a"), `"a"`))

	ok, errs, consumed := run(alt, "abc")
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 3, consumed)

	ok, errs, _ = run(alt, "ab")
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "expected_literal", errs[0].Tag.TagName())

	ok, errs, consumed = run(alt, "a")
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 1, consumed)
}

func TestDigitsWithSeparatorAndNoLeadingZero(t *testing.T) {
	digits := func() *dsl.Digits {
		return dsl.NewDigits(dsl.DecimalDigitValue).Sep('_').NoLeadingZero()
	}

	ok, errs, consumed := run(digits(), "0")
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 1, consumed)

	ok, errs, consumed = run(digits(), "007")
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "forbidden_leading_zero", errs[0].Tag.TagName())
	assert.Equal(t, 2, consumed)

	ok, errs, consumed = run(digits(), "1_000")
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 5, consumed)

	ok, errs, _ = run(digits(), "1__0")
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "expected_char_class", errs[0].Tag.TagName())
}

func TestDelimitedStringWithEscape(t *testing.T) {
	quote := dsl.Lit([]byte(`"`), `"`)
	escapedQuote, _ := dsl.Seq[byte](dsl.Lit([]byte(`\"`), `\"`), pushConst[byte]{v: byte('"')}).(rule.Branch[byte])
	escapedBackslash, _ := dsl.Seq[byte](dsl.Lit([]byte(`\\`), `\\`), pushConst[byte]{v: byte('\\')}).(rule.Branch[byte])
	escape := dsl.Alt[byte](escapedQuote, escapedBackslash)

	delimited := dsl.Delimited[byte, string](quote, quote, escape, value.AsString())

	ok, errs, consumed := run(delimited, `"ab\"c"`)
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, len(`"ab\"c"`), consumed)

	ok, errs, _ = run(delimited, `"ab`)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "missing_delimiter", errs[0].Tag.TagName())
}

func TestIdentifierWithReservedKeyword(t *testing.T) {
	newID := func() *dsl.Identifier[byte] {
		return dsl.NewIdentifier[byte](charclass.ASCIIAlpha, charclass.ASCIIAlphaNum).
			Reserve(func(content []byte) bool { return string(content) == "if" })
	}

	ok, errs, consumed := run(newID(), "foo")
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 3, consumed)

	ok, errs, consumed = run(newID(), "if")
	assert.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "reserved_identifier", errs[0].Tag.TagName())
	assert.Equal(t, 2, consumed)

	ok, errs, consumed = run(newID(), "ifx")
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 3, consumed)
}

// TestIdentifierProducesLexeme confirms identifier yields its matched span
// as a produced value (spec.md §8 scenario 5's "identifier lexeme"), not
// just a token event a caller would have to re-capture separately.
func TestIdentifierProducesLexeme(t *testing.T) {
	id := dsl.NewIdentifier[byte](charclass.ASCIIAlpha, charclass.ASCIIAlphaNum)

	cb := pctx.NewControlBlock("test", nil)
	c := pctx.NewRoot[byte](pctx.HandlerFunc[byte](func(pctx.Event[byte]) {}), cb)
	rd := reader.New([]byte("foo123"))

	var produced rule.Args
	ok := id.Parse(c, &rd, nil, rule.NextFunc[byte](func(_ *pctx.Context[byte], _ *reader.Reader[byte], args rule.Args) bool {
		produced = args
		return true
	}))
	require.True(t, ok)
	require.Len(t, produced, 1)

	lex, ok := produced[0].(token.Lexeme[byte])
	require.True(t, ok)
	assert.Equal(t, "foo123", string(rd.Slice(lex.Begin, lex.End)))
}

func TestCombination(t *testing.T) {
	elemA := dsl.Elem[byte](dsl.Lit([]byte("a"), `"a"`), pushConst[byte]{v: 0})
	elemB := dsl.Elem[byte](dsl.Lit([]byte("b"), `"b"`), pushConst[byte]{v: 1})
	elemC := dsl.Elem[byte](dsl.Lit([]byte("c"), `"c"`), pushConst[byte]{v: 2})

	ok, errs, consumed := run(dsl.Combination[byte](elemA, elemB, elemC), "bca")
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 3, consumed)

	ok, errs, _ = run(dsl.Combination[byte](elemA, elemB, elemC), "baa")
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "combination_duplicate", errs[0].Tag.TagName())

	ok, errs, _ = run(dsl.Combination[byte](elemA, elemB, elemC), "ab")
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "exhausted_choice", errs[0].Tag.TagName())
}

func TestEncodeTranscodesHexPayloadToBytes(t *testing.T) {
	hexDigit := func(b byte) (int, bool) {
		switch {
		case b >= '0' && b <= '9':
			return int(b - '0'), true
		case b >= 'a' && b <= 'f':
			return int(b-'a') + 10, true
		default:
			return 0, false
		}
	}
	pair, _ := dsl.Seq[byte](dsl.Digit(hexDigit), dsl.Digit(hexDigit)).(rule.Branch[byte])

	toByte := func(raw []byte) ([]byte, bool) {
		hi, _ := hexDigit(raw[0])
		lo, _ := hexDigit(raw[1])
		return []byte{byte(hi<<4 | lo)}, true
	}

	anyByte := charclass.NewClass[byte]("any", func(byte) bool { return true })
	encoded := dsl.Encode[byte, byte](pair, toByte, dsl.Class[byte](anyByte))

	ok, errs, consumed := run(encoded, "41")
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 2, consumed)

	ok, errs, _ = run(encoded, "4g")
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "expected_char_class", errs[0].Tag.TagName())
}

func TestScanDrivesManualEscapeByte(t *testing.T) {
	anyByte := charclass.NewClass[byte]("any", func(byte) bool { return true })
	escape := dsl.Scan[byte, byte](func(s *dsl.Scanner[byte]) (byte, bool) {
		if !s.Parse(dsl.Lit([]byte(`\`), `\`)) {
			return 0, false
		}
		u, ok := s.Peek()
		if !ok || (u != 'n' && u != 't') {
			s.Error(perror.InvalidEscapeSequence{Pos: s.Position()})
			return 0, false
		}
		s.Parse(dsl.Class[byte](anyByte))
		if u == 'n' {
			return '\n', true
		}
		return '\t', true
	})

	ok, errs, consumed := run(escape, `\n`)
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, 2, consumed)

	ok, errs, _ = run(escape, `\x`)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid_escape_sequence", errs[0].Tag.TagName())
}
