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
	"github.com/parsekit/parsekit/charclass"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/token"
)

// Decoder recovers one code point (and its width in code units) from the
// code units starting at a reader's current position; it never consumes
// more than needed and reports size=0 at EOF. charclass.DecodeUTF8,
// DecodeUTF16, and DecodeUTF32 are the predefined ones.
type Decoder[U any] func(units []U) (r rune, size int)

// peekUnits returns up to n code units ahead of r without consuming.
func peekUnits[U any](r reader.Reader[U], n int) []U {
	return peekAhead(r, n)
}

// CodePoint matches exactly one code point under decode, optionally
// restricted to those satisfying cls (e.g. charclass.Letter). maxUnits
// bounds how far ahead to peek for the decoder (4 is enough for UTF-8/32,
// 2 for UTF-16). Validity is whatever decode reports: an ill-formed sequence
// that decode maps to U+FFFD with a non-zero size (as DecodeUTF8 and
// DecodeUTF16 do) is accepted as the code point U+FFFD.
func CodePoint[U any](decode Decoder[U], cls charclass.Class[rune], maxUnits int) *atomicToken[U] {
	return newAtomicToken[U](token.Unknown, func(r reader.Reader[U]) (int, bool) {
		ahead := peekUnits(r, maxUnits)
		if len(ahead) == 0 {
			return 0, false
		}
		cp, size := decode(ahead)
		if size == 0 {
			return 0, false
		}
		if cls != nil && !cls.Contains(cp) {
			return 0, false
		}
		return size, true
	}, func(pos reader.Iterator) perror.Tag {
		name := "code-point"
		if cls != nil {
			name = cls.Name()
		}
		return perror.ExpectedCharClass{Pos: pos, ClassName: name}
	})
}

// codePointEncodeRule re-decodes a sub-rule's matched input through a
// different decoder, for grammars that parse an escape sequence under one
// encoding (e.g. `\u` + 4 hex digits) while the surrounding document uses
// another. It captures inner's matched lexeme and hands the re-decoded rune
// list to next as a single []rune argument, rather than inner's own argument
// list.
type codePointEncodeRule[U any] struct {
	inner   *atomicToken[U]
	decode  Decoder[U]
	maxUnit int
}

// EncodeCodePoints wraps inner (already a full-match token rule over the
// escape's raw spelling) so its matched span is re-decoded into runes via
// decode and appended to the argument list as a single []rune, instead of
// whatever inner itself would have produced.
func EncodeCodePoints[U any](inner *atomicToken[U], decode Decoder[U], maxUnit int) *codePointEncodeRule[U] {
	return &codePointEncodeRule[U]{inner: inner, decode: decode, maxUnit: maxUnit}
}

func (e *codePointEncodeRule[U]) IsBranch() bool { return false }
func (e *codePointEncodeRule[U]) IsToken() bool  { return false }

func decodeAll[U any](units []U, decode Decoder[U], maxUnit int) []rune {
	var out []rune
	for i := 0; i < len(units); {
		end := i + maxUnit
		if end > len(units) {
			end = len(units)
		}
		cp, size := decode(units[i:end])
		if size == 0 {
			break
		}
		out = append(out, cp)
		i += size
	}
	return out
}

// Parse matches inner's raw span, re-decodes it through decode, and appends
// the resulting []rune to args in place of whatever inner itself produced.
func (e *codePointEncodeRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	length, ok := e.inner.match(*r)
	if !ok {
		if e.inner.onFail != nil {
			c.Fail(perror.New(e.inner.onFail(begin), c.Production()))
		}
		return false
	}
	content := make([]U, 0, length)
	scan := *r
	for i := 0; i < length; i++ {
		u, _ := scan.Peek()
		content = append(content, u)
		scan.Bump()
	}
	runes := decodeAll(content, e.decode, e.maxUnit)
	e.inner.advance(c, r, length)
	return next.Parse(c, r, args.Append(runes))
}
