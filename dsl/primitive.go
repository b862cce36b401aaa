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
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/token"
)

// Any consumes every remaining code unit up to EOF, including zero of them
// on empty input; it always succeeds and is reported as an unconditional
// branch so a parent combinator can skip probing it.
func Any[U any]() *atomicToken[U] {
	t := newAtomicToken[U](token.Any, func(r reader.Reader[U]) (int, bool) {
		n := 0
		for {
			if _, ok := r.Peek(); !ok {
				break
			}
			r.Bump()
			n++
		}
		return n, true
	}, nil)
	return t.markUnconditional()
}

// EOF succeeds, consuming nothing, only when the reader has no more input.
func EOF[U any]() *atomicToken[U] {
	return newAtomicToken[U](token.EOF, func(r reader.Reader[U]) (int, bool) {
		if _, ok := r.Peek(); ok {
			return 0, false
		}
		return 0, true
	}, func(pos reader.Iterator) perror.Tag {
		return perror.Unexpected{Begin: pos, End: pos}
	})
}

// Position succeeds unconditionally, consuming nothing: a zero-width marker
// token for grammars that want a captured position without matching input.
func Position[U any]() *atomicToken[U] {
	t := newAtomicToken[U](token.Position, func(reader.Reader[U]) (int, bool) {
		return 0, true
	}, nil)
	return t.markUnconditional()
}

// Newline matches lf (e.g. "\n") or, if non-empty and it prefixes the input,
// crlf (e.g. "\r\n") in preference to lf — so crlf should be the longer
// sequence when both are given. It fails (without consuming) at EOF.
func Newline[U comparable](lf, crlf []U) *atomicToken[U] {
	return newAtomicToken[U](token.Unknown, func(r reader.Reader[U]) (int, bool) {
		if len(crlf) > 0 {
			if prefixMatches(peekAhead(r, len(crlf)), crlf) {
				return len(crlf), true
			}
		}
		if prefixMatches(peekAhead(r, len(lf)), lf) {
			return len(lf), true
		}
		return 0, false
	}, func(pos reader.Iterator) perror.Tag {
		return perror.ExpectedCharClass{Pos: pos, ClassName: "newline"}
	}).Kind(token.Unknown)
}

// EOL matches a Newline or succeeds at EOF without consuming, covering the
// common "end of line, including the last line with no trailing newline"
// case.
func EOL[U comparable](lf, crlf []U) *atomicToken[U] {
	return newAtomicToken[U](token.Unknown, func(r reader.Reader[U]) (int, bool) {
		if _, ok := r.Peek(); !ok {
			return 0, true
		}
		if len(crlf) > 0 && prefixMatches(peekAhead(r, len(crlf)), crlf) {
			return len(crlf), true
		}
		if prefixMatches(peekAhead(r, len(lf)), lf) {
			return len(lf), true
		}
		return 0, false
	}, func(pos reader.Iterator) perror.Tag {
		return perror.ExpectedCharClass{Pos: pos, ClassName: "eol"}
	})
}

// BOM matches a literal byte-order-mark sequence, typically
// reader.BOMBytes(enc, endian) for a []byte reader.
func BOM[U comparable](mark []U) *atomicToken[U] {
	return Lit[U](mark, "<BOM>")
}
