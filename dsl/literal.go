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
	"github.com/parsekit/parsekit/literal"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/token"
)

// prefixMatches reports whether units starts with lit.
func prefixMatches[U comparable](units []U, lit []U) bool {
	if len(units) < len(lit) {
		return false
	}
	for i, want := range lit {
		if units[i] != want {
			return false
		}
	}
	return true
}

// mismatchIndex returns the index of the first code unit in units that
// disagrees with lit (or len(units) if units is a proper prefix of lit).
func mismatchIndex[U comparable](units []U, lit []U) int {
	n := len(units)
	if len(lit) < n {
		n = len(lit)
	}
	for i := 0; i < n; i++ {
		if units[i] != lit[i] {
			return i
		}
	}
	return n
}

// peekAhead returns up to n code units starting at r's current position,
// without advancing r (r is taken by value, already a cheap copy).
func peekAhead[U any](r reader.Reader[U], n int) []U {
	out := make([]U, 0, n)
	for i := 0; i < n; i++ {
		u, ok := r.Peek()
		if !ok {
			break
		}
		out = append(out, u)
		r.Bump()
	}
	return out
}

// Lit matches the exact code-unit sequence lit, reporting String for
// diagnostics (typically the Go source spelling, e.g. `"hello"`).
func Lit[U comparable](lit []U, spelling string) *atomicToken[U] {
	return newAtomicToken[U](token.Literal, func(r reader.Reader[U]) (int, bool) {
		ahead := peekAhead(r, len(lit))
		if prefixMatches(ahead, lit) {
			return len(lit), true
		}
		return 0, false
	}, func(pos reader.Iterator) perror.Tag {
		return perror.ExpectedLiteral{Pos: pos, String: spelling, IndexOfFirstMismatch: 0}
	})
}

// LitSet compiles literals into a literal.Trie and matches the longest
// literal that prefixes the input in one pass, for grammars choosing among
// many fixed spellings (e.g. a keyword table) without an explicit Alt chain.
func LitSet[U comparable](literals [][]U, spelling string) (*atomicToken[U], error) {
	trie, err := literal.Build(literals)
	if err != nil {
		return nil, err
	}
	maxLen := 0
	for _, lit := range literals {
		if len(lit) > maxLen {
			maxLen = len(lit)
		}
	}
	return newAtomicToken[U](token.Literal, func(r reader.Reader[U]) (int, bool) {
		ahead := peekAhead(r, maxLen)
		length, ok := trie.Match(ahead)
		return length, ok
	}, func(pos reader.Iterator) perror.Tag {
		return perror.ExpectedLiteral{Pos: pos, String: spelling, IndexOfFirstMismatch: 0}
	}), nil
}

// Keyword matches lit only when it is not immediately followed by a code
// unit in trailing (an identifier-continuation class), so `"if"` doesn't
// match a prefix of `"ifx"`.
func Keyword[U comparable](lit []U, spelling string, trailing charclass.Class[U]) *atomicToken[U] {
	return newAtomicToken[U](token.Literal, func(r reader.Reader[U]) (int, bool) {
		ahead := peekAhead(r, len(lit)+1)
		if !prefixMatches(ahead, lit) {
			return 0, false
		}
		if len(ahead) > len(lit) && trailing.Contains(ahead[len(lit)]) {
			return 0, false
		}
		return len(lit), true
	}, func(pos reader.Iterator) perror.Tag {
		return perror.ExpectedKeyword{Begin: pos, End: pos, String: spelling}
	})
}

// LitCodePoint matches a single code point given as its already-encoded code
// units (e.g. the result of an Encoding's FromRune) as one literal token (so
// a multi-byte UTF-8 character still counts as one atomic match rather than
// len(bytes) separate units). It is Lit under another name.
func LitCodePoint[U comparable](units []U, spelling string) *atomicToken[U] {
	return Lit[U](units, spelling)
}
