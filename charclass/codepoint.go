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

import (
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// DecodeUTF8 decodes the code point starting at data[0], returning the
// replacement character and a width of 1 if data starts with an invalid
// sequence. size is always >= 1 for non-empty input.
func DecodeUTF8(data []byte) (r rune, size int) {
	return utf8.DecodeRune(data)
}

// DecodeUTF16 decodes the code point starting at units[0], consuming a
// surrogate pair when one is present. size is 1 or 2.
func DecodeUTF16(units []uint16) (r rune, size int) {
	if len(units) == 0 {
		return utf8.RuneError, 0
	}
	first := units[0]
	if utf16.IsSurrogate(rune(first)) && len(units) >= 2 {
		if dec := utf16.DecodeRune(rune(first), rune(units[1])); dec != unicode.ReplacementChar {
			return dec, 2
		}
	}
	if utf16.IsSurrogate(rune(first)) {
		return unicode.ReplacementChar, 1
	}
	return rune(first), 1
}

// DecodeUTF32 reads a single code unit directly as a code point.
func DecodeUTF32(units []rune) (r rune, size int) {
	if len(units) == 0 {
		return utf8.RuneError, 0
	}
	return units[0], 1
}

// Code-point classes, parameterized over rune since every encoding's decode
// step above converges on a rune before classification.
var (
	ASCIIPoint = NewClass[rune]("ascii", func(r rune) bool { return r >= 0 && r <= 0x7f })
	BMP        = NewClass[rune]("bmp", func(r rune) bool { return r >= 0 && r <= 0xffff && !isSurrogate(r) })
	Surrogate  = NewClass[rune]("surrogate", isSurrogateClass)
	Control    = NewClass[rune]("control", unicode.IsControl)
	Space      = NewClass[rune]("space", unicode.IsSpace)
	Letter     = NewClass[rune]("letter", unicode.IsLetter)
	Digit      = NewClass[rune]("digit", unicode.IsDigit)

	// Noncharacter matches the 66 code points Unicode permanently reserves
	// for internal use: U+FDD0-U+FDEF, and the last two code points of every
	// plane (U+xFFFE, U+xFFFF).
	Noncharacter = NewClass[rune]("noncharacter", isNoncharacter)

	// PrivateUse matches the BMP private-use area plus supplementary
	// private-use planes A and B.
	PrivateUse = NewClass[rune]("private-use", isPrivateUse)
)

func isSurrogateClass(r rune) bool { return isSurrogate(r) }

func isSurrogate(r rune) bool { return r >= 0xd800 && r <= 0xdfff }

func isNoncharacter(r rune) bool {
	if r >= 0xfdd0 && r <= 0xfdef {
		return true
	}
	low := r & 0xffff
	return low == 0xfffe || low == 0xffff
}

func isPrivateUse(r rune) bool {
	switch {
	case r >= 0xe000 && r <= 0xf8ff:
		return true
	case r >= 0xf0000 && r <= 0xffffd:
		return true
	case r >= 0x100000 && r <= 0x10fffd:
		return true
	default:
		return false
	}
}

// GeneralCategory returns the two-letter Unicode General_Category abbreviation
// (e.g. "Lu", "Nd", "Zs") for r, or "Cn" if none of the tables in
// generalCategoryRanges claims it. That table has no Mn, Mc, Me or Cs entry,
// so marks and surrogates also report "Cn", not only unassigned code points.
func GeneralCategory(r rune) string {
	for name, tab := range generalCategoryRanges {
		if unicode.Is(tab, r) {
			return name
		}
	}
	return "Cn"
}

// generalCategoryRanges covers the categories grammars most commonly test
// for; it is intentionally not exhaustive of Unicode's full category set.
var generalCategoryRanges = map[string]*unicode.RangeTable{
	"Lu": unicode.Lu,
	"Ll": unicode.Ll,
	"Lt": unicode.Lt,
	"Lm": unicode.Lm,
	"Lo": unicode.Lo,
	"Nd": unicode.Nd,
	"Nl": unicode.Nl,
	"No": unicode.No,
	"Pc": unicode.Pc,
	"Pd": unicode.Pd,
	"Ps": unicode.Ps,
	"Pe": unicode.Pe,
	"Pi": unicode.Pi,
	"Pf": unicode.Pf,
	"Po": unicode.Po,
	"Sm": unicode.Sm,
	"Sc": unicode.Sc,
	"Sk": unicode.Sk,
	"So": unicode.So,
	"Zs": unicode.Zs,
	"Zl": unicode.Zl,
	"Zp": unicode.Zp,
	"Cc": unicode.Cc,
	"Cf": unicode.Cf,
	"Co": unicode.Co,
}
