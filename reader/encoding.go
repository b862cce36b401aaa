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

package reader

import (
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding describes how user characters (runes) convert into the code units
// a Reader[U] of this encoding consumes. It never decodes; going the other
// way, from code units back to a code point, is the job of charclass's
// DecodeUTF8, DecodeUTF16 and DecodeUTF32.
type Encoding[U any] struct {
	// Name identifies the encoding for diagnostics.
	Name string
	// FromRune converts a single user character into the code units that
	// represent it, or reports false if the character has no representation
	// (e.g. a non-ASCII rune under the ASCII encoding).
	FromRune func(rune) ([]U, bool)
}

// Byte treats 8-bit input as opaque code units with no notion of characters
// beyond their numeric value.
var Byte = Encoding[byte]{
	Name: "byte",
	FromRune: func(r rune) ([]byte, bool) {
		if r < 0 || r > 0xff {
			return nil, false
		}
		return []byte{byte(r)}, true
	},
}

// ASCII restricts the byte encoding to the 0x00-0x7F range.
var ASCII = Encoding[byte]{
	Name: "ascii",
	FromRune: func(r rune) ([]byte, bool) {
		if r < 0 || r > 0x7f {
			return nil, false
		}
		return []byte{byte(r)}, true
	},
}

// UTF8 encodes runes as 1-4 byte UTF-8 sequences. The reader still yields raw
// bytes; charclass.DecodeUTF8 recovers code points on demand.
var UTF8 = Encoding[byte]{
	Name: "utf8",
	FromRune: func(r rune) ([]byte, bool) {
		if !utf8.ValidRune(r) {
			return nil, false
		}
		buf := make([]byte, utf8.RuneLen(r))
		utf8.EncodeRune(buf, r)
		return buf, true
	},
}

// Default treats 8-bit input as opaque, identical to Byte. It exists as a
// distinct value so grammars can name "no particular encoding" explicitly.
var Default = Byte

// UTF16 encodes runes as one or two uint16 code units (a surrogate pair for
// astral characters). The reader yields raw uint16 halves; charclass.
// DecodeUTF16 recovers code points, including surrogate pairs, on demand.
var UTF16 = Encoding[uint16]{
	Name: "utf16",
	FromRune: func(r rune) ([]uint16, bool) {
		if r < 0 || r > unicode.MaxRune || (r >= 0xd800 && r <= 0xdfff) {
			return nil, false
		}
		return utf16.Encode([]rune{r}), true
	},
}

// UTF32 encodes runes as a single rune-sized code unit.
var UTF32 = Encoding[rune]{
	Name: "utf32",
	FromRune: func(r rune) ([]rune, bool) {
		if r < 0 || r > unicode.MaxRune {
			return nil, false
		}
		return []rune{r}, true
	},
}

// Endianness selects byte order for multi-byte encodings that need one
// (UTF-16, UTF-32, and their byte-order marks).
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

// DecodeUTF16WithBOM transcodes raw UTF-16 bytes into UTF-8, honoring a
// leading byte-order mark if present and falling back to fallback otherwise.
// It is a convenience adapter for callers who would rather hand a UTF8
// Reader to the engine than track UTF-16 surrogate pairs themselves; the
// core engine's own UTF16 encoding above does not depend on it.
func DecodeUTF16WithBOM(data []byte, fallback Endianness) ([]byte, error) {
	endian := xunicode.LittleEndian
	if fallback == BigEndian {
		endian = xunicode.BigEndian
	}
	dec := xunicode.UTF16(endian, xunicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	return out, err
}

// BOMBytes returns the canonical byte-order-mark sequence for enc/endian, or
// nil if that combination has no BOM (e.g. plain ASCII).
func BOMBytes(enc string, endian Endianness) []byte {
	switch enc {
	case "utf8":
		return []byte{0xEF, 0xBB, 0xBF}
	case "utf16":
		if endian == BigEndian {
			return []byte{0xFE, 0xFF}
		}
		return []byte{0xFF, 0xFE}
	case "utf32":
		if endian == BigEndian {
			return []byte{0x00, 0x00, 0xFE, 0xFF}
		}
		return []byte{0xFF, 0xFE, 0x00, 0x00}
	default:
		return nil
	}
}
