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

package charclass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parsekit/parsekit/charclass"
)

func TestASCIIClasses(t *testing.T) {
	assert.True(t, charclass.ASCIIDigit.Contains('7'))
	assert.False(t, charclass.ASCIIDigit.Contains('a'))
	assert.True(t, charclass.ASCIIAlpha.Contains('Z'))
	assert.True(t, charclass.ASCIIAlphaNum.Contains('9'))
	assert.True(t, charclass.ASCIIHexDigit.Contains('f'))
	assert.False(t, charclass.ASCIIHexDigit.Contains('g'))
	assert.True(t, charclass.ASCIISpace.Contains('\t'))
	assert.False(t, charclass.ASCIIControl.Contains('Z'), "'Z' (0x5A) is not a control character")
}

func TestOrMinusNot(t *testing.T) {
	vowels := charclass.NewClass[byte]("vowel", func(b byte) bool {
		switch b {
		case 'a', 'e', 'i', 'o', 'u':
			return true
		}
		return false
	})
	consonants := charclass.Minus[byte](charclass.ASCIILower, vowels)
	assert.True(t, consonants.Contains('b'))
	assert.False(t, consonants.Contains('a'))

	notDigit := charclass.Not[byte](charclass.ASCIIDigit)
	assert.True(t, notDigit.Contains('x'))
	assert.False(t, notDigit.Contains('5'))

	either := charclass.Or[byte](vowels, charclass.ASCIIDigit)
	assert.True(t, either.Contains('5'))
	assert.True(t, either.Contains('o'))
	assert.False(t, either.Contains('z'))
}

func TestDecodeUTF8(t *testing.T) {
	r, size := charclass.DecodeUTF8([]byte("é"))
	assert.Equal(t, 'é', r)
	assert.Equal(t, 2, size)
}

func TestDecodeUTF16SurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE as a UTF-16 surrogate pair.
	units := []uint16{0xD83D, 0xDE00}
	r, size := charclass.DecodeUTF16(units)
	assert.Equal(t, rune(0x1F600), r)
	assert.Equal(t, 2, size)
}

func TestDecodeUTF16BMP(t *testing.T) {
	r, size := charclass.DecodeUTF16([]uint16{'h'})
	assert.Equal(t, 'h', r)
	assert.Equal(t, 1, size)
}

func TestSurrogateAndPrivateUseAndNoncharacter(t *testing.T) {
	assert.True(t, charclass.Surrogate.Contains(0xD800))
	assert.False(t, charclass.BMP.Contains(0xD800), "surrogates are excluded from BMP")
	assert.True(t, charclass.PrivateUse.Contains(0xE000))
	assert.True(t, charclass.Noncharacter.Contains(0xFFFE))
	assert.True(t, charclass.Noncharacter.Contains(0x1FFFF))
	assert.True(t, charclass.Noncharacter.Contains(0xFDD5))
	assert.False(t, charclass.Noncharacter.Contains('a'))
}

func TestGeneralCategory(t *testing.T) {
	assert.Equal(t, "Lu", charclass.GeneralCategory('A'))
	assert.Equal(t, "Ll", charclass.GeneralCategory('a'))
	assert.Equal(t, "Nd", charclass.GeneralCategory('3'))
	assert.Equal(t, "Zs", charclass.GeneralCategory(' '))
}
