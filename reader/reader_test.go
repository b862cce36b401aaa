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

package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/parsekit/reader"
)

func TestReaderPeekIsPure(t *testing.T) {
	r := reader.New([]byte("ab"))
	u1, ok1 := r.Peek()
	u2, ok2 := r.Peek()
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, u1, u2)
}

func TestReaderBumpAdvancesOne(t *testing.T) {
	r := reader.New([]byte("ab"))
	r.Bump()
	u, ok := r.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('b'), u)
}

func TestReaderEOF(t *testing.T) {
	r := reader.New([]byte(""))
	_, ok := r.Peek()
	assert.False(t, ok)
	assert.True(t, r.AtEOF())
}

func TestReaderPositionRoundtrip(t *testing.T) {
	r := reader.New([]byte("hello"))
	r.Bump()
	r.Bump()
	mid := r.Position()
	r.Bump()
	r.Bump()
	r.SetPosition(mid)
	u, ok := r.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('l'), u)
}

func TestReaderSetPositionCanMoveForwardOrBack(t *testing.T) {
	r := reader.New([]byte("hello"))
	end := reader.Iterator(5)
	r.SetPosition(end)
	assert.True(t, r.AtEOF())
	r.SetPosition(reader.Iterator(0))
	u, ok := r.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('h'), u)
}

func TestReaderCopyIsIndependent(t *testing.T) {
	r := reader.New([]byte("hello"))
	saved := r
	r.Bump()
	r.Bump()
	u, ok := saved.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('h'), u, "saved copy must not observe bumps on the original")
}

func TestTryMatchTokenRestoresOnFailure(t *testing.T) {
	r := reader.New([]byte("abc"))
	ok := reader.TryMatchToken(&r, func(r *reader.Reader[byte]) bool {
		r.Bump()
		r.Bump()
		return false
	})
	assert.False(t, ok)
	assert.Equal(t, reader.Iterator(0), r.Position())
}

func TestTryMatchTokenCommitsOnSuccess(t *testing.T) {
	r := reader.New([]byte("abc"))
	ok := reader.TryMatchToken(&r, func(r *reader.Reader[byte]) bool {
		r.Bump()
		return true
	})
	assert.True(t, ok)
	assert.Equal(t, reader.Iterator(1), r.Position())
}

func TestBoundedReaderStopsAtLimit(t *testing.T) {
	r := reader.New([]byte("hello world"))
	limit := reader.Iterator(5)
	bounded := r.Bounded(limit)
	for i := 0; i < 5; i++ {
		_, ok := bounded.Peek()
		require.True(t, ok)
		bounded.Bump()
	}
	assert.True(t, bounded.AtEOF())
}

func TestDecodeUTF16WithBOM(t *testing.T) {
	// "hi" little-endian with a BOM prefix.
	data := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	out, err := reader.DecodeUTF16WithBOM(data, reader.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(out))
}

func TestBOMBytes(t *testing.T) {
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, reader.BOMBytes("utf8", reader.LittleEndian))
	assert.Equal(t, []byte{0xFF, 0xFE}, reader.BOMBytes("utf16", reader.LittleEndian))
	assert.Equal(t, []byte{0xFE, 0xFF}, reader.BOMBytes("utf16", reader.BigEndian))
	assert.Nil(t, reader.BOMBytes("ascii", reader.LittleEndian))
}
