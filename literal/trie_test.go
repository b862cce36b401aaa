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

package literal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/parsekit/literal"
)

func bytesOf(strs ...string) [][]byte {
	out := make([][]byte, len(strs))
	for i, s := range strs {
		out[i] = []byte(s)
	}
	return out
}

func TestTrieLongestMatchWins(t *testing.T) {
	trie, err := literal.Build(bytesOf("if", "ifdef", "in"))
	require.NoError(t, err)

	n, ok := trie.Match([]byte("ifdefined"))
	require.True(t, ok)
	assert.Equal(t, len("ifdef"), n)
}

func TestTrieNoMatch(t *testing.T) {
	trie, err := literal.Build(bytesOf("if", "in"))
	require.NoError(t, err)

	_, ok := trie.Match([]byte("else"))
	assert.False(t, ok)
}

func TestTrieShortestPrefixMatchesWhenLongerFails(t *testing.T) {
	trie, err := literal.Build(bytesOf("if", "ifdef"))
	require.NoError(t, err)

	n, ok := trie.Match([]byte("ifx"))
	require.True(t, ok)
	assert.Equal(t, len("if"), n)
}

func TestTrieRejectsDuplicateLiteral(t *testing.T) {
	_, err := literal.Build(bytesOf("if", "in", "if"))
	assert.Error(t, err)
}

func TestTrieRejectsEmptyLiteral(t *testing.T) {
	_, err := literal.Build(bytesOf("if", ""))
	assert.Error(t, err)
}

func TestTrieRejectsEmptySet(t *testing.T) {
	_, err := literal.Build[byte](nil)
	assert.Error(t, err)
}

func TestTrieLen(t *testing.T) {
	trie, err := literal.Build(bytesOf("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, 3, trie.Len())
}
