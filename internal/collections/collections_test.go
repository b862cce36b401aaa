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

package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parsekit/parsekit/internal/collections"
)

func TestFilterSliceKeepsMatchingElements(t *testing.T) {
	evens := collections.FilterSlice([]int{1, 2, 3, 4, 5, 6}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, evens)
}

func TestFilterSliceEmptyWhenNothingMatches(t *testing.T) {
	none := collections.FilterSlice([]int{1, 3, 5}, func(n int) bool { return n%2 == 0 })
	assert.Empty(t, none)
}

func TestFlatMapSliceFlattensResults(t *testing.T) {
	// action.TreeNode.Tokens uses FlatMapSlice exactly this way: recurse into
	// each child, producing a nested slice per child that gets flattened.
	nested := [][]int{{1}, {2, 2}, {}, {3, 3, 3}}
	out := collections.FlatMapSlice(nested, func(ns []int) []int { return ns })
	assert.Equal(t, []int{1, 2, 2, 3, 3, 3}, out)
}

func TestFlatMapSliceSkipsEmptyResults(t *testing.T) {
	out := collections.FlatMapSlice([]int{1, 2, 3, 4}, func(n int) []int {
		if n%2 == 0 {
			return nil
		}
		return []int{n}
	})
	assert.Equal(t, []int{1, 3}, out)
}
