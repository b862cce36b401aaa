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

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/value"
)

func TestCallbackValue(t *testing.T) {
	cb := value.Callback[int](func(args rule.Args) int { return len(args) })
	assert.Equal(t, 3, cb.Build(rule.Args{1, 2, 3}))
}

func TestAsListSink(t *testing.T) {
	v := value.FromSink(value.AsList[string]())
	got := v.Build(rule.Args{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestAsCollectionDedupes(t *testing.T) {
	v := value.FromSink(value.AsCollection[int]())
	got := v.Build(rule.Args{1, 2, 2, 3})
	assert.Len(t, got, 3)
	assert.Contains(t, got, 2)
}

func TestAsStringMixedUnits(t *testing.T) {
	v := value.FromSink(value.AsString())
	got := v.Build(rule.Args{byte('h'), "i", rune('!')})
	assert.Equal(t, "hi!", got)
}

func TestCountSink(t *testing.T) {
	v := value.FromSink(value.Count())
	assert.Equal(t, 4, v.Build(rule.Args{1, 2, 3, 4}))
}

func TestSinkThenCallback(t *testing.T) {
	v := value.Then(value.AsList[int](), func(items []int) int {
		sum := 0
		for _, n := range items {
			sum += n
		}
		return sum
	})
	assert.Equal(t, 6, v.Build(rule.Args{1, 2, 3}))
}

func TestCollector(t *testing.T) {
	c := value.Collect(func(args rule.Args) int { return len(args) })
	c.Add(rule.Args{1})
	c.Add(rule.Args{1, 2})
	assert.Equal(t, []int{1, 2}, c.Items())
	assert.Equal(t, 2, c.Len())
}
