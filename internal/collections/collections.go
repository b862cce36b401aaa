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

// Package collections provides the small set of generic slice/set helpers
// parsekit's own code calls: FilterSlice and FlatMapSlice here, and Set in
// set.go for literal.Build's duplicate-literal check.
package collections

// FilterSlice returns a new slice containing only the elements of s for
// which predicate returns true.
//
// Example:
//
//	FilterSlice([]int{1, 2, 3, 4}, func(x int) bool { return x%2 == 0 })
//	=> []int{2, 4}
func FilterSlice[TSlice ~[]T, T any](s TSlice, predicate func(T) bool) TSlice {
	out := make(TSlice, 0, len(s))
	for _, elem := range s {
		if predicate(elem) {
			out = append(out, elem)
		}
	}
	return out
}

// FlatMapSlice applies fn to each element of s, where fn returns a slice,
// and flattens the resulting slices into a single slice.
//
// Example:
//
//	FlatMapSlice([]int{1, 2}, func(x int) []int { return []int{x, x} })
//	=> []int{1, 1, 2, 2}
func FlatMapSlice[TSlice ~[]T, VSlice ~[]V, T, V any](s TSlice, fn func(T) VSlice) VSlice {
	var out VSlice
	for _, elem := range s {
		out = append(out, fn(elem)...)
	}
	return out
}
