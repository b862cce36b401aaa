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

package value

import "github.com/parsekit/parsekit/rule"

// Collector repeatedly invokes a per-item callback and stores its returns,
// for building one sub-value per repetition rather than pushing raw rule
// arguments into a Sink. The dsl combinators (List, Loop, Times) do not
// create one; the caller invokes Add for each repetition.
type Collector[T any] struct {
	cb    func(rule.Args) T
	items []T
}

// Collect returns a Collector that will apply cb to each repetition's args.
func Collect[T any](cb func(rule.Args) T) *Collector[T] {
	return &Collector[T]{cb: cb}
}

// Add applies the callback to args and stores the result.
func (c *Collector[T]) Add(args rule.Args) {
	c.items = append(c.items, c.cb(args))
}

// Items returns everything collected so far, in order.
func (c *Collector[T]) Items() []T {
	return c.items
}

// Len reports how many items have been collected.
func (c *Collector[T]) Len() int {
	return len(c.items)
}
