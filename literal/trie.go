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

// Package literal implements the literal-set matcher: a trie over code-unit
// sequences that finds the longest matching entry in a single left-to-right
// pass, for DSL rules like LitSet that must try many fixed strings at once
// without backtracking across them.
package literal

import (
	"fmt"

	"github.com/parsekit/parsekit/internal/collections"
)

// node is one trie vertex. valueIndex is the index into Trie.values of the
// literal ending here, or -1 if no literal ends at this vertex.
type node[U comparable] struct {
	children   map[U]*node[U]
	valueIndex int
}

func newNode[U comparable]() *node[U] {
	return &node[U]{children: make(map[U]*node[U]), valueIndex: -1}
}

// Trie holds a fixed set of code-unit sequences ("literals") and matches the
// longest one that prefixes a given input, in O(length of the match).
type Trie[U comparable] struct {
	root   *node[U]
	values []string
}

// Build constructs a Trie from literals, a set of non-empty code-unit
// sequences. It reports an
// error if literals is empty, contains an empty sequence, or contains the
// same sequence twice; constructing a literal set that can never win a
// match, or that would make matching ambiguous, is a mistake the grammar
// author should hear about immediately rather than at parse time.
func Build[U comparable](literals [][]U) (*Trie[U], error) {
	if len(literals) == 0 {
		return nil, fmt.Errorf("literal: trie needs at least one literal")
	}
	seen := make(collections.Set[string], len(literals))
	t := &Trie[U]{root: newNode[U]()}
	for _, lit := range literals {
		if len(lit) == 0 {
			return nil, fmt.Errorf("literal: empty literal is not allowed")
		}
		k := fmt.Sprint(lit)
		if seen.Contains(k) {
			return nil, fmt.Errorf("literal: duplicate literal %v", lit)
		}
		seen.Add(k)
		t.insert(lit)
	}
	return t, nil
}

func (t *Trie[U]) insert(lit []U) {
	cur := t.root
	for _, u := range lit {
		next, ok := cur.children[u]
		if !ok {
			next = newNode[U]()
			cur.children[u] = next
		}
		cur = next
	}
	cur.valueIndex = len(t.values)
	t.values = append(t.values, fmt.Sprint(lit))
}

// Match walks units from the start and returns the length, in code units, of
// the longest literal in the trie that prefixes units, and whether any
// literal matched at all. Ties are impossible: a trie cannot contain two
// literals that are prefixes of each other and equal in length, since one
// would have to literally equal the other.
func (t *Trie[U]) Match(units []U) (length int, ok bool) {
	cur := t.root
	bestLen := 0
	bestOK := false
	for i, u := range units {
		next, found := cur.children[u]
		if !found {
			break
		}
		cur = next
		if cur.valueIndex >= 0 {
			bestLen = i + 1
			bestOK = true
		}
	}
	return bestLen, bestOK
}

// Len reports how many literals the trie holds.
func (t *Trie[U]) Len() int {
	return len(t.values)
}
