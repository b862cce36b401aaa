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

package action

import (
	"github.com/parsekit/parsekit/internal/collections"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/production"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/token"
)

// TreeNode is one node of the tree ParseAsTree builds: either a production
// node (Token is nil, Children holds what it matched) or a token leaf
// (Token is set, Children is always empty). transparent_production members
// (spec.md §6.5) never appear as nodes themselves; their children are
// spliced into their parent in their place.
type TreeNode[U any] struct {
	Production string
	Token      *token.Token[U]
	Begin, End reader.Iterator
	Children   []*TreeNode[U]
}

// IsLeaf reports whether n is a token leaf rather than a production node.
func (n *TreeNode[U]) IsLeaf() bool { return n.Token != nil }

// Tokens flattens the subtree rooted at n into its leaf tokens, left to
// right, skipping production nodes entirely. Built from n's immediate
// Children via collections.FlatMapSlice, recursing into production nodes
// (a leaf yields itself), rather than a hand-written accumulator loop.
func (n *TreeNode[U]) Tokens() []*TreeNode[U] {
	if n.IsLeaf() {
		return []*TreeNode[U]{n}
	}
	return collections.FlatMapSlice(n.Children, (*TreeNode[U]).Tokens)
}

// KindCounts tallies how many leaf tokens of each kind appear under n, using
// collections.FilterSlice to isolate tokens of a given kind before counting
// rather than a single mixed-purpose loop.
func (n *TreeNode[U]) KindCounts() map[token.Kind]int {
	leaves := n.Tokens()
	counts := make(map[token.Kind]int)
	seen := make(map[token.Kind]bool)
	for _, leaf := range leaves {
		seen[leaf.Token.Kind] = true
	}
	for kind := range seen {
		matching := collections.FilterSlice(leaves, func(t *TreeNode[U]) bool {
			return t.Token.Kind == kind
		})
		counts[kind] = len(matching)
	}
	return counts
}

type openNode[U any] struct {
	node        *TreeNode[U]
	transparent bool
}

// treeHandler builds a TreeNode forest by tracking the currently-open
// production nodes as a stack; a finished production's node (or, if it's
// transparent, its children) is appended to whatever is now on top of the
// stack, and a canceled one is dropped entirely (spec.md's invariant 2: a
// canceled production leaves no trace behind).
type treeHandler[U any] struct {
	stack []openNode[U]
	root  *TreeNode[U]
}

func (h *treeHandler[U]) On(e pctx.Event[U]) {
	switch e.Kind {
	case pctx.ProductionStart:
		h.stack = append(h.stack, openNode[U]{
			node:        &TreeNode[U]{Production: e.Production, Begin: e.Begin},
			transparent: e.Transparent,
		})
	case pctx.TokenMatched:
		leaf := &TreeNode[U]{Token: &e.Token, Begin: e.Begin, End: e.End}
		h.appendToTop(leaf)
	case pctx.ProductionFinish:
		top := h.pop()
		top.node.End = e.End
		if top.transparent {
			for _, child := range top.node.Children {
				h.appendToTop(child)
			}
		} else if len(h.stack) == 0 {
			h.root = top.node
		} else {
			h.appendToTop(top.node)
		}
	case pctx.ProductionCancel:
		h.pop()
	}
}

func (h *treeHandler[U]) pop() openNode[U] {
	top := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return top
}

func (h *treeHandler[U]) appendToTop(n *TreeNode[U]) {
	if len(h.stack) == 0 {
		h.root = n
		return
	}
	top := &h.stack[len(h.stack)-1]
	top.node.Children = append(top.node.Children, n)
}

// ParseAsTree runs root over units and, instead of (or alongside) root's
// declared value, builds a TreeNode forest mirroring exactly the
// production/token event structure the parse produced (spec.md §6.2:
// "parse_as_tree: builds a parse tree node for each production and each
// token event").
func ParseAsTree[U any, T any](name string, root production.Production[U, T], units []U) (Result[T], *TreeNode[U]) {
	collector := &perror.Collector{}
	tree := &treeHandler[U]{}
	handler := pctx.HandlerFunc[U](func(e pctx.Event[U]) {
		if e.Kind == pctx.ErrorRaised {
			collector.Report(e.Err)
		}
		tree.On(e)
	})
	ok, val, _ := production.Run[U, T](name, root, handler, nil, units)
	return Result[T]{ok: ok, Value: val, Errors: collector.All()}, tree.root
}
