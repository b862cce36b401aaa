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

package action_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/parsekit/parsekit/action"
	"github.com/parsekit/parsekit/charclass"
	"github.com/parsekit/parsekit/dsl"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/value"
)

// greeting reproduces spec.md §8 scenario 1: "hello" then "world", with
// ASCII-space whitespace skipped implicitly in between.
type greeting struct{}

func (greeting) Rule() rule.Rule[byte] {
	return dsl.Seq[byte](
		dsl.Lit([]byte("hello"), "hello"),
		dsl.Lit([]byte("world"), "world"),
	)
}

func (greeting) Whitespace() rule.Rule[byte] {
	return dsl.Class[byte](charclass.ASCIISpace)
}

func (greeting) Value() value.Value[string] {
	return value.Callback[string](func(rule.Args) string { return "hello world" })
}

func TestValidateSucceedsOnMatchingInput(t *testing.T) {
	result := action.Validate[byte]("greeting", greeting{}, []byte("hello   world"))
	assert.True(t, result.IsSuccess())
	assert.Empty(t, result.Errors)
}

func TestValidateFailsWithExpectedLiteral(t *testing.T) {
	result := action.Validate[byte]("greeting", greeting{}, []byte("hello"))
	assert.True(t, result.IsFatalError())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "expected_literal", result.Errors[0].Tag.TagName())
}

func TestParseBuildsValue(t *testing.T) {
	result := action.Parse[byte, string]("greeting", greeting{}, []byte("helloworld"))
	require.True(t, result.IsSuccess())
	assert.Equal(t, "hello world", result.Value)
}

func TestParseAsTreeEmitsTokenLeaves(t *testing.T) {
	result, tree := action.ParseAsTree[byte, string]("greeting", greeting{}, []byte("hello   world"))
	require.True(t, result.IsSuccess())
	require.NotNil(t, tree)
	assert.Equal(t, "greeting", tree.Production)

	var kinds []string
	var walk func(n *action.TreeNode[byte])
	walk = func(n *action.TreeNode[byte]) {
		if n.IsLeaf() {
			kinds = append(kinds, n.Token.Kind.String())
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	assert.Equal(t, []string{"literal", "whitespace", "literal"}, kinds)
}

func TestTreeNodeTokensAndKindCounts(t *testing.T) {
	_, tree := action.ParseAsTree[byte, string]("greeting", greeting{}, []byte("hello   world"))
	require.NotNil(t, tree)

	leaves := tree.Tokens()
	require.Len(t, leaves, 3)
	for _, leaf := range leaves {
		assert.True(t, leaf.IsLeaf())
	}
	assert.Equal(t, "literal", leaves[0].Token.Kind.String())
	assert.Equal(t, "whitespace", leaves[1].Token.Kind.String())
	assert.Equal(t, "literal", leaves[2].Token.Kind.String())

	counts := tree.KindCounts()
	assert.Equal(t, 2, counts[leaves[0].Token.Kind])
	assert.Equal(t, 1, counts[leaves[1].Token.Kind])
}

func TestTraceRecordsProductionBoundaries(t *testing.T) {
	result, entries := action.Trace[byte, string]("greeting", greeting{}, []byte("helloworld"), nil)
	require.True(t, result.IsSuccess())
	require.NotEmpty(t, entries)
	assert.Equal(t, pctx.ProductionStart, entries[0].Kind)
	assert.Equal(t, pctx.ProductionFinish, entries[len(entries)-1].Kind)
}

// TestConcurrentParsesAreIndependent exercises spec.md §5's "thread-compatible,
// not thread-aware" claim: each production.Run call builds its own
// ControlBlock and Context, so N parses of independent inputs can run on
// independent goroutines with no shared mutable state between them.
func TestConcurrentParsesAreIndependent(t *testing.T) {
	const n = 8
	results := make([]action.Result[string], n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			input := []byte(fmt.Sprintf("hello%sworld", spaces(i)))
			results[i] = action.Parse[byte, string]("greeting", greeting{}, input)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, r := range results {
		require.Truef(t, r.IsSuccess(), "run %d", i)
		assert.Equal(t, "hello world", r.Value)
	}
}

func spaces(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

// TestParseAsTreeIsDeterministic uses go-cmp to confirm that ParseAsTree
// builds an identical tree across repeated runs of the same input, since
// the handler carries no state beyond what each run constructs itself.
func TestParseAsTreeIsDeterministic(t *testing.T) {
	_, first := action.ParseAsTree[byte, string]("greeting", greeting{}, []byte("hello   world"))
	_, second := action.ParseAsTree[byte, string]("greeting", greeting{}, []byte("hello   world"))

	require.NotNil(t, first)
	require.NotNil(t, second)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("tree mismatch across repeated runs (-first +second):\n%s", diff)
	}
}
