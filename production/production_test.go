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

package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/parsekit/charclass"
	"github.com/parsekit/parsekit/dsl"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/production"
	"github.com/parsekit/parsekit/rule"
)

// wordPair matches two identifiers separated by implicit ASCII-space
// whitespace, the minimal shape needed to exercise step 3 of whitespace
// resolution (spec.md §4.W).
type wordPair struct{}

func (wordPair) Rule() rule.Rule[byte] {
	word := dsl.NewIdentifier[byte](charclass.ASCIIAlpha, charclass.ASCIIAlpha)
	return dsl.Seq[byte](word, word)
}

func (wordPair) Whitespace() rule.Rule[byte] {
	return dsl.Class[byte](charclass.ASCIISpace)
}

func runProduction[U any, T any](name string, root production.Production[U, T], units []U) (bool, T, []perror.Error) {
	collector := &perror.Collector{}
	handler := pctx.HandlerFunc[U](func(e pctx.Event[U]) {
		if e.Kind == pctx.ErrorRaised {
			collector.Report(e.Err)
		}
	})
	ok, val, _ := production.Run[U, T](name, root, handler, nil, units)
	return ok, val, collector.All()
}

func TestWhitespaceResolvedBetweenTokens(t *testing.T) {
	ok, _, errs := runProduction[byte, struct{}]("wordPair", wordPair{}, []byte("foo   bar"))
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestWhitespaceNotRequiredWhenAbsent(t *testing.T) {
	// Seq doesn't itself demand whitespace, it is only skipped if present.
	// Without any, the first identifier greedily consumes all of "foobar",
	// so the second one finds nothing left and the parse fails.
	ok, _, errs := runProduction[byte, struct{}]("wordPair", wordPair{}, []byte("foobar"))
	assert.False(t, ok)
	require.NotEmpty(t, errs)
}

// tokenWord embeds TokenProduction to disable implicit whitespace for its
// subtree (spec.md §4.W step 1), even though it declares the same
// Whitespace rule as wordPair.
type tokenWord struct {
	production.TokenProduction
}

func (tokenWord) Rule() rule.Rule[byte] {
	return dsl.NewIdentifier[byte](charclass.ASCIIAlpha, charclass.ASCIIAlpha)
}

func (tokenWord) Whitespace() rule.Rule[byte] {
	return dsl.Class[byte](charclass.ASCIISpace)
}

type tokenPair struct{}

func (tokenPair) Rule() rule.Rule[byte] {
	return dsl.Seq[byte](production.Ref[byte, struct{}]("tokenWord", tokenWord{}), dsl.Lit([]byte(" "), `" "`))
}

func TestTokenProductionDisablesWhitespace(t *testing.T) {
	// tokenWord's own identifier match never skips whitespace even though
	// it declares a Whitespace rule, so the literal space that follows must
	// be matched explicitly by tokenPair rather than silently absorbed.
	ok, _, errs := runProduction[byte, struct{}]("tokenPair", tokenPair{}, []byte("foo "))
	assert.True(t, ok)
	assert.Empty(t, errs)
}

// deepRecursion recurses into itself without ever consuming input, so any
// finite MaxRecursionDepth is guaranteed to trip RecursionLimitExceeded.
type deepRecursion struct{}

func (deepRecursion) MaxRecursionDepth() int { return 8 }

func (deepRecursion) Rule() rule.Rule[byte] {
	return production.Recurse[byte, struct{}]("deepRecursion", func() production.Production[byte, struct{}] {
		return deepRecursion{}
	})
}

func TestRecursionLimitExceeded(t *testing.T) {
	ok, _, errs := runProduction[byte, struct{}]("deepRecursion", deepRecursion{}, []byte(""))
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "recursion_limit_exceeded", errs[0].Tag.TagName())
}

// transparentGroup embeds TransparentProduction so action.ParseAsTree
// splices its children into its parent instead of emitting a node for it.
type transparentGroup struct {
	production.TransparentProduction
}

func (transparentGroup) Rule() rule.Rule[byte] {
	return dsl.Lit([]byte("x"), `"x"`)
}

func TestTransparentProductionIsMarked(t *testing.T) {
	assert.True(t, production.IsTransparentProduction(transparentGroup{}))
	assert.False(t, production.IsTransparentProduction(wordPair{}))
}

// recursiveList matches one "a" and then unconditionally recurses into
// itself via Recurse, proving the self-reference resolves its thunk lazily
// at parse time rather than looping at construction time (a struct literal
// referencing its own type would otherwise never finish building).
type recursiveList struct{}

func (recursiveList) Rule() rule.Rule[byte] {
	one := dsl.Lit([]byte("a"), `"a"`)
	recurse := production.Recurse[byte, struct{}]("recursiveList", func() production.Production[byte, struct{}] {
		return recursiveList{}
	})
	return dsl.Seq[byte](one, recurse)
}

func TestRecurseResolvesThunkAtParseTime(t *testing.T) {
	// The chain keeps recursing past the last "a", so it fails exactly once
	// it runs out of input, cascading a single ExpectedLiteral failure back
	// up through every enclosing recursiveList production.
	ok, _, errs := runProduction[byte, struct{}]("recursiveList", recursiveList{}, []byte("aaa"))
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "expected_literal", errs[0].Tag.TagName())
}
