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

package pctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
)

func TestWhitespaceResolutionFlags(t *testing.T) {
	cb := pctx.NewControlBlock("root", nil)
	root := pctx.NewRoot[byte](nil, cb)
	assert.False(t, root.IsTokenProduction())
	assert.False(t, root.InNoWhitespaceScope())

	tok := root.EnterProduction("ident", true)
	assert.True(t, tok.IsTokenProduction())

	nested := tok.EnterProduction("inner", false)
	assert.True(t, nested.IsTokenProduction(), "token-production-ness must propagate to descendants")

	noWS := root.EnterNoWhitespace()
	assert.True(t, noWS.InNoWhitespaceScope())
	assert.False(t, root.InNoWhitespaceScope(), "parent must not observe a child's scope")
}

func TestCounterScoping(t *testing.T) {
	cb := pctx.NewControlBlock("root", nil)
	root := pctx.NewRoot[byte](nil, cb)

	ctr := pctx.NewCounter()
	_, ok := pctx.CounterValue(root, ctr)
	assert.False(t, ok, "unbound counter must report not-ok")

	bound := pctx.BindCounter(root, ctr, 3)
	v, ok := pctx.CounterValue(bound, ctr)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	require.True(t, pctx.AddToCounter(bound, ctr, 2))
	v, _ = pctx.CounterValue(bound, ctr)
	assert.Equal(t, 5, v)
}

func TestFlagScoping(t *testing.T) {
	cb := pctx.NewControlBlock("root", nil)
	root := pctx.NewRoot[byte](nil, cb)

	fl := pctx.NewFlag()
	bound := pctx.BindFlag(root, fl, false)
	v, ok := pctx.FlagValue(bound, fl)
	require.True(t, ok)
	assert.False(t, v)

	require.True(t, pctx.SetFlag(bound, fl, true))
	v, _ = pctx.FlagValue(bound, fl)
	assert.True(t, v)
}

func TestCapturedIdentifierEquality(t *testing.T) {
	cb := pctx.NewControlBlock("root", nil)
	root := pctx.NewRoot[byte](nil, cb)

	id := pctx.NewCapturedIdentifier[byte]()
	_, hasPrior := id.Equals(root, []byte("tag"))
	assert.False(t, hasPrior)

	bound := id.Bind(root, []byte("tag"))
	equal, hasPrior := id.Equals(bound, []byte("tag"))
	require.True(t, hasPrior)
	assert.True(t, equal)

	equal, hasPrior = id.Equals(bound, []byte("other"))
	require.True(t, hasPrior)
	assert.False(t, equal)
}

func TestControlBlockRecursionLimit(t *testing.T) {
	cb := pctx.NewControlBlock("root", nil)
	ok, depth := cb.Enter(2)
	require.True(t, ok)
	assert.Equal(t, 1, depth)

	ok, depth = cb.Enter(2)
	require.True(t, ok)
	assert.Equal(t, 2, depth)

	ok, _ = cb.Enter(2)
	assert.False(t, ok, "third nesting level exceeds the limit of 2")

	cb.Leave()
	cb.Leave()
	cb.Leave()
	assert.Equal(t, 0, cb.Depth())
}

func TestContextFailReportsErrorEvent(t *testing.T) {
	var got []pctx.Event[byte]
	handler := pctx.HandlerFunc[byte](func(e pctx.Event[byte]) { got = append(got, e) })
	cb := pctx.NewControlBlock("root", nil)
	root := pctx.NewRoot[byte](handler, cb)

	root.Fail(perror.New(perror.ExhaustedChoice{Pos: 3}, "root"))
	require.Len(t, got, 1)
	assert.Equal(t, pctx.ErrorRaised, got[0].Kind)
	assert.Equal(t, "root", got[0].Production)
}
