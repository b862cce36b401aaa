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

package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
)

// echoRule is a minimal Rule used only to exercise the Args/Next plumbing.
type echoRule struct{ value any }

func (e echoRule) IsBranch() bool { return false }
func (e echoRule) IsToken() bool  { return false }
func (e echoRule) Parse(c *pctx.Context[byte], r *reader.Reader[byte], args rule.Args, next rule.Next[byte]) bool {
	return next.Parse(c, r, args.Append(e.value))
}

func TestArgsAppendIsImmutable(t *testing.T) {
	base := rule.Args{1}
	extended := base.Append(2)
	assert.Equal(t, rule.Args{1}, base)
	assert.Equal(t, rule.Args{1, 2}, extended)
}

func TestRuleChainThreadsArgs(t *testing.T) {
	cb := pctx.NewControlBlock("root", nil)
	c := pctx.NewRoot[byte](nil, cb)
	r := reader.New([]byte("x"))

	var got rule.Args
	final := rule.NextFunc[byte](func(_ *pctx.Context[byte], _ *reader.Reader[byte], args rule.Args) bool {
		got = args
		return true
	})

	first := echoRule{value: "a"}
	second := echoRule{value: "b"}
	next := rule.NextFunc[byte](func(c *pctx.Context[byte], r *reader.Reader[byte], args rule.Args) bool {
		return second.Parse(c, r, args, final)
	})

	ok := first.Parse(c, &r, nil, next)
	require.True(t, ok)
	assert.Equal(t, rule.Args{"a", "b"}, got)
}

func TestAcceptAlwaysSucceeds(t *testing.T) {
	cb := pctx.NewControlBlock("root", nil)
	c := pctx.NewRoot[byte](nil, cb)
	r := reader.New([]byte(""))
	assert.True(t, rule.Accept[byte]().Parse(c, &r, nil))
}
