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

package production

import (
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
)

// recurse is the rule Recurse returns: it defers resolving the production
// value until the moment it actually parses, so a grammar can reference a
// production before the Go value describing it is fully built (a struct
// literal referencing itself, or two productions referencing each other).
type recurse[U any, T any] struct {
	name  string
	thunk func() Production[U, T]
}

// Recurse returns a rule.Rule that, when parsed, invokes production p the
// way Ref would, except thunk is only called at parse time. Unlike Ref, the
// result never reports IsBranch true even if p's Rule turns out to be a
// Branch: this is deliberate (spec.md §4.W) so a recursive grammar's
// self-reference doesn't try to propagate branch-ness back through itself.
// In Go this mostly matters for initialization order: thunk can safely
// close over a var that isn't fully assigned until package init completes,
// as long as nothing parses before then.
func Recurse[U any, T any](name string, thunk func() Production[U, T]) rule.Rule[U] {
	return &recurse[U, T]{name: name, thunk: thunk}
}

func (rc *recurse[U, T]) IsBranch() bool { return false }
func (rc *recurse[U, T]) IsToken() bool  { return false }

func (rc *recurse[U, T]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	return Ref[U, T](rc.name, rc.thunk()).Parse(c, r, args, next)
}
