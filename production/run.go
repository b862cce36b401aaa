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

// Run is the parse driver (spec.md §2): it builds a fresh ControlBlock and
// root Context bound to handler, wraps units in a Reader, and invokes root's
// production rule. It does not itself require the reader to reach EOF; a
// grammar that must consume all of its input composes its root rule with an
// explicit end-of-input token (see dsl.EOF) to get that guarantee.
//
// userState is an action-specific accumulator (an error collector, a tree
// builder, a trace buffer) that rules can reach back out to via
// Context.Control().UserState(), for the rare combinator that needs to
// correlate with action-level state beyond what Args/Value already carries.
func Run[U any, T any](name string, root Production[U, T], handler pctx.Handler[U], userState any, units []U) (success bool, result T, consumedTo reader.Iterator) {
	control := pctx.NewControlBlock(name, userState)
	if ws, has := whitespaceOf[U](root); has {
		control.SetRootWhitespace(ws)
	}
	c := pctx.NewRoot[U](handler, control)
	r := reader.New(units)

	var out T
	final := rule.NextFunc[U](func(_ *pctx.Context[U], rr *reader.Reader[U], args rule.Args) bool {
		if len(args) > 0 {
			if v, ok := args[len(args)-1].(T); ok {
				out = v
			}
		}
		consumedTo = rr.Position()
		return true
	})
	ok := Ref[U, T](name, root).Parse(c, &r, nil, final)
	return ok, out, consumedTo
}
