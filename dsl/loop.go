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

package dsl

import (
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
)

// breakRule ends its enclosing Loop's current iteration immediately,
// without running whatever sequence elements follow it. It is not usable
// outside a Loop body; Loop hands the caller its own breakRule instance via
// the makeBody callback, since Go has no equivalent of lexy's
// parent-rule-introspecting break_ keyword.
type breakRule[U any] struct {
	fired *bool
}

func (b *breakRule[U]) IsBranch() bool { return false }
func (b *breakRule[U]) IsToken() bool  { return false }

// Parse sets the loop's break flag and returns success without invoking
// next, so nothing after break_ in the same sequence runs this iteration.
func (b *breakRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	*b.fired = true
	return true
}

// loopRule implements Loop: body (built from the break rule Loop hands it)
// runs repeatedly until an iteration fires break_, or fails.
type loopRule[U any] struct {
	makeBody func(brk rule.Rule[U]) rule.Rule[U]
}

// Loop repeats the rule makeBody builds (using the break rule passed to it
// to end the loop) until that iteration invokes break_, or the body itself
// fails to match.
func Loop[U any](makeBody func(brk rule.Rule[U]) rule.Rule[U]) *loopRule[U] {
	return &loopRule[U]{makeBody: makeBody}
}

func (lp *loopRule[U]) IsBranch() bool { return false }
func (lp *loopRule[U]) IsToken() bool  { return false }

func (lp *loopRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	fired := new(bool)
	body := lp.makeBody(&breakRule[U]{fired: fired})
	curArgs := args
	for {
		*fired = false
		ok := body.Parse(c, r, nil, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], produced rule.Args) bool {
			curArgs = curArgs.Append(produced...)
			return true
		}))
		if !ok {
			return false
		}
		if *fired {
			return next.Parse(c, r, curArgs)
		}
	}
}
