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
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
)

// CombinationElement is one branch of a Combination: cond identifies it,
// body runs once cond is selected. Combination marks an element used the
// moment it is ever selected, whether or not body appended a value — unlike
// a naive "retry forever" search, this makes an always-available (IsBranch
// unconditional) element with no value safe by construction instead of
// needing a static check at construction time: it can only ever fire once.
type CombinationElement[U any] struct {
	combined rule.Branch[U]
	optional bool
}

// Elem pairs a selector condition with the rule to run once it is chosen.
func Elem[U any](cond rule.Branch[U], body rule.Rule[U]) CombinationElement[U] {
	combined, _ := Seq[U](cond, body).(rule.Branch[U])
	return CombinationElement[U]{combined: combined}
}

// Optional marks e as not required for Combination to succeed.
// PartialCombination never requires any element, so it ignores this mark.
func (e CombinationElement[U]) Optional() CombinationElement[U] {
	e.optional = true
	return e
}

type combItem[U any] struct {
	el   CombinationElement[U]
	used bool
}

type combinationRule[U any] struct {
	elems   []*combItem[U]
	partial bool
}

// Combination matches every element exactly once, in any order the input
// presents them; a repeated element is CombinationDuplicate, and any element
// never selected by the time no more match is an error.
func Combination[U any](elems ...CombinationElement[U]) *combinationRule[U] {
	return newCombinationRule(elems, false)
}

// PartialCombination is Combination without the "every element must appear"
// requirement: it stops as soon as no element's condition matches, and no
// element is reported as missing, whether marked Optional or not (a
// trailing, unrecognized one simply ends the match). A repeated element is
// still CombinationDuplicate.
func PartialCombination[U any](elems ...CombinationElement[U]) *combinationRule[U] {
	return newCombinationRule(elems, true)
}

func newCombinationRule[U any](elems []CombinationElement[U], partial bool) *combinationRule[U] {
	items := make([]*combItem[U], len(elems))
	for i, e := range elems {
		items[i] = &combItem[U]{el: e}
	}
	return &combinationRule[U]{elems: items, partial: partial}
}

func (cr *combinationRule[U]) IsBranch() bool { return false }
func (cr *combinationRule[U]) IsToken() bool  { return false }

func (cr *combinationRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	curArgs := args
	for {
		matchedIdx := -1
		duplicateIdx := -1
		begin := r.Position()
		for i, it := range cr.elems {
			if it.el.combined == nil || !quietProbe(c, *r, it.el.combined) {
				continue
			}
			if it.used {
				duplicateIdx = i
			} else {
				matchedIdx = i
			}
			break
		}
		if duplicateIdx >= 0 {
			c.Fail(perror.New(perror.CombinationDuplicate{Begin: begin, End: r.Position()}, c.Production()))
			return false
		}
		if matchedIdx < 0 {
			break
		}
		it := cr.elems[matchedIdx]
		var produced rule.Args
		ok := it.el.combined.Parse(c, r, nil, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
			produced = a
			return true
		}))
		if !ok {
			return false
		}
		it.used = true
		curArgs = curArgs.Append(produced...)
	}
	if !cr.partial {
		for _, it := range cr.elems {
			if !it.used && !it.el.optional {
				c.Fail(perror.New(perror.ExhaustedChoice{Pos: r.Position()}, c.Production()))
				return false
			}
		}
	}
	return next.Parse(c, r, curArgs)
}
