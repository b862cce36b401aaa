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

// repeat implements List, OptList, While, WhileOne, and Times: all five are
// the same "item, optionally separator-delimited, repeated between minCount
// and maxCount times" shape, differing only in those bounds and whether a
// separator is configured.
type repeat[U any] struct {
	item        rule.Branch[U]
	sep         rule.Branch[U]
	trailingSep bool
	minCount    int
	maxCount    int // -1 means unbounded
}

// List matches one-or-more items, optionally separated per Sep/TrailingSep.
func List[U any](item rule.Branch[U]) *repeat[U] {
	return &repeat[U]{item: item, minCount: 1, maxCount: -1}
}

// OptList matches zero-or-more items, optionally separated.
func OptList[U any](item rule.Branch[U]) *repeat[U] {
	return &repeat[U]{item: item, minCount: 0, maxCount: -1}
}

// While matches zero-or-more items with no separator discipline.
func While[U any](item rule.Branch[U]) *repeat[U] {
	return &repeat[U]{item: item, minCount: 0, maxCount: -1}
}

// WhileOne matches one-or-more items with no separator discipline.
func WhileOne[U any](item rule.Branch[U]) *repeat[U] {
	return &repeat[U]{item: item, minCount: 1, maxCount: -1}
}

// Times matches exactly n items, optionally separated (no trailing
// separator is ever permitted for a fixed count).
func Times[U any](n int, item rule.Branch[U]) *repeat[U] {
	return &repeat[U]{item: item, minCount: n, maxCount: n}
}

// Sep requires sep between items, with no trailing separator permitted: an
// extra one after the last item is reported (TrailingSeparator) but still
// consumed.
func (rp *repeat[U]) Sep(sep rule.Branch[U]) *repeat[U] {
	rp.sep = sep
	rp.trailingSep = false
	return rp
}

// TrailingSep requires sep between items and additionally permits one
// trailing separator after the last item.
func (rp *repeat[U]) TrailingSep(sep rule.Branch[U]) *repeat[U] {
	rp.sep = sep
	rp.trailingSep = true
	return rp
}

func (rp *repeat[U]) IsBranch() bool        { return true }
func (rp *repeat[U]) IsToken() bool         { return false }
func (rp *repeat[U]) IsUnconditional() bool { return rp.minCount == 0 }

func (rp *repeat[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	outcome, probeArgs := rp.TryParse(c, r)
	switch outcome {
	case rule.Backtracked:
		// TryParse only backtracks when minCount > 0 and not even the first
		// item is there: too few items, as continueFrom reports them.
		c.Fail(perror.New(perror.ExhaustedChoice{Pos: r.Position()}, c.Production()))
		return false
	case rule.Failed:
		return false
	default:
		return rp.Finish(c, r, probeArgs, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], produced rule.Args) bool {
			return next.Parse(c, r, args.Append(produced...))
		}))
	}
}

// TryParse probes the first item (the repetition's characteristic prefix)
// and, if Taken, drives the rest of the loop eagerly — the whole repetition
// commits once its first element does.
func (rp *repeat[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	if rp.maxCount == 0 {
		return rule.Taken, nil
	}
	begin := r.Position()
	outcome, probeArgs := rp.item.TryParse(c, r)
	switch outcome {
	case rule.Backtracked:
		if rp.minCount > 0 {
			return rule.Backtracked, nil
		}
		return rule.Taken, nil
	case rule.Failed:
		return rule.Failed, nil
	default:
		var produced rule.Args
		ok := rp.item.Finish(c, r, probeArgs, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
			produced = a
			return true
		}))
		if !ok {
			return rule.Failed, nil
		}
		rest, ok2 := rp.continueFrom(1, c, r)
		if !ok2 {
			return rule.Failed, nil
		}
		_ = begin
		return rule.Taken, produced.Append(rest...)
	}
}

// continueFrom runs the loop body starting at the given already-matched
// count, collecting every subsequent item's produced values flattened into
// one Args, until the loop ends (separator absent, max reached, or count
// satisfies a fixed Times).
func (rp *repeat[U]) continueFrom(count int, c *pctx.Context[U], r *reader.Reader[U]) (rule.Args, bool) {
	var all rule.Args
	for rp.maxCount < 0 || count < rp.maxCount {
		if rp.sep != nil {
			sepBegin := r.Position()
			sepOutcome, sepProbeArgs := rp.sep.TryParse(c, r)
			if sepOutcome == rule.Backtracked {
				break
			}
			if sepOutcome == rule.Failed {
				return nil, false
			}
			if !rp.sep.Finish(c, r, sepProbeArgs, rule.Accept[U]()) {
				return nil, false
			}
			itemBegin := r.Position()
			itemOutcome, itemProbeArgs := rp.item.TryParse(c, r)
			if itemOutcome == rule.Backtracked {
				if rp.trailingSep || rp.maxCount >= 0 {
					break
				}
				c.Fail(perror.New(perror.TrailingSeparator{Begin: sepBegin, End: itemBegin}, c.Production()))
				break
			}
			if itemOutcome == rule.Failed {
				return nil, false
			}
			var produced rule.Args
			if !rp.item.Finish(c, r, itemProbeArgs, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
				produced = a
				return true
			})) {
				return nil, false
			}
			all = all.Append(produced...)
			count++
			continue
		}

		itemOutcome, itemProbeArgs := rp.item.TryParse(c, r)
		if itemOutcome == rule.Backtracked {
			break
		}
		if itemOutcome == rule.Failed {
			return nil, false
		}
		var produced rule.Args
		if !rp.item.Finish(c, r, itemProbeArgs, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
			produced = a
			return true
		})) {
			return nil, false
		}
		all = all.Append(produced...)
		count++
	}
	if count < rp.minCount {
		c.Fail(perror.New(perror.ExhaustedChoice{Pos: r.Position()}, c.Production()))
		return nil, false
	}
	return all, true
}

func (rp *repeat[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	end := r.Position()
	r.SetPosition(begin)
	if end != begin {
		c.On(pctx.Event[U]{Kind: pctx.Backtracked, Begin: begin, End: end})
	}
}

func (rp *repeat[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	return next.Parse(c, r, probeArgs)
}
