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

// Then joins two rules the way Seq does; it exists so a grammar reads
// "Then(a, b)" at a call site the way spec.md's "A>>B" notation suggests,
// without forcing every pairwise join through a variadic Seq call.
func Then[U any](a, b rule.Rule[U]) rule.Rule[U] {
	return Seq[U](a, b)
}

// altRule implements Alt (spec.md's "A|B"): it probes each alternative in
// order and commits to the first whose characteristic prefix is Taken. A
// Failed probe propagates immediately — once a branch commits, Alt never
// backtracks past it. If every alternative backtracks, it reports
// ExhaustedChoice at the position where probing began.
type altRule[U any] struct {
	alts []rule.Branch[U]
}

// Alt tries each alternative in order, branch-probing so only the first
// whose characteristic prefix matches is committed to.
func Alt[U any](alts ...rule.Branch[U]) *altRule[U] {
	return &altRule[U]{alts: alts}
}

func (a *altRule[U]) IsBranch() bool { return true }
func (a *altRule[U]) IsToken() bool  { return false }

func (a *altRule[U]) IsUnconditional() bool {
	for _, alt := range a.alts {
		if alt.IsUnconditional() {
			return true
		}
	}
	return false
}

func (a *altRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	outcome, probeArgs, idx := a.tryAll(c, r)
	switch outcome {
	case rule.Taken:
		// Finish only hands its continuation what the winning alternative
		// itself produced; merge in the args accumulated before this Alt.
		return a.alts[idx].Finish(c, r, probeArgs, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], produced rule.Args) bool {
			return next.Parse(c, r, args.Append(produced...))
		}))
	case rule.Failed:
		return false
	default:
		c.Fail(perror.New(perror.ExhaustedChoice{Pos: r.Position()}, c.Production()))
		return false
	}
}

// tryAll probes every alternative in order, stopping at the first Taken or
// Failed; idx is only meaningful when outcome is Taken.
func (a *altRule[U]) tryAll(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args, int) {
	for i, alt := range a.alts {
		begin := r.Position()
		outcome, probeArgs := alt.TryParse(c, r)
		switch outcome {
		case rule.Taken:
			return rule.Taken, probeArgs, i
		case rule.Failed:
			return rule.Failed, nil, i
		default:
			_ = begin // Backtracked: alt already restored r itself.
		}
	}
	return rule.Backtracked, nil, -1
}

func (a *altRule[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	outcome, probeArgs, idx := a.tryAll(c, r)
	if outcome != rule.Taken {
		return outcome, nil
	}
	return rule.Taken, probeArgs.Append(idx)
}

func (a *altRule[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	// The winning alternative's own TryParse already advanced r past begin;
	// its index travelled in probeArgs' last element via TryParse above, but
	// Cancel does not receive that Args, so it restores the reader itself and
	// reports the probed span as Backtracked, as the other branch rules do.
	end := r.Position()
	r.SetPosition(begin)
	if end != begin {
		c.On(pctx.Event[U]{Kind: pctx.Backtracked, Begin: begin, End: end})
	}
}

func (a *altRule[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	idx := probeArgs[len(probeArgs)-1].(int)
	rest := probeArgs[:len(probeArgs)-1]
	return a.alts[idx].Finish(c, r, rest, next)
}
