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
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/token"
)

// Ref builds the rule that invokes production p under name: it resolves
// whitespace (spec.md §4.W), enforces the recursion cap, fires
// production_start paired with exactly one of production_finish/
// production_cancel, and (if p declares a Value) builds p's result and
// appends it to the argument list handed to whatever follows.
//
// This is the spec's "p<Production>" realization. If p's own Rule is a
// Branch, the returned rule is a Branch too (TryParse probes p's rule
// without firing production_start until the probe is Taken); see Recurse
// for the reference form that deliberately does not propagate branch-ness.
func Ref[U any, T any](name string, p Production[U, T]) rule.Rule[U] {
	inner := p.Rule()
	if b, ok := inner.(rule.Branch[U]); ok {
		return &branchProdRef[U, T]{name: name, p: p, inner: b}
	}
	return &prodRef[U, T]{name: name, p: p, inner: inner}
}

func computeValue[T any](p any, args rule.Args) T {
	if wv, ok := p.(WithValue[T]); ok {
		return wv.Value().Build(args)
	}
	var zero T
	return zero
}

// beginProduction enforces the recursion cap and, if still within it,
// builds the production's sub-context (whitespace-resolved, token-production
// flagged) and fires production_start. On a recursion-limit failure it
// reports perror.RecursionLimitExceeded through c and returns ok=false
// without firing production_start (the production never started).
func beginProduction[U any](c *pctx.Context[U], name string, p any, begin reader.Iterator) (*pctx.Context[U], bool) {
	control := c.Control()
	ok, depth := control.Enter(maxDepthOf(p))
	if !ok {
		control.Leave()
		c.Fail(perror.New(perror.RecursionLimitExceeded{Pos: begin, Depth: depth}, name))
		return nil, false
	}
	sub := c.EnterProduction(name, IsTokenProduction(p))
	if ws, has := whitespaceOf[U](p); has {
		sub = bindWhitespace(sub, control, ws)
	} else if rw, ok := control.RootWhitespace().(rule.Rule[U]); ok && rw != nil {
		sub = bindWhitespace(sub, control, rw)
	}
	c.On(pctx.Event[U]{Kind: pctx.ProductionStart, Production: name, Begin: begin, End: begin, Transparent: IsTransparentProduction(p)})
	return sub, true
}

// bindWhitespace returns a sub-context whose whitespace skipper greedily
// matches ws zero-or-more times, reporting the whole consumed span (if any)
// as a single token.Whitespace event rather than whatever kind ws's own
// sub-rules would otherwise emit. The probe itself runs against a
// discard-handler scratch context sharing control (so recursion/user-state
// still thread through) so ws's internal token events don't leak twice.
func bindWhitespace[U any](c *pctx.Context[U], control *pctx.ControlBlock, ws rule.Rule[U]) *pctx.Context[U] {
	scratchRoot := pctx.NewRoot[U](pctx.DiscardHandler[U](), control).EnterNoWhitespace()
	return c.WithWhitespaceSkip(func(r *reader.Reader[U]) {
		begin := r.Position()
		for {
			before := r.Position()
			if !ws.Parse(scratchRoot, r, nil, rule.Accept[U]()) || r.Position() == before {
				break
			}
		}
		if end := r.Position(); end != begin {
			c.On(pctx.Event[U]{
				Kind:  pctx.TokenMatched,
				Begin: begin,
				End:   end,
				Token: token.Token[U]{Kind: token.Whitespace, Lexeme: token.Lexeme[U]{Begin: begin, End: end}},
			})
		}
	})
}

// prodRef is the non-branch production reference.
type prodRef[U any, T any] struct {
	name  string
	p     Production[U, T]
	inner rule.Rule[U]
}

func (pr *prodRef[U, T]) IsBranch() bool { return false }
func (pr *prodRef[U, T]) IsToken() bool  { return false }

func (pr *prodRef[U, T]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	sub, ok := beginProduction(c, pr.name, pr.p, begin)
	if !ok {
		return false
	}
	var produced rule.Args
	innerOK := pr.inner.Parse(sub, r, nil, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
		produced = a
		return true
	}))
	c.Control().Leave()
	end := r.Position()
	if !innerOK {
		c.On(pctx.Event[U]{Kind: pctx.ProductionCancel, Production: pr.name, Begin: begin, End: end, Transparent: IsTransparentProduction(pr.p)})
		return false
	}
	val := computeValue[T](pr.p, produced)
	c.On(pctx.Event[U]{Kind: pctx.ProductionFinish, Production: pr.name, Begin: begin, End: end, Transparent: IsTransparentProduction(pr.p)})
	return next.Parse(c, r, args.Append(val))
}

// branchProdRef is the production reference used when p's own rule is a
// Branch: probing the production does not fire production_start until the
// probe is Taken, so an enclosing Alt can try sibling productions without
// ever having "started" this one.
type branchProdRef[U any, T any] struct {
	name  string
	p     Production[U, T]
	inner rule.Branch[U]
}

func (pr *branchProdRef[U, T]) IsBranch() bool { return true }
func (pr *branchProdRef[U, T]) IsToken() bool  { return false }

func (pr *branchProdRef[U, T]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	outcome, probeArgs := pr.TryParse(c, r)
	switch outcome {
	case rule.Backtracked:
		// The probe reports nothing when it backtracks; parse the production
		// the ordinary way so its rule reports the failure through c.
		return (&prodRef[U, T]{name: pr.name, p: pr.p, inner: pr.inner}).Parse(c, r, args, next)
	case rule.Failed:
		return false
	default:
		// Finish only ever hands its continuation what this production
		// itself produced; merge in whatever the caller had already
		// accumulated before this rule ran.
		return pr.Finish(c, r, probeArgs, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], produced rule.Args) bool {
			return next.Parse(c, r, args.Append(produced...))
		}))
	}
}

func (pr *branchProdRef[U, T]) IsUnconditional() bool { return pr.inner.IsUnconditional() }

func (pr *branchProdRef[U, T]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	begin := r.Position()
	// Simplification: the characteristic-prefix probe runs under the
	// caller's context, not this production's own whitespace/token-
	// production scope, so it only takes effect from Finish onward. This
	// matches every other branch rule's probe (no sub-context either) and
	// only matters for productions whose whitespace differs from their
	// parent's during the probed prefix itself.
	outcome, probeArgs := pr.inner.TryParse(c, r)
	if outcome != rule.Taken {
		return outcome, nil
	}
	sub, ok := beginProduction(c, pr.name, pr.p, begin)
	if !ok {
		return rule.Failed, nil
	}
	return wrapOutcome[U]{outcome: outcome, sub: sub, begin: begin}.pack(probeArgs)
}

// wrapOutcome threads the sub-context built for this probe alongside the
// inner outcome/args so Cancel/Finish (called later, against the outer
// context) can still resolve the right production sub-context. Args' last
// element is reserved for this bookkeeping and stripped back off before
// being handed to the grammar.
type wrapOutcome[U any] struct {
	outcome rule.Outcome
	sub     *pctx.Context[U]
	begin   reader.Iterator
}

func (w wrapOutcome[U]) pack(probeArgs rule.Args) (rule.Outcome, rule.Args) {
	return w.outcome, probeArgs.Append(w)
}

func unpackWrap[U any](args rule.Args) (wrapOutcome[U], rule.Args) {
	w := args[len(args)-1].(wrapOutcome[U])
	return w, args[:len(args)-1]
}

func (pr *branchProdRef[U, T]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	pr.inner.Cancel(c, r, begin)
	c.On(pctx.Event[U]{Kind: pctx.Backtracked, Production: pr.name, Begin: begin, End: begin})
}

func (pr *branchProdRef[U, T]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	w, rest := unpackWrap[U](probeArgs)
	if w.outcome == rule.Failed {
		c.Control().Leave()
		c.On(pctx.Event[U]{Kind: pctx.ProductionCancel, Production: pr.name, Begin: w.begin, End: r.Position(), Transparent: IsTransparentProduction(pr.p)})
		return false
	}
	var produced rule.Args
	innerOK := pr.inner.Finish(w.sub, r, rest, rule.NextFunc[U](func(_ *pctx.Context[U], _ *reader.Reader[U], a rule.Args) bool {
		produced = a
		return true
	}))
	c.Control().Leave()
	end := r.Position()
	if !innerOK {
		c.On(pctx.Event[U]{Kind: pctx.ProductionCancel, Production: pr.name, Begin: w.begin, End: end, Transparent: IsTransparentProduction(pr.p)})
		return false
	}
	val := computeValue[T](pr.p, produced)
	c.On(pctx.Event[U]{Kind: pctx.ProductionFinish, Production: pr.name, Begin: w.begin, End: end, Transparent: IsTransparentProduction(pr.p)})
	return next.Parse(c, r, rule.Args{val})
}
