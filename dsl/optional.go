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

// optWrap tags Opt's probe result so Finish knows whether alt actually
// matched (and so must itself be Finish'd) or backtracked (nothing more to
// do, alt never appended anything).
type optWrap struct {
	matched bool
}

// optRule implements Opt: alt if it matches, nothing (not a failure) if it
// doesn't. It is always unconditional — TryParse never Backtracks — since
// the absence of alt is itself a successful outcome.
type optRule[U any] struct {
	alt rule.Branch[U]
}

// Opt makes alt's absence a successful, value-less match instead of a
// failure: spec.md's "A?".
func Opt[U any](alt rule.Branch[U]) *optRule[U] {
	return &optRule[U]{alt: alt}
}

func (o *optRule[U]) IsBranch() bool        { return true }
func (o *optRule[U]) IsToken() bool         { return false }
func (o *optRule[U]) IsUnconditional() bool { return true }

func (o *optRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	outcome, probeArgs := o.alt.TryParse(c, r)
	switch outcome {
	case rule.Taken:
		return o.alt.Finish(c, r, probeArgs, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], produced rule.Args) bool {
			return next.Parse(c, r, args.Append(produced...))
		}))
	case rule.Failed:
		return false
	default:
		return next.Parse(c, r, args)
	}
}

func (o *optRule[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	outcome, probeArgs := o.alt.TryParse(c, r)
	switch outcome {
	case rule.Taken:
		return rule.Taken, probeArgs.Append(optWrap{matched: true})
	case rule.Failed:
		return rule.Failed, nil
	default:
		return rule.Taken, rule.Args{optWrap{matched: false}}
	}
}

// Cancel restores the reader itself rather than delegating to alt.Cancel:
// alt's own Cancel contract only applies right after ITS OWN Taken result,
// and when Opt's probe actually backtracked there is nothing for alt to
// undo in the first place.
func (o *optRule[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	end := r.Position()
	r.SetPosition(begin)
	if end != begin {
		c.On(pctx.Event[U]{Kind: pctx.Backtracked, Begin: begin, End: end})
	}
}

func (o *optRule[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	w := probeArgs[len(probeArgs)-1].(optWrap)
	rest := probeArgs[:len(probeArgs)-1]
	if !w.matched {
		return next.Parse(c, r, rest)
	}
	return o.alt.Finish(c, r, rest, next)
}
