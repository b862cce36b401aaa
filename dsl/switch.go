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

// SwitchCase pairs a selector condition with the rule to run once it wins.
type SwitchCase[U any] struct {
	cond rule.Branch[U]
	body rule.Rule[U]
}

// Case builds one SwitchCase.
func Case[U any](cond rule.Branch[U], body rule.Rule[U]) SwitchCase[U] {
	return SwitchCase[U]{cond: cond, body: body}
}

// switchRule implements Switch: the first case whose condition matches
// wins; if none do, ExhaustedSwitch is reported.
type switchRule[U any] struct {
	cases []SwitchCase[U]
}

// Switch tries each case's condition in order and runs the first one that
// matches, like Alt but pairing each branch with its own follow-up rule
// inline rather than requiring the caller to Seq them manually.
func Switch[U any](cases ...SwitchCase[U]) *switchRule[U] {
	return &switchRule[U]{cases: cases}
}

func (s *switchRule[U]) IsBranch() bool { return false }
func (s *switchRule[U]) IsToken() bool  { return false }

func (s *switchRule[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	begin := r.Position()
	for _, cs := range s.cases {
		outcome, probeArgs := cs.cond.TryParse(c, r)
		switch outcome {
		case rule.Taken:
			return cs.cond.Finish(c, r, probeArgs, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], produced rule.Args) bool {
				return cs.body.Parse(c, r, args.Append(produced...), next)
			}))
		case rule.Failed:
			return false
		default:
			continue
		}
	}
	c.Fail(perror.New(perror.ExhaustedSwitch{Begin: begin, End: r.Position()}, c.Production()))
	return false
}
