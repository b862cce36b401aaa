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

// Seq chains rules left to right, threading the accumulating Args through
// each and invoking next once the last one succeeds (spec.md's "A+B"). If
// the first rule is itself a Branch, the returned rule is a Branch whose
// characteristic prefix is the first rule's: an enclosing Alt can probe the
// whole sequence by probing just its head.
func Seq[U any](rules ...rule.Rule[U]) rule.Rule[U] {
	if len(rules) > 0 {
		if b, ok := rules[0].(rule.Branch[U]); ok {
			return &branchSeq[U]{head: b, rest: rules[1:]}
		}
	}
	return &plainSeq[U]{rules: rules}
}

// parseRest runs rules in order starting from the front, finally invoking
// next; shared by plainSeq and branchSeq's Finish.
func parseRest[U any](rules []rule.Rule[U], c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	if len(rules) == 0 {
		return next.Parse(c, r, args)
	}
	return rules[0].Parse(c, r, args, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], args rule.Args) bool {
		return parseRest(rules[1:], c, r, args, next)
	}))
}

type plainSeq[U any] struct {
	rules []rule.Rule[U]
}

func (s *plainSeq[U]) IsBranch() bool { return false }
func (s *plainSeq[U]) IsToken() bool  { return false }

func (s *plainSeq[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	return parseRest(s.rules, c, r, args, next)
}

type branchSeq[U any] struct {
	head rule.Branch[U]
	rest []rule.Rule[U]
}

func (s *branchSeq[U]) IsBranch() bool        { return true }
func (s *branchSeq[U]) IsToken() bool         { return false }
func (s *branchSeq[U]) IsUnconditional() bool { return s.head.IsUnconditional() && len(s.rest) == 0 }

func (s *branchSeq[U]) Parse(c *pctx.Context[U], r *reader.Reader[U], args rule.Args, next rule.Next[U]) bool {
	return s.head.Parse(c, r, args, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], args rule.Args) bool {
		return parseRest(s.rest, c, r, args, next)
	}))
}

func (s *branchSeq[U]) TryParse(c *pctx.Context[U], r *reader.Reader[U]) (rule.Outcome, rule.Args) {
	return s.head.TryParse(c, r)
}

func (s *branchSeq[U]) Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator) {
	s.head.Cancel(c, r, begin)
}

func (s *branchSeq[U]) Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs rule.Args, next rule.Next[U]) bool {
	return s.head.Finish(c, r, probeArgs, rule.NextFunc[U](func(c *pctx.Context[U], r *reader.Reader[U], args rule.Args) bool {
		return parseRest(s.rest, c, r, args, next)
	}))
}
