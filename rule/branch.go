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

package rule

import (
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/reader"
)

// Outcome is the three-way result of probing a Branch without committing.
type Outcome int

const (
	// Taken means the rule's characteristic prefix (or, for an
	// unconditional branch, the whole rule) matched; the reader has been
	// advanced to the probe end and the branch is committed. The caller
	// must call Finish to complete the match.
	Taken Outcome = iota
	// Backtracked means the rule does not apply here; the reader is
	// unchanged and the caller is free to try another alternative.
	Backtracked
	// Failed means the characteristic prefix matched but what followed did
	// not; the reader is at the failure point and an error has already
	// been reported through the context. The caller must propagate
	// failure, not try another alternative.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Taken:
		return "taken"
	case Backtracked:
		return "backtracked"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Branch is the two-phase parser a Rule exposes when it can be probed ahead
// of commitment, letting combinators like Alt and Switch try alternatives
// without backtracking machinery of their own.
type Branch[U any] interface {
	Rule[U]

	// IsUnconditional reports whether TryParse always returns Taken without
	// consuming input, letting a parent combinator skip the probe (and, for
	// an Alt, guaranteeing every alternative after this one is dead code).
	IsUnconditional() bool

	// TryParse probes the branch's characteristic prefix. On Taken or
	// Failed, r has been advanced (to the probe end, or the failure point,
	// respectively); on Backtracked, r is unchanged. The returned Args holds
	// any values produced during the probe itself, to be threaded through
	// to Finish.
	TryParse(c *pctx.Context[U], r *reader.Reader[U]) (Outcome, Args)

	// Cancel abandons a Taken probe: it reports a Backtracked event
	// spanning the probed range and restores the reader to where it was
	// before TryParse. Only valid to call immediately after a Taken result.
	Cancel(c *pctx.Context[U], r *reader.Reader[U], begin reader.Iterator)

	// Finish completes a Taken probe: it parses whatever of the rule
	// remained after the characteristic prefix and, on success, invokes
	// next with probeArgs plus anything Finish itself produced.
	Finish(c *pctx.Context[U], r *reader.Reader[U], probeArgs Args, next Next[U]) bool
}
