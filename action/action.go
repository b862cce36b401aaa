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

// Package action implements spec.md §6.2's three standard actions —
// Validate, Parse, and ParseAsTree — plus the Trace action from §6.2/§8,
// each one a consumer of the engine's event stream (package pctx) and
// driver (package production). None of these collaborators is part of the
// core engine itself (spec.md §1 lists "concrete output actions" as
// out-of-scope for the core), but a usable module needs at least the
// standard ones wired end-to-end.
package action

import (
	"github.com/parsekit/parsekit/perror"
)

// Result is what every action in this package produces: a success bit, any
// value built before failure, and the errors (if any) the handler observed
// along the way. It mirrors spec.md §7's "result object with
// is_success/is_recovered_error/is_fatal_error".
type Result[T any] struct {
	Value  T
	Errors []perror.Error
	ok     bool
}

// IsSuccess reports whether the parse reached its final continuation.
func (r Result[T]) IsSuccess() bool { return r.ok }

// IsRecoveredError reports whether the parse succeeded overall despite one
// or more errors being reported along the way (a Try recovery, or any
// grammar that keeps going after a non-fatal ErrorRaised event).
func (r Result[T]) IsRecoveredError() bool { return r.ok && len(r.Errors) > 0 }

// IsFatalError reports whether the parse did not reach its final
// continuation at all.
func (r Result[T]) IsFatalError() bool { return !r.ok }
