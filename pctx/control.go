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

// Package pctx implements the context and control-block machinery every
// rule parses through: a stack of scoped bindings for counters, flags, and
// captured identifiers, layered on a single per-parse control block that
// tracks recursion depth and carries a correlation id for diagnostics.
package pctx

import (
	"sync"

	"github.com/gofrs/uuid"
)

// ControlBlock is shared by every Context in one parse: it is the single
// mutable piece of state the otherwise-immutable Context chain delegates to
// for recursion bookkeeping and cross-cutting identity.
type ControlBlock struct {
	mu             sync.Mutex
	depth          int
	rootProduction string
	userState      any
	correlationID  uuid.UUID
	rootWhitespace any
}

// NewControlBlock starts a fresh control block for one parse of rootProduction,
// optionally carrying userState (an action-specific accumulator, e.g. a value
// builder or AST stack) that rules can reach via Context.Control().UserState().
func NewControlBlock(rootProduction string, userState any) *ControlBlock {
	id, err := uuid.NewV4()
	if err != nil {
		// A v4 UUID only fails to generate if the system RNG is broken;
		// fall back to the nil UUID rather than panicking mid-parse.
		id = uuid.UUID{}
	}
	return &ControlBlock{rootProduction: rootProduction, userState: userState, correlationID: id}
}

// CorrelationID identifies this parse run, for grouping its events in logs.
func (cb *ControlBlock) CorrelationID() uuid.UUID { return cb.correlationID }

// RootProduction names the production the parse was started with.
func (cb *ControlBlock) RootProduction() string { return cb.rootProduction }

// UserState returns the action-provided state pointer, or nil.
func (cb *ControlBlock) UserState() any { return cb.userState }

// SetRootWhitespace records the root production's declared whitespace rule
// (step 4 of whitespace resolution), type-erased since ControlBlock is not
// itself parameterized over the code-unit type. The production package
// type-asserts it back to rule.Rule[U] when resolving whitespace for a
// production that doesn't declare its own.
func (cb *ControlBlock) SetRootWhitespace(ws any) { cb.rootWhitespace = ws }

// RootWhitespace returns whatever SetRootWhitespace stored, or nil.
func (cb *ControlBlock) RootWhitespace() any { return cb.rootWhitespace }

// Enter increments the recursion depth and reports whether it is still
// within limit (<= 0 means unlimited). The depth is incremented even when
// the limit is exceeded, so every Enter, successful or not, must be paired
// with a Leave.
func (cb *ControlBlock) Enter(limit int) (ok bool, depth int) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.depth++
	if limit > 0 && cb.depth > limit {
		return false, cb.depth
	}
	return true, cb.depth
}

// Leave decrements the recursion depth after a production returns, whether
// it succeeded or failed.
func (cb *ControlBlock) Leave() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.depth--
}

// Depth reports the current recursion depth.
func (cb *ControlBlock) Depth() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.depth
}
