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

package pctx

import (
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/token"
)

// EventKind classifies an Event emitted through a Context's Handler.
type EventKind int

const (
	// ProductionStart fires when a production is entered.
	ProductionStart EventKind = iota
	// ProductionFinish fires when a production completes successfully.
	ProductionFinish
	// ProductionCancel fires when a started production's rule fails.
	ProductionCancel
	// TokenMatched fires for every token a rule consumes, including
	// implicit whitespace (kind token.Whitespace).
	TokenMatched
	// ErrorRaised fires whenever a rule reports a perror.Error.
	ErrorRaised
	// RecoveryStart fires when a recovery rule begins resynchronizing.
	RecoveryStart
	// RecoveryFinish fires when recovery reaches its synchronizing point.
	RecoveryFinish
	// RecoveryCancel fires when recovery is abandoned.
	RecoveryCancel
	// Backtracked fires when a branch probe is canceled and the reader is
	// restored to the position before the probe.
	Backtracked
	// DebugEvent fires for user-inserted trace annotations.
	DebugEvent
	// ListSinkAppend names the event of a list combinator appending an
	// item to its sink. None of the dsl combinators (List, While, Loop
	// included) emits it; handlers only see it if grammar code raises it.
	ListSinkAppend
)

// String renders an EventKind by name, for the trace action and for tests.
func (k EventKind) String() string {
	switch k {
	case ProductionStart:
		return "production_start"
	case ProductionFinish:
		return "production_finish"
	case ProductionCancel:
		return "production_cancel"
	case TokenMatched:
		return "token"
	case ErrorRaised:
		return "error"
	case RecoveryStart:
		return "recovery_start"
	case RecoveryFinish:
		return "recovery_finish"
	case RecoveryCancel:
		return "recovery_cancel"
	case Backtracked:
		return "backtracked"
	case DebugEvent:
		return "debug"
	case ListSinkAppend:
		return "list_sink"
	default:
		return "unknown_event"
	}
}

// Event is one occurrence reported to a Handler while parsing input of code
// unit type U. Only the fields relevant to Kind are populated.
type Event[U any] struct {
	Kind        EventKind
	Production  string
	Begin, End  reader.Iterator
	Token       token.Token[U]
	Err         perror.Error
	Message     string
	Transparent bool
}

// Handler receives every Event a parse produces. Actions implement it
// directly (trace, parse_as_tree) or adapt a narrower interest (validate
// only cares about ErrorRaised) by ignoring the rest.
type Handler[U any] interface {
	On(Event[U])
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc[U any] func(Event[U])

// On implements Handler.
func (f HandlerFunc[U]) On(e Event[U]) { f(e) }

// DiscardHandler ignores every event; useful when an action only needs the
// final value and error collector, not the event stream.
func DiscardHandler[U any]() Handler[U] {
	return HandlerFunc[U](func(Event[U]) {})
}
