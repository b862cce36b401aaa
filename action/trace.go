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

package action

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/production"
)

// TraceEntry is one line of a Trace run: an event kind, the production it
// occurred in, the span it covers, and (for errors/debug events) a message.
type TraceEntry struct {
	Depth      int
	Kind       pctx.EventKind
	Production string
	Begin, End int
	Message    string
}

// traceHandler builds an indented TraceEntry log, mirroring the indented
// tree walk original_source/examples/tutorial.cpp's visualize action
// produces, and optionally mirrors each entry to slog for callers who want
// the trace to land in their normal diagnostic stream rather than (or in
// addition to) an in-memory buffer.
type traceHandler[U any] struct {
	depth   int
	entries []TraceEntry
	log     *slog.Logger
}

func (h *traceHandler[U]) On(e pctx.Event[U]) {
	depth := h.depth
	switch e.Kind {
	case pctx.ProductionCancel, pctx.ProductionFinish:
		if h.depth > 0 {
			h.depth--
		}
		depth = h.depth
	}

	msg := ""
	if e.Kind == pctx.ErrorRaised {
		msg = e.Err.Error()
	} else if e.Kind == pctx.DebugEvent {
		msg = e.Message
	}
	entry := TraceEntry{
		Depth:      depth,
		Kind:       e.Kind,
		Production: e.Production,
		Begin:      int(e.Begin),
		End:        int(e.End),
		Message:    msg,
	}
	h.entries = append(h.entries, entry)
	if h.log != nil {
		h.log.Debug(e.Kind.String(),
			"production", e.Production,
			"begin", entry.Begin,
			"end", entry.End,
			"message", msg,
		)
	}

	if e.Kind == pctx.ProductionStart {
		h.depth++
	}
}

// Render formats entries as indented text, one line per event:
// "  production_start foo [3,3)".
func Render(entries []TraceEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", e.Depth), e.Kind)
		if e.Production != "" {
			fmt.Fprintf(&b, " %s", e.Production)
		}
		fmt.Fprintf(&b, " [%d,%d)", e.Begin, e.End)
		if e.Message != "" {
			fmt.Fprintf(&b, ": %s", e.Message)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Trace runs root over units, returning its Result alongside the full
// indented event trace. log, if non-nil, also receives each event as a
// structured slog.Debug record (spec.md §6.2's "trace: emits a
// human-readable structured trace of all events").
func Trace[U any, T any](name string, root production.Production[U, T], units []U, log *slog.Logger) (Result[T], []TraceEntry) {
	collector := &perror.Collector{}
	th := &traceHandler[U]{log: log}
	handler := pctx.HandlerFunc[U](func(e pctx.Event[U]) {
		if e.Kind == pctx.ErrorRaised {
			collector.Report(e.Err)
		}
		th.On(e)
	})
	ok, val, _ := production.Run[U, T](name, root, handler, nil, units)
	return Result[T]{ok: ok, Value: val, Errors: collector.All()}, th.entries
}
