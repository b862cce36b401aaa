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
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/production"
)

// errorCollectingHandler reports every ErrorRaised event into a
// perror.Collector and otherwise discards events, the shared core of
// Validate and Parse (spec.md §6.2: "validate: value types are all void;
// collects errors via a user error callback").
type errorCollectingHandler[U any] struct {
	collector *perror.Collector
}

func (h errorCollectingHandler[U]) On(e pctx.Event[U]) {
	if e.Kind == pctx.ErrorRaised {
		h.collector.Report(e.Err)
	}
}

// Validate runs root over units, building no value (spec.md's "value types
// are all void"), and reports every error the parse raised.
func Validate[U any](name string, root production.Production[U, struct{}], units []U) Result[struct{}] {
	collector := &perror.Collector{}
	ok, _, _ := production.Run[U, struct{}](name, root, errorCollectingHandler[U]{collector: collector}, nil, units)
	return Result[struct{}]{ok: ok, Errors: collector.All()}
}
