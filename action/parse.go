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
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/production"
)

// Parse runs root over units and builds a T via root's declared Value
// (spec.md §6.2: "parse: builds a value via the production's value"),
// collecting any errors raised along the way alongside whatever value was
// built before the failure (or the final value, on success).
func Parse[U any, T any](name string, root production.Production[U, T], units []U) Result[T] {
	collector := &perror.Collector{}
	ok, val, _ := production.Run[U, T](name, root, errorCollectingHandler[U]{collector: collector}, nil, units)
	return Result[T]{ok: ok, Value: val, Errors: collector.All()}
}
