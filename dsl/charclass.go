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
	"github.com/parsekit/parsekit/charclass"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/token"
)

// Class matches exactly one code unit belonging to cls.
func Class[U any](cls charclass.Class[U]) *atomicToken[U] {
	return newAtomicToken[U](token.Unknown, func(r reader.Reader[U]) (int, bool) {
		u, ok := r.Peek()
		if !ok || !cls.Contains(u) {
			return 0, false
		}
		return 1, true
	}, func(pos reader.Iterator) perror.Tag {
		return perror.ExpectedCharClass{Pos: pos, ClassName: cls.Name()}
	})
}
