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

package token

import "github.com/parsekit/parsekit/reader"

// Lexeme is an immutable [Begin, End) range into a Reader's input. It
// borrows the reader's backing storage; call Content with that reader (or an
// equivalent copy) to recover the matched code units.
type Lexeme[U any] struct {
	Begin, End reader.Iterator
}

// Content returns the code units spanned by l, read from r.
func (l Lexeme[U]) Content(r reader.Reader[U]) []U {
	return r.Slice(l.Begin, l.End)
}

// Empty reports whether the lexeme spans no input.
func (l Lexeme[U]) Empty() bool {
	return l.Begin == l.End
}

// Token pairs a Kind with the Lexeme it was matched from.
type Token[U any] struct {
	Kind   Kind
	Lexeme Lexeme[U]
}
