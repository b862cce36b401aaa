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

// Package token defines the Kind enumeration and the Token/Lexeme value
// types shared by every rule that consumes input.
package token

import "fmt"

// Kind classifies a matched range of input. It is an open enumeration: the
// predefined kinds below occupy the top of the int range so that grammars
// defining their own kinds with a plain 0-based iota never collide with them.
type Kind int

// predefinedBase keeps every built-in Kind far above any reasonable
// user-defined iota sequence.
const predefinedBase = 1<<31 - 1<<8

const (
	// Unknown marks a token whose kind was never assigned.
	Unknown Kind = predefinedBase + iota
	// ErrorKind marks a token produced while recovering from an error.
	ErrorKind
	// Whitespace marks implicit whitespace consumed between tokens.
	Whitespace
	// Any marks the token produced by the Any rule (consume-to-EOF).
	Any
	// Literal marks a token produced by a literal-string rule.
	Literal
	// Position marks a zero-width positional marker token.
	Position
	// EOF marks the synthetic end-of-input token.
	EOF
	// Identifier marks a token produced by an identifier rule.
	Identifier
	// Digits marks a token produced by a digit-sequence rule.
	Digits
)

var predefinedNames = map[Kind]string{
	Unknown:    "unknown",
	ErrorKind:  "error",
	Whitespace: "whitespace",
	Any:        "any",
	Literal:    "literal",
	Position:   "position",
	EOF:        "EOF",
	Identifier: "identifier",
	Digits:     "digits",
}

// String renders predefined kinds by name and user kinds numerically.
func (k Kind) String() string {
	if name, ok := predefinedNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsPredefined reports whether k is one of the reserved predefined kinds.
func (k Kind) IsPredefined() bool {
	_, ok := predefinedNames[k]
	return ok
}

// KindMap lets an action remap a rule's natural kind to a user-chosen one,
// for callers who would rather classify by table lookup than by annotating
// every rule with .Kind(k).
type KindMap map[Kind]Kind

// Resolve returns the mapped kind for k, or k unchanged if no mapping exists.
func (m KindMap) Resolve(k Kind) Kind {
	if mapped, ok := m[k]; ok {
		return mapped
	}
	return k
}
