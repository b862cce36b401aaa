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

// Package production implements the whitespace-and-production machinery
// (spec component W): a named grammar rule with optional implicit
// whitespace, an optional value-building step, and recursion-depth
// bookkeeping, wired through pctx's event and scope machinery.
package production

import (
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/value"
)

// defaultMaxRecursionDepth bounds recursion for productions that don't
// declare their own MaxRecursionDepth, matching spec.md's "an
// implementation-chosen bound, e.g. 1024".
const defaultMaxRecursionDepth = 1024

// Production is a named grammar fragment: it has a Rule and, optionally (via
// the interfaces below), implicit whitespace, a value-building step, a
// recursion cap, and token-production/transparent-production markers.
//
// T is the production's value type; productions with no Value member (the
// validate action's productions, for instance) use T = struct{} and never
// have their Build method called.
type Production[U any, T any] interface {
	Rule() rule.Rule[U]
}

// WithWhitespace is implemented by productions that declare step 3 of
// whitespace resolution: a rule consumed implicitly between their own
// tokens, taking priority over the root production's whitespace.
type WithWhitespace[U any] interface {
	Whitespace() rule.Rule[U]
}

// WithValue is implemented by productions whose rule arguments build into a
// T via the value layer, rather than being discarded (as validate does).
type WithValue[T any] interface {
	Value() value.Value[T]
}

// WithMaxRecursionDepth overrides defaultMaxRecursionDepth for one production.
type WithMaxRecursionDepth interface {
	MaxRecursionDepth() int
}

// TokenProduction is an embeddable marker: a grammar type that embeds it
// disables implicit whitespace for its whole subtree (spec.md §4.W step 1),
// the Go analogue of lexy's `token_production` base type.
type TokenProduction struct{}

// IsTokenProduction implements the tokenProductionMarker interface.
func (TokenProduction) IsTokenProduction() {}

// TransparentProduction is an embeddable marker: the parse-tree action does
// not emit a node for a production that embeds it, the Go analogue of
// lexy's `transparent_production` base type.
type TransparentProduction struct{}

// IsTransparentProduction implements the transparentProductionMarker interface.
func (TransparentProduction) IsTransparentProduction() {}

type tokenProductionMarker interface{ IsTokenProduction() }
type transparentProductionMarker interface{ IsTransparentProduction() }

// IsTokenProduction reports whether p embeds TokenProduction.
func IsTokenProduction(p any) bool {
	_, ok := p.(tokenProductionMarker)
	return ok
}

// IsTransparentProduction reports whether p embeds TransparentProduction.
func IsTransparentProduction(p any) bool {
	_, ok := p.(transparentProductionMarker)
	return ok
}

// maxDepthOf returns p's declared recursion cap, or defaultMaxRecursionDepth.
func maxDepthOf(p any) int {
	if wd, ok := p.(WithMaxRecursionDepth); ok {
		return wd.MaxRecursionDepth()
	}
	return defaultMaxRecursionDepth
}

// whitespaceOf returns p's declared whitespace rule and true, or false if p
// does not declare one (step 3 falls through to step 4).
func whitespaceOf[U any](p any) (rule.Rule[U], bool) {
	if ww, ok := p.(WithWhitespace[U]); ok {
		return ww.Whitespace(), true
	}
	return nil, false
}
