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
)

// Context is the immutable, stack-nested scope every rule receives. Each
// production sub-context, variable-binding scope, and no-whitespace region
// is a new Context wrapping its parent; looking a binding up walks the chain
// outward until it finds one or runs out of parents.
type Context[U any] struct {
	parent          *Context[U]
	control         *ControlBlock
	handler         Handler[U]
	production      string
	bindKey         any
	bindValue       any
	tokenProduction bool
	noWhitespace    bool
	skipWhitespace  func(*reader.Reader[U])
}

// NewRoot starts the outermost Context for a parse, named after control's
// root production. A nil handler is replaced by DiscardHandler.
func NewRoot[U any](handler Handler[U], control *ControlBlock) *Context[U] {
	if handler == nil {
		handler = DiscardHandler[U]()
	}
	return &Context[U]{control: control, handler: handler, production: control.RootProduction()}
}

// Control returns the control block shared by the whole parse.
func (c *Context[U]) Control() *ControlBlock { return c.control }

// Production returns the name of the innermost enclosing production.
func (c *Context[U]) Production() string { return c.production }

// child returns a new Context layered on c, inheriting everything unless
// overridden by the given mutator.
func (c *Context[U]) child(mutate func(*Context[U])) *Context[U] {
	next := *c
	next.parent = c
	mutate(&next)
	return &next
}

// EnterProduction returns a sub-context for a production named name. If
// isTokenProduction is true the new scope is a token production, which disables
// whitespace skipping for everything beneath it regardless of ancestors.
func (c *Context[U]) EnterProduction(name string, isTokenProduction bool) *Context[U] {
	return c.child(func(n *Context[U]) {
		n.production = name
		if isTokenProduction {
			n.tokenProduction = true
		}
	})
}

// EnterNoWhitespace returns a sub-context with implicit whitespace skipping
// disabled, for rules like Capture that must see raw input.
func (c *Context[U]) EnterNoWhitespace() *Context[U] {
	return c.child(func(n *Context[U]) { n.noWhitespace = true })
}

// WithWhitespaceSkip returns a sub-context in which SkipWhitespace will run
// fn. The production package calls this after resolving which whitespace
// rule (if any) applies, per steps 3-4 of whitespace resolution. It binds
// the skipper even in a token production; SkipWhitespace then ignores it,
// since steps 1-2 take priority.
func (c *Context[U]) WithWhitespaceSkip(fn func(*reader.Reader[U])) *Context[U] {
	return c.child(func(n *Context[U]) { n.skipWhitespace = fn })
}

// SkipWhitespace runs the nearest enclosing whitespace skipper against r, or
// does nothing if none is bound (whitespace resolved to "none"). Token rules
// call this unconditionally after a successful match; whether it does
// anything is entirely a function of how the enclosing production scopes
// were built. Steps 1-2 of whitespace resolution (token production, active
// no-whitespace scope) take priority over any bound skipper: a production
// nested inside a token production never skips whitespace, even if it (or
// the root) declares one.
func (c *Context[U]) SkipWhitespace(r *reader.Reader[U]) {
	if c.IsTokenProduction() || c.InNoWhitespaceScope() {
		return
	}
	for cur := c; cur != nil; cur = cur.parent {
		if cur.skipWhitespace != nil {
			cur.skipWhitespace(r)
			return
		}
	}
}

// IsTokenProduction reports whether any enclosing production disables
// whitespace (step 1 of whitespace resolution).
func (c *Context[U]) IsTokenProduction() bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.tokenProduction {
			return true
		}
	}
	return false
}

// InNoWhitespaceScope reports whether any enclosing scope disabled implicit
// whitespace (step 2 of whitespace resolution).
func (c *Context[U]) InNoWhitespaceScope() bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.noWhitespace {
			return true
		}
	}
	return false
}

// withBinding returns a sub-context binding key to value for the lifetime of
// the returned Context and anything built from it.
func (c *Context[U]) withBinding(key, value any) *Context[U] {
	return c.child(func(n *Context[U]) {
		n.bindKey = key
		n.bindValue = value
	})
}

// lookup walks the chain for the nearest binding of key, type-asserting the
// stored value to T.
func lookup[T any, U any](c *Context[U], key any) (T, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.bindKey == key {
			if v, ok := cur.bindValue.(T); ok {
				return v, true
			}
		}
	}
	var zero T
	return zero, false
}

// On reports an Event to the handler this Context (or an ancestor) was
// created with.
func (c *Context[U]) On(e Event[U]) {
	if e.Production == "" {
		e.Production = c.production
	}
	c.handler.On(e)
}

// Fail reports err as an ErrorRaised event at the current production.
func (c *Context[U]) Fail(err perror.Error) {
	c.On(Event[U]{Kind: ErrorRaised, Production: c.production, Err: err})
}
