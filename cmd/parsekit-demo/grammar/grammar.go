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

// Package grammar is a small package-manifest grammar built on parsekit,
// modeled on lexy's own tutorial: a name, a dotted version (or the literal
// "unreleased"), and a bracketed author list, combined into one config block
// whose three fields may appear in any order but must each appear exactly
// once.
package grammar

import (
	"strconv"

	"github.com/parsekit/parsekit/charclass"
	"github.com/parsekit/parsekit/dsl"
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/production"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/value"
)

// Version is a package's dotted version, or the zero value for the special
// "unreleased" tag.
type Version struct {
	Major, Minor, Patch int
}

// Config is the value a full config block builds.
type Config struct {
	Name     string
	Version  Version
	Authors  []string
}

// captureString runs inner and, on success, appends the exact substring it
// consumed, adapting dsl.Capture's begin/end bookkeeping (dsl/capture.go) to
// hand back a string directly instead of a token.Lexeme, since every use
// site here wants the spelling, not a span to re-slice later.
type captureString struct{ inner rule.Rule[byte] }

func (c captureString) IsBranch() bool { return false }
func (c captureString) IsToken() bool  { return true }

func (c captureString) Parse(ctx *pctx.Context[byte], r *reader.Reader[byte], args rule.Args, next rule.Next[byte]) bool {
	begin := r.Position()
	sub := ctx.EnterNoWhitespace()
	if !c.inner.Parse(sub, r, nil, rule.Accept[byte]()) {
		return false
	}
	s := string(r.Slice(begin, r.Position()))
	ctx.SkipWhitespace(r)
	return next.Parse(ctx, r, args.Append(s))
}

// intCapture is captureString's branch-capable sibling: it needs to be a
// rule.Branch itself so a run of digits can serve as the characteristic
// prefix of the dotted-version alternative in Alt.
type intCapture struct{ inner rule.Branch[byte] }

func captureInt(inner rule.Branch[byte]) *intCapture { return &intCapture{inner: inner} }

func (ic *intCapture) IsBranch() bool        { return true }
func (ic *intCapture) IsToken() bool         { return true }
func (ic *intCapture) IsUnconditional() bool { return ic.inner.IsUnconditional() }

func (ic *intCapture) Parse(c *pctx.Context[byte], r *reader.Reader[byte], args rule.Args, next rule.Next[byte]) bool {
	outcome, probeArgs := ic.TryParse(c, r)
	switch outcome {
	case rule.Backtracked, rule.Failed:
		return false
	default:
		return ic.Finish(c, r, probeArgs, rule.NextFunc[byte](func(c *pctx.Context[byte], r *reader.Reader[byte], produced rule.Args) bool {
			return next.Parse(c, r, args.Append(produced...))
		}))
	}
}

type intCaptureWrap struct {
	begin     reader.Iterator
	probeArgs rule.Args
}

func (ic *intCapture) TryParse(c *pctx.Context[byte], r *reader.Reader[byte]) (rule.Outcome, rule.Args) {
	begin := r.Position()
	outcome, probeArgs := ic.inner.TryParse(c, r)
	if outcome != rule.Taken {
		return outcome, nil
	}
	return rule.Taken, rule.Args{intCaptureWrap{begin: begin, probeArgs: probeArgs}}
}

func (ic *intCapture) Cancel(c *pctx.Context[byte], r *reader.Reader[byte], begin reader.Iterator) {
	ic.inner.Cancel(c, r, begin)
}

func (ic *intCapture) Finish(c *pctx.Context[byte], r *reader.Reader[byte], probeArgs rule.Args, next rule.Next[byte]) bool {
	w := probeArgs[0].(intCaptureWrap)
	if !ic.inner.Finish(c, r, w.probeArgs, rule.Accept[byte]()) {
		return false
	}
	n, _ := strconv.Atoi(string(r.Slice(w.begin, r.Position())))
	return next.Parse(c, r, rule.Args{n})
}

// tagged wraps a field's value with its own type so Config.Value can sort
// a flat, arbitrary-order Args slice back into named fields without the
// grammar otherwise needing to track which combination element fired.
type tagged[T any] struct{ v T }

type tagField[T any] struct{}

func (tagField[T]) IsBranch() bool { return false }
func (tagField[T]) IsToken() bool  { return false }

func (tagField[T]) Parse(c *pctx.Context[byte], r *reader.Reader[byte], args rule.Args, next rule.Next[byte]) bool {
	v := args[len(args)-1].(T)
	rest := args[:len(args)-1]
	return next.Parse(c, r, rest.Append(tagged[T]{v: v}))
}

var (
	underscore  = charclass.NewClass[byte]("underscore", func(b byte) bool { return b == '_' })
	nameTrail   = charclass.Or[byte](charclass.ASCIIAlphaNum, underscore)
	blank       = charclass.NewClass[byte]("blank", func(b byte) bool { return b == ' ' || b == '\t' })
)

// Name matches a package name: a letter followed by letters, digits, or
// underscores, token_production-style so its own whitespace skipping is
// disabled and the lexeme it captures is never polluted by it.
type Name struct {
	production.TokenProduction
}

func (Name) Rule() rule.Rule[byte] {
	return captureString{inner: dsl.Seq[byte](
		dsl.Class[byte](charclass.ASCIIAlpha),
		dsl.While[byte](dsl.Class[byte](nameTrail)),
	)}
}

func (Name) Value() value.Value[string] {
	return value.Callback[string](func(args rule.Args) string {
		if len(args) == 0 {
			return ""
		}
		return args[len(args)-1].(string)
	})
}

// digits matches one-or-more ASCII digits as a Branch, the shared prefix of
// every numeric field captureInt wraps.
func digits() rule.Branch[byte] {
	return dsl.WhileOne[byte](dsl.Class[byte](charclass.ASCIIDigit))
}

type pushZeroVersion struct{}

func (pushZeroVersion) IsBranch() bool { return false }
func (pushZeroVersion) IsToken() bool  { return false }

func (pushZeroVersion) Parse(c *pctx.Context[byte], r *reader.Reader[byte], args rule.Args, next rule.Next[byte]) bool {
	return next.Parse(c, r, args.Append(0, 0, 0))
}

// VersionProduction matches a dotted three-part version, or the literal tag
// "unreleased" standing in for 0.0.0 (lexy tutorial's grammar::version).
type VersionProduction struct {
	production.TokenProduction
}

func (VersionProduction) Rule() rule.Rule[byte] {
	dot := dsl.Lit([]byte("."), ".")
	dotVersion, _ := dsl.Seq[byte](captureInt(digits()), dot, captureInt(digits()), dot, captureInt(digits())).(rule.Branch[byte])
	unreleased, _ := dsl.Seq[byte](dsl.Lit([]byte("unreleased"), "unreleased"), pushZeroVersion{}).(rule.Branch[byte])
	return dsl.Alt[byte](unreleased, dotVersion)
}

func (VersionProduction) Value() value.Value[Version] {
	return value.Callback[Version](func(args rule.Args) Version {
		if len(args) != 3 {
			return Version{}
		}
		return Version{Major: args[0].(int), Minor: args[1].(int), Patch: args[2].(int)}
	})
}

// Author matches one double-quoted author name, allowing \" and \\ as
// escapes (lexy's tutorial additionally supports \u/\U code point escapes;
// dropped here since parsekit's demo grammar only needs to exercise
// dsl.Delimited, not the full code-point escape machinery).
type Author struct{}

func (Author) Rule() rule.Rule[byte] {
	quote := dsl.Lit([]byte(`"`), `"`)
	escapedQuote, _ := dsl.Seq[byte](dsl.Lit([]byte(`\"`), `\"`), constByte('"')).(rule.Branch[byte])
	escapedSlash, _ := dsl.Seq[byte](dsl.Lit([]byte(`\\`), `\\`), constByte('\\')).(rule.Branch[byte])
	escape := dsl.Alt[byte](escapedQuote, escapedSlash)
	return dsl.Delimited[byte, string](quote, quote, escape, value.AsString())
}

func (Author) Value() value.Value[string] {
	return value.Callback[string](func(args rule.Args) string {
		if len(args) == 0 {
			return ""
		}
		return args[len(args)-1].(string)
	})
}

type constByte byte

func (constByte) IsBranch() bool { return false }
func (constByte) IsToken() bool  { return false }

func (b constByte) Parse(c *pctx.Context[byte], r *reader.Reader[byte], args rule.Args, next rule.Next[byte]) bool {
	return next.Parse(c, r, args.Append(byte(b)))
}

// AuthorList matches a comma-separated, square-bracketed list of authors.
type AuthorList struct{}

func (AuthorList) Rule() rule.Rule[byte] {
	open := dsl.Lit([]byte("["), "[")
	closeB := dsl.Lit([]byte("]"), "]")
	comma := dsl.Lit([]byte(","), ",")
	quote := dsl.Lit([]byte(`"`), `"`)
	item, _ := dsl.Seq[byte](dsl.Peek[byte](quote), production.Ref[byte, string]("author", Author{})).(rule.Branch[byte])
	return dsl.Brackets[byte](open, closeB).Of(dsl.List[byte](item).Sep(comma))
}

func (AuthorList) Value() value.Value[[]string] {
	return value.Callback[[]string](func(args rule.Args) []string {
		out := make([]string, len(args))
		for i, a := range args {
			out[i] = a.(string)
		}
		return out
	})
}

// ConfigGrammar matches a config block: name, version, and authors fields,
// each "key = value" on its own line, appearing in any order exactly once
// (lexy tutorial's grammar::config, via dsl.Combination).
type ConfigGrammar struct{}

func (ConfigGrammar) Whitespace() rule.Rule[byte] {
	return dsl.Class[byte](blank)
}

func (ConfigGrammar) Rule() rule.Rule[byte] {
	newline := dsl.Newline([]byte("\n"), []byte("\r\n"))
	eq := dsl.Lit([]byte("="), "=")

	nameCond := dsl.Keyword([]byte("name"), "name", nameTrail)
	nameBody := dsl.Seq[byte](eq, production.Ref[byte, string]("name", Name{}), newline, tagField[string]{})
	nameField := dsl.Elem[byte](nameCond, nameBody)

	versionCond := dsl.Keyword([]byte("version"), "version", nameTrail)
	versionBody := dsl.Seq[byte](eq, production.Ref[byte, Version]("version", VersionProduction{}), newline, tagField[Version]{})
	versionField := dsl.Elem[byte](versionCond, versionBody)

	authorsCond := dsl.Keyword([]byte("authors"), "authors", nameTrail)
	authorsBody := dsl.Seq[byte](eq, production.Ref[byte, []string]("authors", AuthorList{}), newline, tagField[[]string]{})
	authorsField := dsl.Elem[byte](authorsCond, authorsBody)

	combination := dsl.Combination[byte](nameField, versionField, authorsField)
	return dsl.Seq[byte](combination, dsl.OptList[byte](dsl.Class[byte](charclass.ASCIISpace)), dsl.EOF[byte]())
}

func (ConfigGrammar) Value() value.Value[Config] {
	return value.Callback[Config](func(args rule.Args) Config {
		var cfg Config
		for _, a := range args {
			switch v := a.(type) {
			case tagged[string]:
				cfg.Name = v.v
			case tagged[Version]:
				cfg.Version = v.v
			case tagged[[]string]:
				cfg.Authors = v.v
			}
		}
		return cfg
	})
}
