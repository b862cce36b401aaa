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
	"github.com/parsekit/parsekit/pctx"
	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
	"github.com/parsekit/parsekit/rule"
	"github.com/parsekit/parsekit/token"
)

// DigitValue reports the numeric value of u as a digit in some base, or
// ok=false if u isn't one. DecimalDigitValue, HexDigitValue, OctalDigitValue,
// and BinaryDigitValue below cover the bases spec.md names; a grammar can
// supply its own for an unusual base.
type DigitValue func(b byte) (value int, ok bool)

// DecimalDigitValue accepts '0'-'9'.
func DecimalDigitValue(b byte) (int, bool) {
	if b >= '0' && b <= '9' {
		return int(b - '0'), true
	}
	return 0, false
}

// BinaryDigitValue accepts '0'-'1'.
func BinaryDigitValue(b byte) (int, bool) {
	if b == '0' || b == '1' {
		return int(b - '0'), true
	}
	return 0, false
}

// OctalDigitValue accepts '0'-'7'.
func OctalDigitValue(b byte) (int, bool) {
	if b >= '0' && b <= '7' {
		return int(b - '0'), true
	}
	return 0, false
}

// HexDigitValue accepts '0'-'9', 'a'-'f', 'A'-'F'.
func HexDigitValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// Digit matches exactly one digit under digit, producing no separator or
// leading-zero semantics of its own (those belong to Digits).
func Digit(digit DigitValue) *atomicToken[byte] {
	return newAtomicToken[byte](token.Digits, func(r reader.Reader[byte]) (int, bool) {
		u, ok := r.Peek()
		if !ok {
			return 0, false
		}
		if _, dok := digit(u); !dok {
			return 0, false
		}
		return 1, true
	}, func(pos reader.Iterator) perror.Tag {
		return perror.ExpectedCharClass{Pos: pos, ClassName: "digit"}
	})
}

// NDigits matches exactly n digits under digit, no more and no fewer.
func NDigits(n int, digit DigitValue) *atomicToken[byte] {
	return newAtomicToken[byte](token.Digits, func(r reader.Reader[byte]) (int, bool) {
		for i := 0; i < n; i++ {
			u, ok := r.Peek()
			if !ok {
				return 0, false
			}
			if _, dok := digit(u); !dok {
				return 0, false
			}
			r.Bump()
		}
		return n, true
	}, func(pos reader.Iterator) perror.Tag {
		return perror.ExpectedCharClass{Pos: pos, ClassName: "digit"}
	})
}

// Digits matches one-or-more digits under digit, with an optional separator
// discipline (Sep) and an optional forbidden-leading-zero check
// (NoLeadingZero), both configured via the fluent builder below.
type Digits struct {
	digit         DigitValue
	sep           byte
	hasSep        bool
	noLeadingZero bool
}

// NewDigits starts a Digits rule over the given digit value function.
func NewDigits(digit DigitValue) *Digits { return &Digits{digit: digit} }

// Sep permits a separator between digits (e.g. '_' for "1_000"; "1000" still
// matches), rejecting a separator not immediately followed by another digit.
func (d *Digits) Sep(sep byte) *Digits { d.sep = sep; d.hasSep = true; return d }

// NoLeadingZero rejects a multi-digit run whose first digit is zero
// (ForbiddenLeadingZero), matching only the zero run and leaving the reader
// positioned right after it.
func (d *Digits) NoLeadingZero() *Digits { d.noLeadingZero = true; return d }

func (d *Digits) IsBranch() bool        { return true }
func (d *Digits) IsToken() bool         { return true }
func (d *Digits) IsUnconditional() bool { return false }

// scanResult is what scan reports about a (non-mutating) attempt starting
// at start.
type scanResult struct {
	consumed int  // code units to advance on success, or on the partial
	// (leading-zero) failure path
	ok      bool
	failTag perror.Tag
}

func (d *Digits) scan(start reader.Reader[byte]) scanResult {
	r := start
	digitCount := 0
	leadingZeroRun := 0
	for {
		u, ok := r.Peek()
		if !ok {
			break
		}
		val, dok := d.digit(u)
		if !dok {
			break
		}
		if digitCount == 0 && val == 0 {
			leadingZeroRun = 1
		} else if leadingZeroRun > 0 && leadingZeroRun == digitCount && val == 0 {
			leadingZeroRun++
		}
		r.Bump()
		digitCount++

		// A separator is optional between any two digits: "1000" and
		// "1_000" both match. Only a separator that is actually present
		// must be followed by another digit; otherwise it's an error, not
		// just the end of the run.
		if !d.hasSep {
			continue
		}
		su, sok := r.Peek()
		if !sok || su != d.sep {
			continue
		}
		probe := r
		probe.Bump()
		nu, nok := probe.Peek()
		if _, ndok := func() (int, bool) {
			if !nok {
				return 0, false
			}
			return d.digit(nu)
		}(); !ndok {
			return scanResult{
				consumed: int(probe.Position()) - int(start.Position()),
				ok:       false,
				failTag:  perror.ExpectedCharClass{Pos: probe.Position(), ClassName: "digit"},
			}
		}
		r = probe
	}
	if digitCount == 0 {
		return scanResult{ok: false, failTag: perror.ExpectedCharClass{Pos: start.Position(), ClassName: "digit"}}
	}
	if d.noLeadingZero && leadingZeroRun > 0 && digitCount > leadingZeroRun {
		zeroEnd := start
		for i := 0; i < leadingZeroRun; i++ {
			zeroEnd.Bump()
		}
		return scanResult{
			consumed: int(zeroEnd.Position()) - int(start.Position()),
			ok:       false,
			failTag:  perror.ForbiddenLeadingZero{Begin: start.Position(), End: zeroEnd.Position()},
		}
	}
	return scanResult{consumed: int(r.Position()) - int(start.Position()), ok: true}
}

func (d *Digits) advance(c *pctx.Context[byte], r *reader.Reader[byte], n int) {
	begin := r.Position()
	for i := 0; i < n; i++ {
		r.Bump()
	}
	end := r.Position()
	c.On(pctx.Event[byte]{
		Kind:  pctx.TokenMatched,
		Begin: begin,
		End:   end,
		Token: token.Token[byte]{Kind: token.Digits, Lexeme: token.Lexeme[byte]{Begin: begin, End: end}},
	})
	c.SkipWhitespace(r)
}

func (d *Digits) Parse(c *pctx.Context[byte], r *reader.Reader[byte], args rule.Args, next rule.Next[byte]) bool {
	res := d.scan(*r)
	if !res.ok {
		if res.consumed > 0 {
			for i := 0; i < res.consumed; i++ {
				r.Bump()
			}
		}
		c.Fail(perror.New(res.failTag, c.Production()))
		return false
	}
	d.advance(c, r, res.consumed)
	return next.Parse(c, r, args)
}

func (d *Digits) TryParse(c *pctx.Context[byte], r *reader.Reader[byte]) (rule.Outcome, rule.Args) {
	res := d.scan(*r)
	if !res.ok && res.consumed == 0 {
		return rule.Backtracked, nil
	}
	if !res.ok {
		for i := 0; i < res.consumed; i++ {
			r.Bump()
		}
		c.Fail(perror.New(res.failTag, c.Production()))
		return rule.Failed, nil
	}
	d.advance(c, r, res.consumed)
	return rule.Taken, nil
}

func (d *Digits) Cancel(c *pctx.Context[byte], r *reader.Reader[byte], begin reader.Iterator) {
	end := r.Position()
	r.SetPosition(begin)
	if end != begin {
		c.On(pctx.Event[byte]{Kind: pctx.Backtracked, Begin: begin, End: end})
	}
}

func (d *Digits) Finish(c *pctx.Context[byte], r *reader.Reader[byte], probeArgs rule.Args, next rule.Next[byte]) bool {
	return next.Parse(c, r, probeArgs)
}
