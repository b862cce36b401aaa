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

package perror

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// classifications maps each built-in Tag's TagName to its Severity.
// User is deliberately absent: its severity is always UserDefined.
var classifications = map[string]Severity{
	"expected_literal":         Structural,
	"expected_keyword":         Structural,
	"expected_char_class":      Structural,
	"exhausted_choice":         Structural,
	"exhausted_switch":         Structural,
	"combination_duplicate":    Semantic,
	"reserved_identifier":      Semantic,
	"forbidden_leading_zero":   Semantic,
	"different_identifier":     Semantic,
	"unequal_counts":           Semantic,
	"trailing_separator":       Semantic,
	"missing_delimiter":        BoundedSearch,
	"invalid_escape_sequence":  BoundedSearch,
	"minus_failure":            BoundedSearch,
	"lookahead_failure":        BoundedSearch,
	"peek_failure":             BoundedSearch,
	"unexpected":               BoundedSearch,
	"recursion_limit_exceeded": Internal,
}

// ClassifyTag returns tag's Severity: the fixed bucket for a built-in tag, or
// UserDefined for anything not in the closed taxonomy above.
func ClassifyTag(tag Tag) Severity {
	if sev, ok := classifications[tag.TagName()]; ok {
		return sev
	}
	return UserDefined
}

// Error is the value a rule hands to a Context when it fails: a classified
// Tag plus the production (if any) that was active when it was raised.
type Error struct {
	Tag        Tag
	Severity   Severity
	Production string
}

// New classifies tag and wraps it into an Error attributed to production
// (empty if none is active).
func New(tag Tag, production string) Error {
	return Error{Tag: tag, Severity: ClassifyTag(tag), Production: production}
}

func (e Error) Error() string {
	if e.Production == "" {
		return fmt.Sprintf("%s", e.Tag.TagName())
	}
	return fmt.Sprintf("%s: %s", e.Production, e.Tag.TagName())
}

// Collector accumulates Errors across a parse, as the validate action does;
// it folds them into a single multierror.Error so callers get one aggregate
// error value with every failure listed, rather than only the first.
type Collector struct {
	errs *multierror.Error
}

// Report appends err to the collector.
func (c *Collector) Report(err Error) {
	c.errs = multierror.Append(c.errs, err)
}

// Err returns the aggregated error, or nil if nothing was ever reported.
func (c *Collector) Err() error {
	return c.errs.ErrorOrNil()
}

// Len reports how many errors have been collected.
func (c *Collector) Len() int {
	if c.errs == nil {
		return 0
	}
	return len(c.errs.Errors)
}

// All returns every collected Error in report order, for callers (the
// action package's Result) that want typed access instead of the
// aggregated multierror.Error.
func (c *Collector) All() []Error {
	if c.errs == nil {
		return nil
	}
	out := make([]Error, len(c.errs.Errors))
	for i, e := range c.errs.Errors {
		out[i] = e.(Error)
	}
	return out
}
