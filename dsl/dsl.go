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

// Package dsl is the grammar surface: every primitive token rule (spec
// component T — Lit, CharClass, Any, Digits, Identifier, ...) and every
// structural combinator (spec component G — Seq, Alt, List, Brackets,
// Delimited, Switch, Combination, ...) a grammar author composes into a
// production's Rule. All of it is built on the rule.Rule/rule.Branch
// protocol from package rule; none of it depends on a concrete action or
// reader source.
package dsl
