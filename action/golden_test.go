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

package action_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/parsekit/action"
)

// TestGoldenFixtures discovers testdata/**/*.grammar fixtures with
// doublestar.FilepathGlob, the same glob engine the teacher uses to collect
// source files for its generated BUILD.bazel rules, repurposed here to
// collect golden input/expected-value pairs instead of build sources. Each
// fixture is an input followed by a "===" line and the value greeting{}
// should produce for it.
func TestGoldenFixtures(t *testing.T) {
	matches, err := doublestar.FilepathGlob("testdata/**/*.grammar")
	require.NoError(t, err)
	require.NotEmpty(t, matches, "expected at least one golden fixture")

	for _, path := range matches {
		path := path
		t.Run(filepath.ToSlash(path), func(t *testing.T) {
			raw, err := os.ReadFile(path)
			require.NoError(t, err)

			input, wantValue, ok := strings.Cut(string(raw), "===\n")
			require.Truef(t, ok, "%s: missing \"===\" separator", path)
			input = strings.TrimSuffix(input, "\n")
			wantValue = strings.TrimSuffix(wantValue, "\n")

			result := action.Parse[byte, string]("greeting", greeting{}, []byte(input))
			require.True(t, result.IsSuccess())
			require.Equal(t, wantValue, result.Value)
		})
	}
}
