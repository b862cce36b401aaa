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

package perror_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/parsekit/perror"
	"github.com/parsekit/parsekit/reader"
)

func TestClassifyTag(t *testing.T) {
	assert.Equal(t, perror.Structural, perror.ClassifyTag(perror.ExpectedLiteral{}))
	assert.Equal(t, perror.Semantic, perror.ClassifyTag(perror.ReservedIdentifier{}))
	assert.Equal(t, perror.BoundedSearch, perror.ClassifyTag(perror.LookaheadFailure{}))
	assert.Equal(t, perror.Internal, perror.ClassifyTag(perror.RecursionLimitExceeded{}))
}

type fooTag struct{ Begin, End reader.Iterator }

func (fooTag) TagName() string { return "foo" }

func TestClassifyUnknownTagIsUserDefined(t *testing.T) {
	assert.Equal(t, perror.UserDefined, perror.ClassifyTag(fooTag{}))
}

func TestUserTagCarriesPayload(t *testing.T) {
	tag := perror.User[int]{Begin: 0, End: 3, Name: "bad_digit", Payload: 9}
	assert.Equal(t, "bad_digit", tag.TagName())
	assert.Equal(t, 9, tag.Payload)
}

func TestCollectorAggregates(t *testing.T) {
	var c perror.Collector
	assert.Nil(t, c.Err())
	assert.Equal(t, 0, c.Len())

	c.Report(perror.New(perror.ExpectedLiteral{Pos: 5, String: "world"}, "greeting"))
	c.Report(perror.New(perror.ExhaustedChoice{Pos: 0}, ""))

	require.Error(t, c.Err())
	assert.Equal(t, 2, c.Len())
	assert.Contains(t, c.Err().Error(), "greeting")
}
