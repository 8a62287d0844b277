/*
 * © 2026 Snyk Limited All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/findings-engine/internal/types"
	"github.com/snyk/findings-engine/internal/util"
)

func Test_Satisfying_InclusiveLowerExclusiveUpper(t *testing.T) {
	got, err := Satisfying([]string{"1.0.0", "1.2.0", "2.0.0"}, util.PtrOf("1.0.0"), util.PtrOf("2.0.0"), true, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0", "1.2.0"}, got)
}

func Test_Satisfying_Bounds(t *testing.T) {
	all := []string{"2.0.0", "0.9.0", "1.0.0", "1.5.0-beta.1", "1.5.0"}

	tests := []struct {
		name           string
		lower, upper   *string
		lowerInclusive bool
		upperInclusive bool
		want           []string
	}{
		{"unbounded", nil, nil, false, false, all},
		{"no lower", nil, util.PtrOf("1.0.0"), false, true, []string{"0.9.0", "1.0.0"}},
		{"no upper", util.PtrOf("1.5.0"), nil, false, false, []string{"2.0.0"}},
		{"closed", util.PtrOf("1.0.0"), util.PtrOf("1.5.0"), true, true, []string{"1.0.0", "1.5.0-beta.1", "1.5.0"}},
		{"open", util.PtrOf("1.0.0"), util.PtrOf("1.5.0"), false, false, []string{"1.5.0-beta.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Satisfying(all, tt.lower, tt.upper, tt.lowerInclusive, tt.upperInclusive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Satisfying_SkipsMalformedCandidates(t *testing.T) {
	got, err := Satisfying([]string{"1.0.0", "not-a-version", "", "1.1.0"}, nil, nil, true, true)

	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0", "1.1.0"}, got)
}

func Test_Satisfying_MalformedBound(t *testing.T) {
	_, err := Satisfying([]string{"1.0.0"}, util.PtrOf("x.y"), nil, true, false)

	assert.ErrorIs(t, err, types.ErrInvalidVersion)
}

func Test_SatisfyingConstraint(t *testing.T) {
	all := []string{"3.9.0", "4.17.10", "4.17.15", "4.17.21", "garbage"}

	tests := []struct {
		expr string
		want []string
	}{
		{"*", []string{"3.9.0", "4.17.10", "4.17.15", "4.17.21"}},
		{">= 4.0.0 < 4.17.21", []string{"4.17.10", "4.17.15"}},
		{">=4.0.0 <4.17.11 || >=4.17.15 <4.17.16", []string{"4.17.10", "4.17.15"}},
		{"3.9.0 || 4.17.21", []string{"3.9.0", "4.17.21"}},
		{"=4.17.10", []string{"4.17.10"}},
		{"< 4.0.0", []string{"3.9.0"}},
		{"> 4.17.15", []string{"4.17.21"}},
		{"<= 4.17.10", []string{"3.9.0", "4.17.10"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := SatisfyingConstraint(all, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_SatisfyingConstraint_Prerelease(t *testing.T) {
	got, err := SatisfyingConstraint([]string{"1.0.0-rc.1", "1.0.0", "1.0.1"}, ">= 1.0.0-rc.1 < 1.0.1")

	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0-rc.1", "1.0.0"}, got)
}

func Test_SatisfyingConstraint_Invalid(t *testing.T) {
	for _, expr := range []string{"", ">= banana", "1.0.0 || "} {
		_, err := SatisfyingConstraint([]string{"1.0.0"}, expr)
		assert.ErrorIs(t, err, types.ErrInvalidVersion, expr)
	}
}

func Test_Matches(t *testing.T) {
	ok, err := Matches("1.2.0", ">= 1.0.0 < 2.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Matches("nope", "*")
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_Compare(t *testing.T) {
	assert.Equal(t, -1, Compare("1.2.0", "1.10.0"))
	assert.Equal(t, 1, Compare("2.0.0", "2.0.0-beta"))
	assert.Equal(t, 0, Compare("1.0.0", "1.0.0"))
	assert.Equal(t, -1, Compare("9.9.9", "abc"))
	assert.Equal(t, 1, Compare("abc", "0.0.1"))
	assert.Equal(t, -1, Compare("abc", "abd"))
}
