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

package knowledge

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/snyk/findings-engine/internal/testutil"
	"github.com/snyk/findings-engine/internal/types"
)

type mockWeaknessSource struct {
	mock.Mock
}

func (m *mockWeaknessSource) Weakness(ctx context.Context, id string) (types.WeaknessRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.WeaknessRecord), args.Error(1)
}

var xss = types.WeaknessRecord{
	ID:          "CWE-79",
	Name:        "Improper Neutralization of Input During Web Page Generation ('Cross-site Scripting')",
	Description: "The product does not neutralize user-controllable input.",
	Categories:  []string{"990", "1347"},
}

func TestOWASPTop10_2021(t *testing.T) {
	table := NewOWASPTop10_2021()

	categories := table.Categories()
	require.Len(t, categories, 10)
	assert.Equal(t, "A01", categories[0].Label)
	assert.Equal(t, "A10", categories[9].Label)

	injection, ok := table.Category("1347")
	require.True(t, ok)
	assert.Equal(t, "Injection", injection.Name)
	assert.Equal(t, "owasp_top_10_2021_a3", injection.FilterName)
	assert.Equal(t, 3, table.Index("1347"))

	ssrf, ok := table.ByFilterName("owasp_top_10_2021_a10")
	require.True(t, ok)
	assert.Equal(t, "1356", ssrf.ID)

	_, ok = table.Category("79")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Index("79"))
}

func TestOWASPTable_CategoriesIsACopy(t *testing.T) {
	table := NewOWASPTop10_2021()

	categories := table.Categories()
	categories[0].Name = "changed"

	c, _ := table.Category("1345")
	assert.Equal(t, "Broken Access Control", c.Name)
}

func TestOWASPTable_ForWeaknesses(t *testing.T) {
	table := NewOWASPTop10_2021()

	c, ok := table.ForWeaknesses([]types.WeaknessInfo{{WeaknessID: "CWE-1"}, {WeaknessID: "CWE-89", OWASPTop10ID: "1347"}, {OWASPTop10ID: "1345"}})
	require.True(t, ok)
	assert.Equal(t, "A03", c.Label)

	_, ok = table.ForWeaknesses(nil)
	assert.False(t, ok)
}

func TestOWASPTable_ForVulnerability(t *testing.T) {
	table := NewOWASPTop10_2021()

	t.Run("representative weaknesses win", func(t *testing.T) {
		mv := &types.MergedVulnerability{
			Weaknesses: []types.WeaknessInfo{{OWASPTop10ID: "1345"}},
			Affected:   []types.AffectedVuln{{Weaknesses: []types.WeaknessInfo{{OWASPTop10ID: "1347"}}}},
		}
		c, ok := table.ForVulnerability(mv)
		require.True(t, ok)
		assert.Equal(t, "A01", c.Label)
	})

	t.Run("falls back to affected findings in order", func(t *testing.T) {
		mv := &types.MergedVulnerability{
			Affected: []types.AffectedVuln{
				{},
				{Weaknesses: []types.WeaknessInfo{{WeaknessID: "CWE-79", OWASPTop10ID: "1347"}}},
				{Weaknesses: []types.WeaknessInfo{{OWASPTop10ID: "1345"}}},
			},
		}
		c, ok := table.ForVulnerability(mv)
		require.True(t, ok)
		assert.Equal(t, "A03", c.Label)
	})

	t.Run("uncategorized", func(t *testing.T) {
		_, ok := table.ForVulnerability(&types.MergedVulnerability{Affected: []types.AffectedVuln{{}}})
		assert.False(t, ok)
	})
}

func TestNormalizeWeaknessID(t *testing.T) {
	assert.Equal(t, "CWE-79", NormalizeWeaknessID("79"))
	assert.Equal(t, "CWE-79", NormalizeWeaknessID(" cwe-79 "))
	assert.Equal(t, "CWE-79", NormalizeWeaknessID("CWE-79"))
	assert.Equal(t, "NVD-CWE-Other", NormalizeWeaknessID("NVD-CWE-Other"))
}

func TestLookup_Weakness_IsMemoized(t *testing.T) {
	c := testutil.UnitTest(t)
	source := &mockWeaknessSource{}
	source.On("Weakness", mock.Anything, "CWE-79").Return(xss, nil).Once()
	lookup := NewLookup(c, source, NewOWASPTop10_2021())

	first, err := lookup.Weakness(context.Background(), "79")
	require.NoError(t, err)
	second, err := lookup.Weakness(context.Background(), "CWE-79")
	require.NoError(t, err)

	assert.Equal(t, xss, first)
	assert.Equal(t, first, second)
	source.AssertExpectations(t)
}

func TestLookup_Weakness_NotFound(t *testing.T) {
	c := testutil.UnitTest(t)
	source := &mockWeaknessSource{}
	source.On("Weakness", mock.Anything, "CWE-999999").Return(types.WeaknessRecord{}, errors.Wrap(types.ErrNotFound, "CWE-999999")).Twice()
	lookup := NewLookup(c, source, NewOWASPTop10_2021())

	_, err := lookup.Weakness(context.Background(), "CWE-999999")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = lookup.Weakness(context.Background(), "CWE-999999")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = lookup.Weakness(context.Background(), "NVD-CWE-noinfo")
	assert.ErrorIs(t, err, types.ErrNotFound)
	source.AssertExpectations(t)
}

func TestLookup_OWASPForWeakness(t *testing.T) {
	c := testutil.UnitTest(t)
	source := &mockWeaknessSource{}
	source.On("Weakness", mock.Anything, "CWE-79").Return(xss, nil)
	source.On("Weakness", mock.Anything, "CWE-1").Return(types.WeaknessRecord{}, types.ErrNotFound)
	lookup := NewLookup(c, source, NewOWASPTop10_2021())

	category := lookup.OWASPForWeakness(context.Background(), "CWE-79")
	require.NotNil(t, category)
	assert.Equal(t, "A03", category.Label)

	assert.Nil(t, lookup.OWASPForWeakness(context.Background(), "CWE-1"))
}

func TestLookup_OWASPCategory(t *testing.T) {
	c := testutil.UnitTest(t)
	lookup := NewLookup(c, &mockWeaknessSource{}, NewOWASPTop10_2021())

	category, err := lookup.OWASPCategory("1352")
	require.NoError(t, err)
	assert.Equal(t, "A06", category.Label)

	_, err = lookup.OWASPCategory("1")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestLookup_Enrich(t *testing.T) {
	c := testutil.UnitTest(t)
	source := &mockWeaknessSource{}
	source.On("Weakness", mock.Anything, "CWE-79").Return(xss, nil)
	lookup := NewLookup(c, source, NewOWASPTop10_2021())

	enriched := lookup.Enrich(context.Background(), types.WeaknessInfo{WeaknessID: "CWE-79"})

	assert.Equal(t, xss.Name, enriched.WeaknessName)
	assert.Equal(t, xss.Description, enriched.WeaknessDescription)
	assert.Equal(t, "1347", enriched.OWASPTop10ID)
	assert.Equal(t, "Injection", enriched.OWASPTop10Name)
}
