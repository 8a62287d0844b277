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

package stats

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/findings-engine/domain/findings"
	"github.com/snyk/findings-engine/domain/knowledge"
	"github.com/snyk/findings-engine/internal/testutil"
	"github.com/snyk/findings-engine/internal/types"
)

func vuln(id, dep string, score float64, c, i, a string, owaspID string) types.Finding {
	f := types.Finding{
		ID:                 id + dep,
		VulnerabilityID:    id,
		AffectedDependency: dep,
		AffectedVersion:    "1.0.0",
		Sources:            []types.Source{types.SourceNVD},
		Severity: types.SeverityInfo{
			SeverityType:          types.CVSSv31,
			Severity:              score,
			ConfidentialityImpact: c,
			IntegrityImpact:       i,
			AvailabilityImpact:    a,
		},
	}
	if owaspID != "" {
		f.Weaknesses = []types.WeaknessInfo{{WeaknessID: "CWE-1", OWASPTop10ID: owaspID}}
	}
	return f
}

func currentRun() *findings.Merged {
	return findings.Merge([]types.Finding{
		vuln("CVE-1", "lodash", 9.8, "HIGH", "HIGH", "HIGH", "1347"),
		vuln("CVE-1", "lodash-es", 9.8, "HIGH", "HIGH", "HIGH", "1347"),
		vuln("CVE-2", "lodash", 5.3, "LOW", "NONE", "NONE", "1345"),
		vuln("CVE-3", "minimist", 7.5, "PARTIAL", "PARTIAL", "COMPLETE", ""),
		vuln("CVE-4", "qs", 0, "", "", "", "9999"),
	})
}

func TestMapCIA(t *testing.T) {
	assert.Equal(t, 1.0, MapCIA("COMPLETE"))
	assert.Equal(t, 0.5, MapCIA("PARTIAL"))
	assert.Equal(t, 1.0, MapCIA("HIGH"))
	assert.Equal(t, 0.5, MapCIA("LOW"))
	assert.Equal(t, 0.0, MapCIA("NONE"))
	assert.Equal(t, 0.0, MapCIA(""))
	assert.Equal(t, 0.0, MapCIA("SEVERE"))
}

func TestCompute_WithoutPreviousDiffEqualsCurrent(t *testing.T) {
	c := testutil.UnitTest(t)
	aggregator := NewAggregator(c, knowledge.NewOWASPTop10_2021())

	s := aggregator.Compute(currentRun(), nil)

	v := reflect.ValueOf(s)
	typ := v.Type()
	checked := 0
	for i := 0; i < typ.NumField(); i++ {
		name := typ.Field(i).Name
		if !strings.HasSuffix(name, "Diff") {
			continue
		}
		current := v.FieldByName(strings.TrimSuffix(name, "Diff"))
		require.True(t, current.IsValid(), name)
		assert.Equal(t, current.Interface(), v.Field(i).Interface(), name)
		checked++
	}
	assert.Equal(t, 23, checked)
	assert.Equal(t, []string{"CVE-1", "CVE-2", "CVE-3", "CVE-4"}, s.NewVulnerabilities)
	assert.Empty(t, s.FixedVulnerabilities)
}

func TestCompute_Counters(t *testing.T) {
	c := testutil.UnitTest(t)
	aggregator := NewAggregator(c, knowledge.NewOWASPTop10_2021())

	s := aggregator.Compute(currentRun(), nil)

	assert.Equal(t, 1, s.NumberOfCritical)
	assert.Equal(t, 1, s.NumberOfHigh)
	assert.Equal(t, 1, s.NumberOfMedium)
	assert.Equal(t, 0, s.NumberOfLow)
	assert.Equal(t, 1, s.NumberOfNone)
	assert.Equal(t, 4, s.NumberOfVulnerabilities)
	assert.Equal(t, 4, s.NumberOfVulnerableDependencies)
	assert.Equal(t, 1, s.NumberOfOWASPTop10_2021_A3)
	assert.Equal(t, 1, s.NumberOfOWASPTop10_2021_A1)
	assert.Equal(t, 2, s.NumberOfOWASPUncategorized)
	assert.Equal(t, 5.65, s.MeanSeverity)
	assert.Equal(t, 9.8, s.MaxSeverity)
	// (1 + 0.5 + 0.5 + 0) / 4
	assert.Equal(t, 0.5, s.MeanConfidentialityImpact)
	assert.Equal(t, 0.38, s.MeanIntegrityImpact)
	assert.Equal(t, 0.5, s.MeanAvailabilityImpact)
}

func TestCompute_AgainstPrevious(t *testing.T) {
	c := testutil.UnitTest(t)
	aggregator := NewAggregator(c, knowledge.NewOWASPTop10_2021())
	previous := findings.Merge([]types.Finding{
		vuln("CVE-1", "lodash", 9.8, "HIGH", "HIGH", "HIGH", "1347"),
		vuln("CVE-0", "express", 9.1, "HIGH", "NONE", "NONE", "1347"),
		vuln("CVE-9", "express", 9.0, "HIGH", "NONE", "NONE", ""),
	})

	s := aggregator.Compute(currentRun(), previous)

	assert.Equal(t, 1, s.NumberOfCritical)
	assert.Equal(t, -2, s.NumberOfCriticalDiff)
	assert.Equal(t, 1, s.NumberOfHighDiff)
	assert.Equal(t, 1, s.NumberOfVulnerabilitiesDiff)
	assert.Equal(t, 2, s.NumberOfVulnerableDependenciesDiff)
	assert.Equal(t, -1, s.NumberOfOWASPTop10_2021_A3Diff)
	assert.Equal(t, 1, s.NumberOfOWASPUncategorizedDiff)
	assert.Equal(t, 0.0, s.MaxSeverityDiff)
	assert.Equal(t, -3.65, s.MeanSeverityDiff)
	assert.Equal(t, []string{"CVE-2", "CVE-3", "CVE-4"}, s.NewVulnerabilities)
	assert.Equal(t, []string{"CVE-0", "CVE-9"}, s.FixedVulnerabilities)
}

func TestCompute_OWASPFromAffectedWhenRepresentativeHasNone(t *testing.T) {
	c := testutil.UnitTest(t)
	aggregator := NewAggregator(c, knowledge.NewOWASPTop10_2021())
	merged := findings.Merge([]types.Finding{
		vuln("CVE-1", "a", 5, "", "", "", ""),
		vuln("CVE-1", "b", 5, "", "", "", "1356"),
		vuln("CVE-1", "c", 5, "", "", "", "1345"),
	})

	s := aggregator.Compute(merged, nil)

	assert.Equal(t, 1, s.NumberOfOWASPTop10_2021_A10)
	assert.Equal(t, 0, s.NumberOfOWASPTop10_2021_A1)
	assert.Equal(t, 0, s.NumberOfOWASPUncategorized)
}

func TestCompute_Empty(t *testing.T) {
	c := testutil.UnitTest(t)
	aggregator := NewAggregator(c, knowledge.NewOWASPTop10_2021())

	s := aggregator.Compute(findings.Merge(nil), nil)

	assert.Equal(t, types.AnalysisStats{NewVulnerabilities: []string{}, FixedVulnerabilities: []string{}}, s)
}

func TestDelta(t *testing.T) {
	previous := findings.Merge([]types.Finding{vuln("A", "x", 1, "", "", "", ""), vuln("B", "x", 1, "", "", "", "")})
	current := findings.Merge([]types.Finding{vuln("B", "x", 1, "", "", "", ""), vuln("C", "x", 1, "", "", "", "")})

	newIDs, fixedIDs := Delta(previous, current)

	assert.Equal(t, []string{"C"}, newIDs)
	assert.Equal(t, []string{"A"}, fixedIDs)
}

func TestWeekly(t *testing.T) {
	c := testutil.UnitTest(t)
	aggregator := NewAggregator(c, knowledge.NewOWASPTop10_2021())
	runs := []Run{
		{CreatedOn: time.Date(2021, 1, 5, 10, 0, 0, 0, time.UTC), Merged: currentRun()},
		// Sunday 2021-01-03 belongs to ISO week 53 of 2020
		{CreatedOn: time.Date(2021, 1, 3, 10, 0, 0, 0, time.UTC), Merged: findings.Merge([]types.Finding{vuln("CVE-1", "a", 3.3, "", "", "", "")})},
		{CreatedOn: time.Date(2021, 1, 7, 10, 0, 0, 0, time.UTC), Merged: findings.Merge([]types.Finding{vuln("CVE-2", "a", 4.2, "", "", "", "")})},
	}

	buckets := aggregator.Weekly(runs)

	require.Len(t, buckets, 2)
	assert.Equal(t, types.WeekBucket{Year: 2020, Week: 53, Low: 1, SummedSeverity: 3.3, Analyses: 1}, buckets[0])
	assert.Equal(t, 2021, buckets[1].Year)
	assert.Equal(t, 1, buckets[1].Week)
	assert.Equal(t, 2, buckets[1].Analyses)
	assert.Equal(t, 1, buckets[1].Critical)
	assert.Equal(t, 1, buckets[1].High)
	assert.Equal(t, 2, buckets[1].Medium)
	assert.Equal(t, 1, buckets[1].None)
	assert.Equal(t, 26.8, buckets[1].SummedSeverity)
}
