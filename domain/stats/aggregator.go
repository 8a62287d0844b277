/*
 * © 2026 Snyk Limited
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

// Package stats computes the dashboard statistics of an analysis, its difference to the previous analysis of the
// same project and week bucketed severity series.
package stats

import (
	"strings"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/domain/findings"
	"github.com/snyk/findings-engine/domain/knowledge"
	"github.com/snyk/findings-engine/internal/float"
	"github.com/snyk/findings-engine/internal/types"
	"github.com/snyk/findings-engine/internal/util"
)

const owaspCategories = 10

type Aggregator struct {
	c     *config.Config
	owasp *knowledge.OWASPTable
}

func NewAggregator(c *config.Config, owasp *knowledge.OWASPTable) *Aggregator {
	return &Aggregator{c: c, owasp: owasp}
}

// MapCIA normalizes the CVSS v2 and v3 impact labels to a continuous value. LOW and PARTIAL both map to 0.5.
func MapCIA(label string) float64 {
	switch strings.ToUpper(label) {
	case "LOW", "PARTIAL":
		return 0.5
	case "HIGH", "COMPLETE":
		return 1.0
	default:
		return 0
	}
}

type counters struct {
	bySeverity             map[types.SeverityClass]int
	owasp                  [owaspCategories]int
	owaspUncategorized     int
	vulnerabilities        int
	vulnerableDependencies int
	meanSeverity           float64
	maxSeverity            float64
	meanConfidentiality    float64
	meanIntegrity          float64
	meanAvailability       float64
}

func (a *Aggregator) count(merged *findings.Merged) counters {
	result := counters{bySeverity: map[types.SeverityClass]int{}}
	if merged == nil {
		return result
	}
	var severities, confidentiality, integrity, availability []float64
	for _, mv := range merged.Values() {
		result.bySeverity[mv.Severity.Class()]++
		if i := a.owaspIndex(mv); i > 0 {
			result.owasp[i-1]++
		} else {
			result.owaspUncategorized++
		}
		severities = append(severities, mv.Severity.Severity)
		confidentiality = append(confidentiality, MapCIA(mv.Severity.ConfidentialityImpact))
		integrity = append(integrity, MapCIA(mv.Severity.IntegrityImpact))
		availability = append(availability, MapCIA(mv.Severity.AvailabilityImpact))
	}
	result.vulnerabilities = merged.Len()
	result.vulnerableDependencies = len(findings.VulnerableDependencyNames(merged))
	result.meanSeverity = float.ToFixed(float.Mean(severities), 2)
	result.maxSeverity = util.Max(severities...)
	result.meanConfidentiality = float.ToFixed(float.Mean(confidentiality), 2)
	result.meanIntegrity = float.ToFixed(float.Mean(integrity), 2)
	result.meanAvailability = float.ToFixed(float.Mean(availability), 2)
	return result
}

// owaspIndex returns the 1-based category position of mv, 0 means uncategorized.
func (a *Aggregator) owaspIndex(mv *types.MergedVulnerability) int {
	if c, ok := a.owasp.ForVulnerability(mv); ok {
		return a.owasp.Index(c.ID)
	}
	return 0
}

// Compute returns the statistics of current with every diff taken against previous. A nil previous is an empty run,
// so every diff equals its current value.
func (a *Aggregator) Compute(current, previous *findings.Merged) types.AnalysisStats {
	cur := a.count(current)
	prev := a.count(previous)

	s := types.AnalysisStats{}
	intPairs := []struct {
		value, diff *int
		cur, prev   int
	}{
		{&s.NumberOfCritical, &s.NumberOfCriticalDiff, cur.bySeverity[types.Critical], prev.bySeverity[types.Critical]},
		{&s.NumberOfHigh, &s.NumberOfHighDiff, cur.bySeverity[types.High], prev.bySeverity[types.High]},
		{&s.NumberOfMedium, &s.NumberOfMediumDiff, cur.bySeverity[types.Medium], prev.bySeverity[types.Medium]},
		{&s.NumberOfLow, &s.NumberOfLowDiff, cur.bySeverity[types.Low], prev.bySeverity[types.Low]},
		{&s.NumberOfNone, &s.NumberOfNoneDiff, cur.bySeverity[types.None], prev.bySeverity[types.None]},
		{&s.NumberOfVulnerabilities, &s.NumberOfVulnerabilitiesDiff, cur.vulnerabilities, prev.vulnerabilities},
		{&s.NumberOfVulnerableDependencies, &s.NumberOfVulnerableDependenciesDiff, cur.vulnerableDependencies, prev.vulnerableDependencies},
		{&s.NumberOfOWASPUncategorized, &s.NumberOfOWASPUncategorizedDiff, cur.owaspUncategorized, prev.owaspUncategorized},
	}
	owaspFields := [owaspCategories][2]*int{
		{&s.NumberOfOWASPTop10_2021_A1, &s.NumberOfOWASPTop10_2021_A1Diff},
		{&s.NumberOfOWASPTop10_2021_A2, &s.NumberOfOWASPTop10_2021_A2Diff},
		{&s.NumberOfOWASPTop10_2021_A3, &s.NumberOfOWASPTop10_2021_A3Diff},
		{&s.NumberOfOWASPTop10_2021_A4, &s.NumberOfOWASPTop10_2021_A4Diff},
		{&s.NumberOfOWASPTop10_2021_A5, &s.NumberOfOWASPTop10_2021_A5Diff},
		{&s.NumberOfOWASPTop10_2021_A6, &s.NumberOfOWASPTop10_2021_A6Diff},
		{&s.NumberOfOWASPTop10_2021_A7, &s.NumberOfOWASPTop10_2021_A7Diff},
		{&s.NumberOfOWASPTop10_2021_A8, &s.NumberOfOWASPTop10_2021_A8Diff},
		{&s.NumberOfOWASPTop10_2021_A9, &s.NumberOfOWASPTop10_2021_A9Diff},
		{&s.NumberOfOWASPTop10_2021_A10, &s.NumberOfOWASPTop10_2021_A10Diff},
	}
	for i, fields := range owaspFields {
		intPairs = append(intPairs, struct {
			value, diff *int
			cur, prev   int
		}{fields[0], fields[1], cur.owasp[i], prev.owasp[i]})
	}
	for _, p := range intPairs {
		*p.value = p.cur
		*p.diff = p.cur - p.prev
	}

	floatPairs := []struct {
		value, diff *float64
		cur, prev   float64
	}{
		{&s.MeanSeverity, &s.MeanSeverityDiff, cur.meanSeverity, prev.meanSeverity},
		{&s.MaxSeverity, &s.MaxSeverityDiff, cur.maxSeverity, prev.maxSeverity},
		{&s.MeanConfidentialityImpact, &s.MeanConfidentialityImpactDiff, cur.meanConfidentiality, prev.meanConfidentiality},
		{&s.MeanIntegrityImpact, &s.MeanIntegrityImpactDiff, cur.meanIntegrity, prev.meanIntegrity},
		{&s.MeanAvailabilityImpact, &s.MeanAvailabilityImpactDiff, cur.meanAvailability, prev.meanAvailability},
	}
	for _, p := range floatPairs {
		*p.value = p.cur
		*p.diff = float.ToFixed(p.cur-p.prev, 2)
	}

	s.NewVulnerabilities, s.FixedVulnerabilities = Delta(previous, current)

	a.c.Logger().Debug().Str("method", "stats.Compute").
		Int("vulnerabilities", s.NumberOfVulnerabilities).
		Bool("hasPrevious", previous != nil).
		Msg("computed analysis stats")
	return s
}
