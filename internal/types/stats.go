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

package types

// AnalysisStats holds the dashboard counters of one analysis. Every counter has a *Diff twin holding
// current minus previous.
type AnalysisStats struct {
	NumberOfCritical     int `json:"number_of_critical"`
	NumberOfCriticalDiff int `json:"number_of_critical_diff"`
	NumberOfHigh         int `json:"number_of_high"`
	NumberOfHighDiff     int `json:"number_of_high_diff"`
	NumberOfMedium       int `json:"number_of_medium"`
	NumberOfMediumDiff   int `json:"number_of_medium_diff"`
	NumberOfLow          int `json:"number_of_low"`
	NumberOfLowDiff      int `json:"number_of_low_diff"`
	NumberOfNone         int `json:"number_of_none"`
	NumberOfNoneDiff     int `json:"number_of_none_diff"`

	NumberOfVulnerabilities            int `json:"number_of_vulnerabilities"`
	NumberOfVulnerabilitiesDiff        int `json:"number_of_vulnerabilities_diff"`
	NumberOfVulnerableDependencies     int `json:"number_of_vulnerable_dependencies"`
	NumberOfVulnerableDependenciesDiff int `json:"number_of_vulnerable_dependencies_diff"`

	NumberOfOWASPTop10_2021_A1      int `json:"number_of_owasp_top_10_2021_a1"`
	NumberOfOWASPTop10_2021_A1Diff  int `json:"number_of_owasp_top_10_2021_a1_diff"`
	NumberOfOWASPTop10_2021_A2      int `json:"number_of_owasp_top_10_2021_a2"`
	NumberOfOWASPTop10_2021_A2Diff  int `json:"number_of_owasp_top_10_2021_a2_diff"`
	NumberOfOWASPTop10_2021_A3      int `json:"number_of_owasp_top_10_2021_a3"`
	NumberOfOWASPTop10_2021_A3Diff  int `json:"number_of_owasp_top_10_2021_a3_diff"`
	NumberOfOWASPTop10_2021_A4      int `json:"number_of_owasp_top_10_2021_a4"`
	NumberOfOWASPTop10_2021_A4Diff  int `json:"number_of_owasp_top_10_2021_a4_diff"`
	NumberOfOWASPTop10_2021_A5      int `json:"number_of_owasp_top_10_2021_a5"`
	NumberOfOWASPTop10_2021_A5Diff  int `json:"number_of_owasp_top_10_2021_a5_diff"`
	NumberOfOWASPTop10_2021_A6      int `json:"number_of_owasp_top_10_2021_a6"`
	NumberOfOWASPTop10_2021_A6Diff  int `json:"number_of_owasp_top_10_2021_a6_diff"`
	NumberOfOWASPTop10_2021_A7      int `json:"number_of_owasp_top_10_2021_a7"`
	NumberOfOWASPTop10_2021_A7Diff  int `json:"number_of_owasp_top_10_2021_a7_diff"`
	NumberOfOWASPTop10_2021_A8      int `json:"number_of_owasp_top_10_2021_a8"`
	NumberOfOWASPTop10_2021_A8Diff  int `json:"number_of_owasp_top_10_2021_a8_diff"`
	NumberOfOWASPTop10_2021_A9      int `json:"number_of_owasp_top_10_2021_a9"`
	NumberOfOWASPTop10_2021_A9Diff  int `json:"number_of_owasp_top_10_2021_a9_diff"`
	NumberOfOWASPTop10_2021_A10     int `json:"number_of_owasp_top_10_2021_a10"`
	NumberOfOWASPTop10_2021_A10Diff int `json:"number_of_owasp_top_10_2021_a10_diff"`
	NumberOfOWASPUncategorized      int `json:"number_of_owasp_uncategorized"`
	NumberOfOWASPUncategorizedDiff  int `json:"number_of_owasp_uncategorized_diff"`

	MeanSeverity                  float64 `json:"mean_severity"`
	MeanSeverityDiff              float64 `json:"mean_severity_diff"`
	MaxSeverity                   float64 `json:"max_severity"`
	MaxSeverityDiff               float64 `json:"max_severity_diff"`
	MeanConfidentialityImpact     float64 `json:"mean_confidentiality_impact"`
	MeanConfidentialityImpactDiff float64 `json:"mean_confidentiality_impact_diff"`
	MeanIntegrityImpact           float64 `json:"mean_integrity_impact"`
	MeanIntegrityImpactDiff       float64 `json:"mean_integrity_impact_diff"`
	MeanAvailabilityImpact        float64 `json:"mean_availability_impact"`
	MeanAvailabilityImpactDiff    float64 `json:"mean_availability_impact_diff"`

	NewVulnerabilities   []string `json:"new_vulnerabilities"`
	FixedVulnerabilities []string `json:"fixed_vulnerabilities"`
}

// WeekBucket accumulates the severities of all analyses run in one ISO week.
type WeekBucket struct {
	Week           int     `json:"week"`
	Year           int     `json:"year"`
	Critical       int     `json:"critical"`
	High           int     `json:"high"`
	Medium         int     `json:"medium"`
	Low            int     `json:"low"`
	None           int     `json:"none"`
	SummedSeverity float64 `json:"summed_severity"`
	Analyses       int     `json:"analyses"`
}
