/*
 * © 2022-2026 Snyk Limited
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

type SeverityClass string

const (
	Critical SeverityClass = "CRITICAL"
	High     SeverityClass = "HIGH"
	Medium   SeverityClass = "MEDIUM"
	Low      SeverityClass = "LOW"
	None     SeverityClass = "NONE"
)

// SeverityClasses lists the buckets from most to least severe.
var SeverityClasses = []SeverityClass{Critical, High, Medium, Low, None}

func (s SeverityClass) String() string {
	return string(s)
}

// Rank orders severity classes, None=0 to Critical=4.
func (s SeverityClass) Rank() int {
	switch s {
	case Critical:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

// ClassifySeverity buckets a score: none=0, low=(0,4), medium=[4,7), high=[7,9), critical=[9,10].
// Scores outside [0,10] are clamped.
func ClassifySeverity(score float64) SeverityClass {
	switch {
	case score >= 9:
		return Critical
	case score >= 7:
		return High
	case score >= 4:
		return Medium
	case score > 0:
		return Low
	default:
		return None
	}
}

type SeverityType string

const (
	CVSSv2  SeverityType = "CVSS_V2"
	CVSSv3  SeverityType = "CVSS_V3"
	CVSSv31 SeverityType = "CVSS_V31"
)

// SeverityInfo is the severity a single evidence source attached to a finding.
// An empty SeverityType means no score was available.
type SeverityInfo struct {
	SeverityType          SeverityType `json:"severity_type,omitempty"`
	Vector                string       `json:"vector,omitempty"`
	Severity              float64      `json:"severity"`
	ConfidentialityImpact string       `json:"confidentiality_impact,omitempty"`
	IntegrityImpact       string       `json:"integrity_impact,omitempty"`
	AvailabilityImpact    string       `json:"availability_impact,omitempty"`
}

func (s SeverityInfo) Class() SeverityClass {
	return ClassifySeverity(s.Severity)
}

// CVSS3Info is a parsed CVSS v3.0 or v3.1 base vector with its scores.
type CVSS3Info struct {
	Vector                string        `json:"vector"`
	BaseScore             float64       `json:"base_score"`
	ExploitabilityScore   float64       `json:"exploitability_score"`
	ImpactScore           float64       `json:"impact_score"`
	AttackVector          string        `json:"attack_vector"`
	AttackComplexity      string        `json:"attack_complexity"`
	PrivilegesRequired    string        `json:"privileges_required"`
	UserInteraction       string        `json:"user_interaction"`
	Scope                 string        `json:"scope"`
	ConfidentialityImpact string        `json:"confidentiality_impact"`
	IntegrityImpact       string        `json:"integrity_impact"`
	AvailabilityImpact    string        `json:"availability_impact"`
	SeverityClass         SeverityClass `json:"severity_class"`
}

// CVSS2Info is a parsed CVSS v2 base vector with its scores.
type CVSS2Info struct {
	Vector                  string        `json:"vector"`
	BaseScore               float64       `json:"base_score"`
	ExploitabilityScore     float64       `json:"exploitability_score"`
	ImpactScore             float64       `json:"impact_score"`
	AccessVector            string        `json:"access_vector"`
	AccessComplexity        string        `json:"access_complexity"`
	Authentication          string        `json:"authentication"`
	ConfidentialityImpact   string        `json:"confidentiality_impact"`
	IntegrityImpact         string        `json:"integrity_impact"`
	AvailabilityImpact      string        `json:"availability_impact"`
	UserInteractionRequired bool          `json:"user_interaction_required"`
	SeverityClass           SeverityClass `json:"severity_class"`
}
