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

package cvss

import (
	"strings"

	"github.com/snyk/findings-engine/internal/float"
)

var v2Base = map[string]metricDef{
	"AV": {values: map[string]string{"L": "LOCAL", "A": "ADJACENT_NETWORK", "N": "NETWORK"}},
	"AC": {values: map[string]string{"H": "HIGH", "M": "MEDIUM", "L": "LOW"}},
	"Au": {values: map[string]string{"M": "MULTIPLE", "S": "SINGLE", "N": "NONE"}},
	"C":  {values: map[string]string{"N": "NONE", "P": "PARTIAL", "C": "COMPLETE"}},
	"I":  {values: map[string]string{"N": "NONE", "P": "PARTIAL", "C": "COMPLETE"}},
	"A":  {values: map[string]string{"N": "NONE", "P": "PARTIAL", "C": "COMPLETE"}},
}

var v2Ignored = map[string]map[string]bool{
	"E":   oneOf("U", "POC", "F", "H", "ND"),
	"RL":  oneOf("OF", "TF", "W", "U", "ND"),
	"RC":  oneOf("UC", "UR", "C", "ND"),
	"CDP": oneOf("N", "L", "LM", "MH", "H", "ND"),
	"TD":  oneOf("N", "L", "M", "H", "ND"),
	"CR":  oneOf("L", "M", "H", "ND"),
	"IR":  oneOf("L", "M", "H", "ND"),
	"AR":  oneOf("L", "M", "H", "ND"),
}

var (
	v2AccessVector     = map[string]float64{"LOCAL": 0.395, "ADJACENT_NETWORK": 0.646, "NETWORK": 1.0}
	v2AccessComplexity = map[string]float64{"HIGH": 0.35, "MEDIUM": 0.61, "LOW": 0.71}
	v2Authentication   = map[string]float64{"MULTIPLE": 0.45, "SINGLE": 0.56, "NONE": 0.704}
	v2CIA              = map[string]float64{"NONE": 0, "PARTIAL": 0.275, "COMPLETE": 0.660}
)

// ParseV2 scores a CVSS v2 vector. The optional "(...)" wrapping used by some feeds is accepted.
// UserInteractionRequired is not part of the vector and is always false here.
func ParseV2(vector string) (V2Score, error) {
	vector = strings.TrimSpace(vector)
	body := strings.TrimSuffix(strings.TrimPrefix(vector, "("), ")")
	m, err := parseMetrics(vector, body, v2Base, v2Ignored)
	if err != nil {
		return V2Score{}, err
	}

	impact := 10.41 * (1 - (1-v2CIA[m["C"]])*(1-v2CIA[m["I"]])*(1-v2CIA[m["A"]]))
	exploitability := 20 * v2AccessVector[m["AV"]] * v2AccessComplexity[m["AC"]] * v2Authentication[m["Au"]]
	f := 0.0
	if impact != 0 {
		f = 1.176
	}
	base := float.ToFixed((0.6*impact+0.4*exploitability-1.5)*f, 1)

	return V2Score{
		Vector:                body,
		BaseScore:             base,
		ExploitabilityScore:   float.ToFixed(exploitability, 1),
		ImpactScore:           float.ToFixed(impact, 1),
		AccessVector:          m["AV"],
		AccessComplexity:      m["AC"],
		Authentication:        m["Au"],
		ConfidentialityImpact: m["C"],
		IntegrityImpact:       m["I"],
		AvailabilityImpact:    m["A"],
	}, nil
}
