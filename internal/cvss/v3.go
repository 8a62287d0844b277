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
	"math"
	"strings"

	"github.com/snyk/findings-engine/internal/float"
)

var v3Base = map[string]metricDef{
	"AV": {values: map[string]string{"N": "NETWORK", "A": "ADJACENT_NETWORK", "L": "LOCAL", "P": "PHYSICAL"}},
	"AC": {values: map[string]string{"L": "LOW", "H": "HIGH"}},
	"PR": {values: map[string]string{"N": "NONE", "L": "LOW", "H": "HIGH"}},
	"UI": {values: map[string]string{"N": "NONE", "R": "REQUIRED"}},
	"S":  {values: map[string]string{"U": "UNCHANGED", "C": "CHANGED"}},
	"C":  {values: map[string]string{"H": "HIGH", "L": "LOW", "N": "NONE"}},
	"I":  {values: map[string]string{"H": "HIGH", "L": "LOW", "N": "NONE"}},
	"A":  {values: map[string]string{"H": "HIGH", "L": "LOW", "N": "NONE"}},
}

var v3Ignored = map[string]map[string]bool{
	"E":   oneOf("X", "H", "F", "P", "U"),
	"RL":  oneOf("X", "U", "W", "T", "O"),
	"RC":  oneOf("X", "C", "R", "U"),
	"CR":  oneOf("X", "H", "M", "L"),
	"IR":  oneOf("X", "H", "M", "L"),
	"AR":  oneOf("X", "H", "M", "L"),
	"MAV": oneOf("X", "N", "A", "L", "P"),
	"MAC": oneOf("X", "L", "H"),
	"MPR": oneOf("X", "N", "L", "H"),
	"MUI": oneOf("X", "N", "R"),
	"MS":  oneOf("X", "U", "C"),
	"MC":  oneOf("X", "H", "L", "N"),
	"MI":  oneOf("X", "H", "L", "N"),
	"MA":  oneOf("X", "H", "L", "N"),
}

var (
	v3AttackVector     = map[string]float64{"NETWORK": 0.85, "ADJACENT_NETWORK": 0.62, "LOCAL": 0.55, "PHYSICAL": 0.2}
	v3AttackComplexity = map[string]float64{"LOW": 0.77, "HIGH": 0.44}
	v3UserInteraction  = map[string]float64{"NONE": 0.85, "REQUIRED": 0.62}
	v3CIA              = map[string]float64{"HIGH": 0.56, "LOW": 0.22, "NONE": 0}
)

func v3PrivilegesRequired(label string, scopeChanged bool) float64 {
	switch label {
	case "NONE":
		return 0.85
	case "LOW":
		if scopeChanged {
			return 0.68
		}
		return 0.62
	default:
		if scopeChanged {
			return 0.5
		}
		return 0.27
	}
}

// ParseV3 scores a "CVSS:3.0/" vector.
func ParseV3(vector string) (V3Score, error) {
	return parseV3(vector, prefixV30, roundUpV30)
}

// ParseV31 scores a "CVSS:3.1/" vector.
func ParseV31(vector string) (V3Score, error) {
	return parseV3(vector, prefixV31, roundUpV31)
}

func parseV3(vector, prefix string, roundUp func(float64) float64) (V3Score, error) {
	vector = strings.TrimSpace(vector)
	if !strings.HasPrefix(vector, prefix) {
		return V3Score{}, invalid(vector, "expected prefix "+prefix)
	}
	m, err := parseMetrics(vector, strings.TrimPrefix(vector, prefix), v3Base, v3Ignored)
	if err != nil {
		return V3Score{}, err
	}

	scopeChanged := m["S"] == "CHANGED"
	iss := 1 - (1-v3CIA[m["C"]])*(1-v3CIA[m["I"]])*(1-v3CIA[m["A"]])
	var impact float64
	if scopeChanged {
		impact = 7.52*(iss-0.029) - 3.25*math.Pow(iss-0.02, 15)
	} else {
		impact = 6.42 * iss
	}
	exploitability := 8.22 * v3AttackVector[m["AV"]] * v3AttackComplexity[m["AC"]] *
		v3PrivilegesRequired(m["PR"], scopeChanged) * v3UserInteraction[m["UI"]]

	var base float64
	if impact > 0 {
		if scopeChanged {
			base = roundUp(math.Min(1.08*(impact+exploitability), 10))
		} else {
			base = roundUp(math.Min(impact+exploitability, 10))
		}
	}

	return V3Score{
		Vector:                vector,
		BaseScore:             base,
		ExploitabilityScore:   float.ToFixed(exploitability, 1),
		ImpactScore:           float.ToFixed(math.Max(impact, 0), 1),
		AttackVector:          m["AV"],
		AttackComplexity:      m["AC"],
		PrivilegesRequired:    m["PR"],
		UserInteraction:       m["UI"],
		Scope:                 m["S"],
		ConfidentialityImpact: m["C"],
		IntegrityImpact:       m["I"],
		AvailabilityImpact:    m["A"],
	}, nil
}

func roundUpV30(x float64) float64 {
	return float.Ceil(x, 1)
}

// roundUpV31 avoids the floating point artefacts of a plain ceil, e.g. 4.000000000000001 must yield 4.0.
func roundUpV31(x float64) float64 {
	i := int64(math.Round(x * 100000))
	if i%10000 == 0 {
		return float64(i) / 100000.0
	}
	return (math.Floor(float64(i)/10000) + 1) / 10.0
}
