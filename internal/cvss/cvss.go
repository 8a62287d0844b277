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

// Package cvss parses CVSS v2, v3.0 and v3.1 base vectors and computes their base, exploitability and impact scores.
package cvss

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/internal/types"
)

const (
	prefixV30 = "CVSS:3.0/"
	prefixV31 = "CVSS:3.1/"

	// CanonicalAuthority is the source attribution of the NVD's own scoring.
	CanonicalAuthority = "nvd@nist.gov"
)

// V3Score is the result of scoring a CVSS v3.0 or v3.1 vector.
type V3Score struct {
	Vector                string
	BaseScore             float64
	ExploitabilityScore   float64
	ImpactScore           float64
	AttackVector          string
	AttackComplexity      string
	PrivilegesRequired    string
	UserInteraction       string
	Scope                 string
	ConfidentialityImpact string
	IntegrityImpact       string
	AvailabilityImpact    string
}

// V2Score is the result of scoring a CVSS v2 vector.
type V2Score struct {
	Vector                  string
	BaseScore               float64
	ExploitabilityScore     float64
	ImpactScore             float64
	AccessVector            string
	AccessComplexity        string
	Authentication          string
	ConfidentialityImpact   string
	IntegrityImpact         string
	AvailabilityImpact      string
	UserInteractionRequired bool
}

func (s V3Score) Info() *types.CVSS3Info {
	return &types.CVSS3Info{
		Vector:                s.Vector,
		BaseScore:             s.BaseScore,
		ExploitabilityScore:   s.ExploitabilityScore,
		ImpactScore:           s.ImpactScore,
		AttackVector:          s.AttackVector,
		AttackComplexity:      s.AttackComplexity,
		PrivilegesRequired:    s.PrivilegesRequired,
		UserInteraction:       s.UserInteraction,
		Scope:                 s.Scope,
		ConfidentialityImpact: s.ConfidentialityImpact,
		IntegrityImpact:       s.IntegrityImpact,
		AvailabilityImpact:    s.AvailabilityImpact,
		SeverityClass:         types.ClassifySeverity(s.BaseScore),
	}
}

func (s V2Score) Info() *types.CVSS2Info {
	return &types.CVSS2Info{
		Vector:                  s.Vector,
		BaseScore:               s.BaseScore,
		ExploitabilityScore:     s.ExploitabilityScore,
		ImpactScore:             s.ImpactScore,
		AccessVector:            s.AccessVector,
		AccessComplexity:        s.AccessComplexity,
		Authentication:          s.Authentication,
		ConfidentialityImpact:   s.ConfidentialityImpact,
		IntegrityImpact:         s.IntegrityImpact,
		AvailabilityImpact:      s.AvailabilityImpact,
		UserInteractionRequired: s.UserInteractionRequired,
		SeverityClass:           types.ClassifySeverity(s.BaseScore),
	}
}

// Score parses a vector of any supported version, dispatching on its prefix.
func Score(vector string) (types.SeverityInfo, error) {
	vector = strings.TrimSpace(vector)
	switch {
	case strings.HasPrefix(vector, prefixV31):
		s, err := ParseV31(vector)
		if err != nil {
			return types.SeverityInfo{}, err
		}
		return s.severityInfo(types.CVSSv31), nil
	case strings.HasPrefix(vector, prefixV30):
		s, err := ParseV3(vector)
		if err != nil {
			return types.SeverityInfo{}, err
		}
		return s.severityInfo(types.CVSSv3), nil
	case strings.HasPrefix(vector, "CVSS:"):
		return types.SeverityInfo{}, invalid(vector, "unsupported version")
	default:
		s, err := ParseV2(vector)
		if err != nil {
			return types.SeverityInfo{}, err
		}
		return types.SeverityInfo{
			SeverityType:          types.CVSSv2,
			Vector:                s.Vector,
			Severity:              s.BaseScore,
			ConfidentialityImpact: s.ConfidentialityImpact,
			IntegrityImpact:       s.IntegrityImpact,
			AvailabilityImpact:    s.AvailabilityImpact,
		}, nil
	}
}

func (s V3Score) severityInfo(t types.SeverityType) types.SeverityInfo {
	return types.SeverityInfo{
		SeverityType:          t,
		Vector:                s.Vector,
		Severity:              s.BaseScore,
		ConfidentialityImpact: s.ConfidentialityImpact,
		IntegrityImpact:       s.IntegrityImpact,
		AvailabilityImpact:    s.AvailabilityImpact,
	}
}

// SelectMetric picks the metric to score when a knowledge source carries several for one CVSS version:
// the first one attributed to authority, else the sole one, else the first one. ok is false for no metrics.
func SelectMetric(metrics []types.NVDCVSSMetric, authority string) (metric types.NVDCVSSMetric, ok bool) {
	if len(metrics) == 0 {
		return metric, false
	}
	for _, m := range metrics {
		if strings.EqualFold(m.Source, authority) {
			return m, true
		}
	}
	return metrics[0], true
}

func invalid(vector string, reason string) error {
	return errors.Wrapf(types.ErrInvalidCVSSVector, "%q: %s", vector, reason)
}

type metricDef struct {
	values map[string]string
}

func oneOf(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// parseMetrics splits "K:V/K:V" and validates every base metric is present exactly once with a known value.
// Keys outside base are accepted only when listed in ignored, with one of the values listed there.
func parseMetrics(vector, body string, base map[string]metricDef, ignored map[string]map[string]bool) (map[string]string, error) {
	if body == "" {
		return nil, invalid(vector, "empty vector")
	}
	parsed := make(map[string]string, len(base))
	for _, part := range strings.Split(body, "/") {
		key, value, found := strings.Cut(part, ":")
		if !found || key == "" || value == "" {
			return nil, invalid(vector, "malformed metric "+part)
		}
		if _, seen := parsed[key]; seen {
			return nil, invalid(vector, "duplicate metric "+key)
		}
		def, isBase := base[key]
		if !isBase {
			allowed, isIgnored := ignored[key]
			if !isIgnored {
				return nil, invalid(vector, "unknown metric "+key)
			}
			if !allowed[value] {
				return nil, invalid(vector, "unknown value "+part)
			}
			parsed[key] = value
			continue
		}
		label, known := def.values[value]
		if !known {
			return nil, invalid(vector, "unknown value "+part)
		}
		parsed[key] = label
	}
	for key := range base {
		if _, ok := parsed[key]; !ok {
			return nil, invalid(vector, "missing metric "+key)
		}
	}
	return parsed, nil
}
