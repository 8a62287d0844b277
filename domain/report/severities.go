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

package report

import (
	"strings"

	"github.com/snyk/findings-engine/internal/cvss"
	"github.com/snyk/findings-engine/internal/types"
)

// severities scores the primary source and falls back to the secondary one when the primary carries no parseable
// vector. The headline severity is the most recent CVSS version available.
func (a *Assembler) severities(primary, secondary types.Source, nvd *types.NVDRecord, osv *types.OSVRecord, dependency string) types.Severities {
	for _, source := range []types.Source{primary, secondary} {
		var s types.Severities
		switch source {
		case types.SourceNVD:
			s = a.nvdSeverities(nvd)
		case types.SourceOSV:
			s = a.osvSeverities(osv, dependency)
		}
		if s.CVSS31 != nil || s.CVSS3 != nil || s.CVSS2 != nil {
			return headline(s)
		}
	}
	return types.Severities{}
}

func headline(s types.Severities) types.Severities {
	switch {
	case s.CVSS31 != nil:
		s.Severity, s.SeverityClass = s.CVSS31.BaseScore, s.CVSS31.SeverityClass
	case s.CVSS3 != nil:
		s.Severity, s.SeverityClass = s.CVSS3.BaseScore, s.CVSS3.SeverityClass
	case s.CVSS2 != nil:
		s.Severity, s.SeverityClass = s.CVSS2.BaseScore, s.CVSS2.SeverityClass
	}
	return s
}

func (a *Assembler) nvdSeverities(record *types.NVDRecord) types.Severities {
	var s types.Severities
	if record == nil {
		return s
	}
	if m, ok := cvss.SelectMetric(record.Metrics.CvssMetricV31, cvss.CanonicalAuthority); ok {
		s.CVSS31 = a.v3Info(m.CvssData.VectorString, cvss.ParseV31)
	}
	if m, ok := cvss.SelectMetric(record.Metrics.CvssMetricV30, cvss.CanonicalAuthority); ok {
		s.CVSS3 = a.v3Info(m.CvssData.VectorString, cvss.ParseV3)
	}
	if m, ok := cvss.SelectMetric(record.Metrics.CvssMetricV2, cvss.CanonicalAuthority); ok {
		s.CVSS2 = a.v2Info(m.CvssData.VectorString)
		if s.CVSS2 != nil {
			s.CVSS2.UserInteractionRequired = m.UserInteractionRequired
		}
	}
	return s
}

func (a *Assembler) osvSeverities(record *types.OSVRecord, dependency string) types.Severities {
	var s types.Severities
	if record == nil {
		return s
	}
	scores := append([]types.OSVSeverity{}, record.Severity...)
	for _, affected := range record.Affected {
		if affected.Package.Name == dependency {
			scores = append(scores, affected.Severity...)
		}
	}
	for _, score := range scores {
		vector := strings.TrimSpace(score.Score)
		switch {
		case strings.HasPrefix(vector, "CVSS:3.1/") && s.CVSS31 == nil:
			s.CVSS31 = a.v3Info(vector, cvss.ParseV31)
		case strings.HasPrefix(vector, "CVSS:3.0/") && s.CVSS3 == nil:
			s.CVSS3 = a.v3Info(vector, cvss.ParseV3)
		case score.Type == "CVSS_V2" && s.CVSS2 == nil:
			s.CVSS2 = a.v2Info(vector)
		}
	}
	return s
}

func (a *Assembler) v3Info(vector string, parse func(string) (cvss.V3Score, error)) *types.CVSS3Info {
	score, err := parse(vector)
	if err != nil {
		a.c.Logger().Debug().Err(err).Str("method", "v3Info").Msg("skipping vector")
		return nil
	}
	return score.Info()
}

func (a *Assembler) v2Info(vector string) *types.CVSS2Info {
	score, err := cvss.ParseV2(vector)
	if err != nil {
		a.c.Logger().Debug().Err(err).Str("method", "v2Info").Msg("skipping vector")
		return nil
	}
	return score.Info()
}
