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

	"github.com/hashicorp/go-version"
	"golang.org/x/exp/slices"

	"github.com/snyk/findings-engine/internal/data_structure"

	"github.com/snyk/findings-engine/internal/types"
	"github.com/snyk/findings-engine/internal/versions"
)

const rangeSeparator = " || "

// AffectedVersionsString renders the evidence as a constraint expression, e.g. ">= 1.0.0 < 1.2.3 || >= 2.0.0".
func AffectedVersionsString(evidence *types.MatchEvidence) string {
	if evidence == nil {
		return ""
	}
	var parts []string
	for _, info := range evidence.AffectedInfo {
		if info.Universal {
			return versions.Any
		}
		for _, r := range info.Ranges {
			parts = append(parts, rangeString(r.Introduced, r.Fixed))
		}
		parts = append(parts, info.Exact...)
	}
	return strings.Join(data_structure.Unique(parts), rangeSeparator)
}

// PatchedVersionsString renders ">= fixed" for every range that has a fix.
func PatchedVersionsString(evidence *types.MatchEvidence) string {
	if evidence == nil {
		return ""
	}
	var parts []string
	for _, info := range evidence.AffectedInfo {
		for _, r := range info.Ranges {
			if r.Fixed != nil {
				parts = append(parts, ">= "+r.Fixed.String())
			}
		}
	}
	return strings.Join(data_structure.Unique(parts), rangeSeparator)
}

func rangeString(introduced, fixed *types.Semver) string {
	hasIntroduced := introduced != nil && !introduced.IsZero()
	switch {
	case hasIntroduced && fixed != nil:
		return ">= " + introduced.String() + " < " + fixed.String()
	case hasIntroduced:
		return ">= " + introduced.String()
	case fixed != nil:
		return "< " + fixed.String()
	default:
		return versions.Any
	}
}

// osvEvidence derives match evidence from the ranges an OSV record declares for a package. It is used when the
// vuln-finder did not attach a match for the finding.
func osvEvidence(record *types.OSVRecord, dependency string) *types.MatchEvidence {
	if record == nil {
		return nil
	}
	evidence := &types.MatchEvidence{}
	for _, affected := range record.Affected {
		if dependency != "" && affected.Package.Name != dependency {
			continue
		}
		info := types.AffectedInfo{Exact: affected.Versions}
		for _, r := range affected.Ranges {
			if r.Type != "SEMVER" && r.Type != "ECOSYSTEM" {
				continue
			}
			info.Ranges = append(info.Ranges, eventRanges(r.Events)...)
		}
		if len(info.Ranges) > 0 || len(info.Exact) > 0 {
			evidence.AffectedInfo = append(evidence.AffectedInfo, info)
		}
	}
	if len(evidence.AffectedInfo) == 0 {
		return nil
	}
	evidence.Vulnerable = true
	return evidence
}

func eventRanges(events []types.OSVEvent) []types.AffectedRange {
	var ranges []types.AffectedRange
	var open *types.AffectedRange
	for _, e := range events {
		switch {
		case e.Introduced != "":
			if open != nil {
				ranges = append(ranges, *open)
			}
			open = &types.AffectedRange{Introduced: parseSemver(e.Introduced)}
		case e.Fixed != "" && open != nil:
			open.Fixed = parseSemver(e.Fixed)
			ranges = append(ranges, *open)
			open = nil
		}
	}
	if open != nil {
		ranges = append(ranges, *open)
	}
	return ranges
}

// parseSemver reads an OSV event version. "0" and unparseable values yield nil.
func parseSemver(v string) *types.Semver {
	if v == "0" {
		return nil
	}
	parsed, err := version.NewSemver(v)
	if err != nil {
		return nil
	}
	segments := parsed.Segments()
	return &types.Semver{
		Major:      segments[0],
		Minor:      segments[1],
		Patch:      segments[2],
		PreRelease: parsed.Prerelease(),
		MetaData:   parsed.Metadata(),
	}
}

// versionStatuses marks each known version of the package against the affected expression, ascending.
func (a *Assembler) versionStatuses(record *types.PackageRecord, expression string) []types.VersionInfo {
	statuses := []types.VersionInfo{}
	if record == nil || len(record.Versions) == 0 {
		return statuses
	}
	all := make([]string, 0, len(record.Versions))
	for v := range record.Versions {
		all = append(all, v)
	}
	slices.SortFunc(all, versions.Compare)

	affected := map[string]bool{}
	if expression != "" {
		matching, err := versions.SatisfyingConstraint(all, expression)
		if err != nil {
			a.c.Logger().Warn().Err(err).Str("method", "versionStatuses").Str("expression", expression).
				Msg("cannot evaluate affected versions")
		}
		for _, v := range matching {
			affected[v] = true
		}
	}
	for _, v := range all {
		status := types.NotAffected
		if affected[v] {
			status = types.Affected
		}
		statuses = append(statuses, types.VersionInfo{Version: v, Status: status})
	}
	return statuses
}
