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

import (
	"fmt"
	"strings"
)

type Source string

const (
	SourceNVD Source = "NVD"
	SourceOSV Source = "OSV"
)

// Semver is a version bound as emitted by the vuln-finder.
type Semver struct {
	Major      int    `json:"major"`
	Minor      int    `json:"minor"`
	Patch      int    `json:"patch"`
	PreRelease string `json:"pre_release,omitempty"`
	MetaData   string `json:"meta_data,omitempty"`
}

// String renders major.minor.patch[-prerelease]. Build metadata is not part of the ordering and is dropped.
func (s Semver) String() string {
	v := fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
	if s.PreRelease != "" {
		v += "-" + s.PreRelease
	}
	return v
}

func (s Semver) IsZero() bool {
	return s.Major == 0 && s.Minor == 0 && s.Patch == 0 && s.PreRelease == ""
}

// AffectedRange is a half open interval [Introduced, Fixed). A nil Introduced means "from the beginning",
// a nil Fixed means "not fixed".
type AffectedRange struct {
	Introduced *Semver `json:"introduced,omitempty"`
	Fixed      *Semver `json:"fixed,omitempty"`
}

// AffectedInfo is one block of evidence: ranges, an exact version list, or the universal flag.
type AffectedInfo struct {
	Ranges    []AffectedRange `json:"ranges,omitempty"`
	Exact     []string        `json:"exact,omitempty"`
	Universal bool            `json:"universal,omitempty"`
}

// MatchEvidence is the raw match a single source produced for a dependency version.
type MatchEvidence struct {
	Vulnerable   bool           `json:"vulnerable"`
	AffectedInfo []AffectedInfo `json:"affected_info,omitempty"`
}

type WeaknessInfo struct {
	WeaknessID          string `json:"weakness_id"`
	WeaknessName        string `json:"weakness_name,omitempty"`
	WeaknessDescription string `json:"weakness_description,omitempty"`
	OWASPTop10ID        string `json:"owasp_top_10_id,omitempty"`
	OWASPTop10Name      string `json:"owasp_top_10_name,omitempty"`
}

// Finding is one (vulnerability, dependency, version) triple reported by the vuln-finder.
type Finding struct {
	ID                 string         `json:"id"`
	VulnerabilityID    string         `json:"vulnerability_id"`
	AffectedDependency string         `json:"affected_dependency"`
	AffectedVersion    string         `json:"affected_version"`
	Sources            []Source       `json:"sources"`
	Severity           SeverityInfo   `json:"severity"`
	Weaknesses         []WeaknessInfo `json:"weaknesses,omitempty"`
	NVDMatch           *MatchEvidence `json:"nvd_match,omitempty"`
	OSVMatch           *MatchEvidence `json:"osv_match,omitempty"`
}

func (f Finding) DependencyKey() string {
	return DependencyKey(f.AffectedDependency, f.AffectedVersion)
}

func (f Finding) HasSource(source Source) bool {
	for _, s := range f.Sources {
		if strings.EqualFold(string(s), string(source)) {
			return true
		}
	}
	return false
}

// Evidence returns the match of the preferred source, OSV first, then NVD.
func (f Finding) Evidence() (*MatchEvidence, Source) {
	if f.OSVMatch != nil {
		return f.OSVMatch, SourceOSV
	}
	if f.NVDMatch != nil {
		return f.NVDMatch, SourceNVD
	}
	return nil, ""
}

func DependencyKey(name, version string) string {
	return name + "@" + version
}

// AffectedVuln is the projection of a Finding kept under its merged vulnerability.
type AffectedVuln struct {
	FindingID          string         `json:"finding_id"`
	AffectedDependency string         `json:"affected_dependency"`
	AffectedVersion    string         `json:"affected_version"`
	Sources            []Source       `json:"sources"`
	Severity           SeverityInfo   `json:"severity"`
	Weaknesses         []WeaknessInfo `json:"weaknesses,omitempty"`
	NVDMatch           *MatchEvidence `json:"-"`
	OSVMatch           *MatchEvidence `json:"-"`
}

func NewAffectedVuln(f Finding) AffectedVuln {
	return AffectedVuln{
		FindingID:          f.ID,
		AffectedDependency: f.AffectedDependency,
		AffectedVersion:    f.AffectedVersion,
		Sources:            f.Sources,
		Severity:           f.Severity,
		Weaknesses:         f.Weaknesses,
		NVDMatch:           f.NVDMatch,
		OSVMatch:           f.OSVMatch,
	}
}

func (a AffectedVuln) DependencyKey() string {
	return DependencyKey(a.AffectedDependency, a.AffectedVersion)
}

// MergedVulnerability groups every finding sharing a vulnerability id.
// Severity and Weaknesses are taken from the first finding seen for the id.
type MergedVulnerability struct {
	VulnerabilityID string         `json:"vulnerability_id"`
	Severity        SeverityInfo   `json:"severity"`
	Weaknesses      []WeaknessInfo `json:"weaknesses,omitempty"`
	Affected        []AffectedVuln `json:"affected"`
}

// Sources returns the union of the affected entries' sources in first-seen order.
func (m *MergedVulnerability) Sources() []Source {
	var sources []Source
	seen := map[Source]bool{}
	for _, a := range m.Affected {
		for _, s := range a.Sources {
			if !seen[s] {
				seen[s] = true
				sources = append(sources, s)
			}
		}
	}
	return sources
}

func (m *MergedVulnerability) DependencyNames() []string {
	var names []string
	seen := map[string]bool{}
	for _, a := range m.Affected {
		if !seen[a.AffectedDependency] {
			seen[a.AffectedDependency] = true
			names = append(names, a.AffectedDependency)
		}
	}
	return names
}

// FindAffected returns the entry for name@version, or the first entry when name is empty.
func (m *MergedVulnerability) FindAffected(name, version string) (AffectedVuln, bool) {
	for _, a := range m.Affected {
		if name == "" || (a.AffectedDependency == name && (version == "" || a.AffectedVersion == version)) {
			return a, true
		}
	}
	return AffectedVuln{}, false
}
