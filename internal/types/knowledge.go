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
	"time"
)

type LangValue struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

type NVDCVSSData struct {
	Version      string  `json:"version"`
	VectorString string  `json:"vectorString"`
	BaseScore    float64 `json:"baseScore"`
}

// NVDCVSSMetric is one scoring of a CVE. Source is the scoring authority, e.g. nvd@nist.gov.
type NVDCVSSMetric struct {
	Source                  string      `json:"source"`
	Type                    string      `json:"type"`
	CvssData                NVDCVSSData `json:"cvssData"`
	ExploitabilityScore     float64     `json:"exploitabilityScore"`
	ImpactScore             float64     `json:"impactScore"`
	UserInteractionRequired bool        `json:"userInteractionRequired,omitempty"`
}

type NVDMetrics struct {
	CvssMetricV2  []NVDCVSSMetric `json:"cvssMetricV2,omitempty"`
	CvssMetricV30 []NVDCVSSMetric `json:"cvssMetricV30,omitempty"`
	CvssMetricV31 []NVDCVSSMetric `json:"cvssMetricV31,omitempty"`
}

type NVDWeakness struct {
	Source      string      `json:"source"`
	Type        string      `json:"type"`
	Description []LangValue `json:"description"`
}

type NVDReference struct {
	URL    string   `json:"url"`
	Source string   `json:"source,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// NVDRecord is the CVE oriented knowledge record.
type NVDRecord struct {
	ID           string         `json:"id"`
	Published    time.Time      `json:"published"`
	LastModified time.Time      `json:"lastModified"`
	VulnStatus   string         `json:"vulnStatus,omitempty"`
	Descriptions []LangValue    `json:"descriptions"`
	Metrics      NVDMetrics     `json:"metrics"`
	Weaknesses   []NVDWeakness  `json:"weaknesses,omitempty"`
	References   []NVDReference `json:"references,omitempty"`
}

// Description returns the english description, or the first one.
func (r NVDRecord) Description() string {
	for _, d := range r.Descriptions {
		if d.Lang == "en" {
			return d.Value
		}
	}
	if len(r.Descriptions) > 0 {
		return r.Descriptions[0].Value
	}
	return ""
}

// WeaknessIDs returns the CWE ids named by the record, in order, without duplicates.
func (r NVDRecord) WeaknessIDs() []string {
	var ids []string
	seen := map[string]bool{}
	for _, w := range r.Weaknesses {
		for _, d := range w.Description {
			if d.Value == "" || seen[d.Value] {
				continue
			}
			seen[d.Value] = true
			ids = append(ids, d.Value)
		}
	}
	return ids
}

type OSVSeverity struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

type OSVEvent struct {
	Introduced   string `json:"introduced,omitempty"`
	Fixed        string `json:"fixed,omitempty"`
	LastAffected string `json:"last_affected,omitempty"`
	Limit        string `json:"limit,omitempty"`
}

type OSVRange struct {
	Type   string     `json:"type"`
	Events []OSVEvent `json:"events"`
}

type OSVPackage struct {
	Ecosystem string `json:"ecosystem"`
	Name      string `json:"name"`
	Purl      string `json:"purl,omitempty"`
}

type OSVAffected struct {
	Package  OSVPackage    `json:"package"`
	Ranges   []OSVRange    `json:"ranges,omitempty"`
	Versions []string      `json:"versions,omitempty"`
	Severity []OSVSeverity `json:"severity,omitempty"`
}

type OSVReference struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type OSVDatabaseSpecific struct {
	CWEIDs   []string `json:"cwe_ids,omitempty"`
	Severity string   `json:"severity,omitempty"`
}

// OSVRecord is the advisory oriented knowledge record (GHSA and friends).
type OSVRecord struct {
	ID               string              `json:"id"`
	Summary          string              `json:"summary"`
	Details          string              `json:"details"`
	Aliases          []string            `json:"aliases,omitempty"`
	Published        time.Time           `json:"published"`
	Modified         time.Time           `json:"modified"`
	Severity         []OSVSeverity       `json:"severity,omitempty"`
	Affected         []OSVAffected       `json:"affected,omitempty"`
	References       []OSVReference      `json:"references,omitempty"`
	DatabaseSpecific OSVDatabaseSpecific `json:"database_specific"`
}

type CommonConsequence struct {
	Scope  []string `json:"scope" yaml:"scope"`
	Impact []string `json:"impact" yaml:"impact"`
	Note   string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// WeaknessRecord is a CWE entry. Categories holds the ids of the CWE categories the weakness is a member of.
type WeaknessRecord struct {
	ID                  string              `json:"id" yaml:"id"`
	Name                string              `json:"name" yaml:"name"`
	Description         string              `json:"description" yaml:"description"`
	ExtendedDescription string              `json:"extended_description,omitempty" yaml:"extended_description,omitempty"`
	CommonConsequences  []CommonConsequence `json:"common_consequences,omitempty" yaml:"common_consequences,omitempty"`
	Categories          []string            `json:"categories,omitempty" yaml:"categories,omitempty"`
}

type OWASPCategory struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FilterName  string `json:"-"`
}

type PackageVersion struct {
	Version     string    `json:"version"`
	ReleaseTime time.Time `json:"release_time"`
	Deprecated  bool      `json:"deprecated,omitempty"`
	Licenses    []string  `json:"licenses,omitempty"`
}

// PackageRecord is the registry metadata of a dependency with all its known versions.
type PackageRecord struct {
	Name          string                    `json:"name"`
	Ecosystem     string                    `json:"ecosystem"`
	Description   string                    `json:"description,omitempty"`
	Homepage      string                    `json:"homepage,omitempty"`
	RepositoryURL string                    `json:"repository_url,omitempty"`
	IssuesURL     string                    `json:"issues_url,omitempty"`
	License       string                    `json:"license,omitempty"`
	Keywords      []string                  `json:"keywords,omitempty"`
	LatestVersion string                    `json:"latest_version,omitempty"`
	Created       time.Time                 `json:"created,omitempty"`
	Versions      map[string]PackageVersion `json:"versions,omitempty"`
}

type LicenseCategory string

const (
	LicensePermissive   LicenseCategory = "permissive"
	LicenseCopyLeft     LicenseCategory = "copy_left"
	LicenseWeakCopyLeft LicenseCategory = "weak_copy_left"
	LicensePublicDomain LicenseCategory = "public_domain"
	LicenseProprietary  LicenseCategory = "proprietary"
)

type LicenseRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    LicenseCategory `json:"category"`
	OSIApproved bool            `json:"osi_approved"`
	FSFLibre    bool            `json:"fsf_libre"`
	Deprecated  bool            `json:"deprecated"`
	References  []string        `json:"references,omitempty"`
}
