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

import "time"

type VersionStatus string

const (
	Affected    VersionStatus = "affected"
	NotAffected VersionStatus = "not_affected"
)

type VersionInfo struct {
	Version string        `json:"version"`
	Status  VersionStatus `json:"status"`
}

type VulnerabilityVersionInfo struct {
	AffectedVersionsString string        `json:"affected_versions_string"`
	PatchedVersionsString  string        `json:"patched_versions_string"`
	Versions               []VersionInfo `json:"versions"`
}

type SourceLink struct {
	Name    Source `json:"name"`
	VulnURL string `json:"vuln_url"`
}

type VulnerabilityInfo struct {
	VulnerabilityID string                   `json:"vulnerability_id"`
	Description     string                   `json:"description"`
	Summary         string                   `json:"summary,omitempty"`
	Published       *time.Time               `json:"published,omitempty"`
	LastModified    *time.Time               `json:"last_modified,omitempty"`
	Aliases         []string                 `json:"aliases,omitempty"`
	Sources         []SourceLink             `json:"sources"`
	VersionInfo     VulnerabilityVersionInfo `json:"version_info"`
}

type DependencyInfo struct {
	Name          string     `json:"name"`
	Version       string     `json:"version"`
	Published     *time.Time `json:"published,omitempty"`
	Description   string     `json:"description,omitempty"`
	Keywords      []string   `json:"keywords,omitempty"`
	Homepage      string     `json:"homepage,omitempty"`
	RepositoryURL string     `json:"repository_url,omitempty"`
	IssuesURL     string     `json:"issues_url,omitempty"`
	License       string     `json:"license,omitempty"`
	LatestVersion string     `json:"latest_version,omitempty"`
}

type Severities struct {
	SeverityClass SeverityClass `json:"severity_class"`
	Severity      float64       `json:"severity"`
	CVSS31        *CVSS3Info    `json:"cvss_31,omitempty"`
	CVSS3         *CVSS3Info    `json:"cvss_3,omitempty"`
	CVSS2         *CVSS2Info    `json:"cvss_2,omitempty"`
}

type ReportWeakness struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ReportReference struct {
	URL  string   `json:"url"`
	Tags []string `json:"tags,omitempty"`
}

type ReportLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type OtherInfo struct {
	PackageManagerLinks []ReportLink `json:"package_manager_links,omitempty"`
}

// VulnerabilityDetails is the fully assembled report for one vulnerability of one dependency.
type VulnerabilityDetails struct {
	VulnerabilityInfo  VulnerabilityInfo              `json:"vulnerability_info"`
	DependencyInfo     *DependencyInfo                `json:"dependency_info,omitempty"`
	Severities         Severities                     `json:"severities"`
	OWASPTop10         *OWASPCategory                 `json:"owasp_top_10"`
	Weaknesses         []ReportWeakness               `json:"weaknesses"`
	Patch              *PatchInfo                     `json:"patch,omitempty"`
	CommonConsequences map[string][]CommonConsequence `json:"common_consequences"`
	References         []ReportReference              `json:"references"`
	Other              OtherInfo                      `json:"other"`
}
