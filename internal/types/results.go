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
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Plugin names the tool that produced an AnalysisResult.
type Plugin string

const (
	PluginSbom          Plugin = "js-sbom"
	PluginVulnFinder    Plugin = "vuln-finder"
	PluginLicenseFinder Plugin = "license-finder"
	PluginPatching      Plugin = "js-patching"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Analysis is one analysis run of a project.
type Analysis struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CreatedOn      time.Time `json:"created_on"`
	Status         string    `json:"status"`
}

// AnalysisResult is the persisted output of one plugin for one analysis. Result holds the raw plugin output.
type AnalysisResult struct {
	ID         uuid.UUID       `json:"id"`
	AnalysisID uuid.UUID       `json:"analysis_id"`
	Plugin     Plugin          `json:"plugin"`
	CreatedOn  time.Time       `json:"created_on"`
	Result     json.RawMessage `json:"result"`
}

type PluginError struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// AnalysisInfo is embedded in every plugin output and tells whether the plugin run succeeded.
type AnalysisInfo struct {
	Status         Status        `json:"status"`
	Errors         []PluginError `json:"errors,omitempty"`
	AnalysisStart  time.Time     `json:"analysis_start_time,omitempty"`
	AnalysisEnd    time.Time     `json:"analysis_end_time,omitempty"`
	PackageManager string        `json:"package_manager,omitempty"`
}

// ResultEnvelope is the part of every plugin output needed before decoding the plugin specific payload.
type ResultEnvelope struct {
	AnalysisInfo AnalysisInfo `json:"analysis_info"`
}

type VulnWorkspace struct {
	Vulnerabilities []Finding `json:"vulnerabilities"`
}

type VulnFinderOutput struct {
	Workspaces   map[string]VulnWorkspace `json:"workspaces"`
	AnalysisInfo AnalysisInfo             `json:"analysis_info"`
}

type SbomDependency struct {
	Key          string            `json:"key"`
	Requires     map[string]string `json:"requires,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Optional     bool              `json:"optional,omitempty"`
	Bundled      bool              `json:"bundled,omitempty"`
	Dev          bool              `json:"dev"`
	Prod         bool              `json:"prod"`
	Direct       bool              `json:"is_direct"`
	Transitive   bool              `json:"is_transitive"`
	Licenses     []string          `json:"licenses,omitempty"`
}

type WorkspaceDependency struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Constraint string `json:"constraint"`
}

type SbomStart struct {
	Dependencies    []WorkspaceDependency `json:"dependencies,omitempty"`
	DevDependencies []WorkspaceDependency `json:"dev_dependencies,omitempty"`
}

type SbomWorkspace struct {
	// Dependencies maps name -> version -> dependency.
	Dependencies map[string]map[string]SbomDependency `json:"dependencies"`
	Start        SbomStart                            `json:"start"`
}

type SbomOutput struct {
	Workspaces   map[string]SbomWorkspace `json:"workspaces"`
	AnalysisInfo AnalysisInfo             `json:"analysis_info"`
}

type LicenseWorkspace struct {
	// LicensesDepMap maps an SPDX license id to the name@version keys using it.
	LicensesDepMap              map[string][]string `json:"licenses_dep_map"`
	NonSpdxLicensesDepMap       map[string][]string `json:"non_spdx_licenses_dep_map,omitempty"`
	LicenseComplianceViolations []string            `json:"license_compliance_violations,omitempty"`
}

type LicenseOutput struct {
	Workspaces   map[string]LicenseWorkspace `json:"workspaces"`
	AnalysisInfo AnalysisInfo                `json:"analysis_info"`
}

type PatchInfo struct {
	TopLevelVulnerable     bool     `json:"top_level_vulnerable"`
	IsPatchable            string   `json:"is_patchable"`
	PatchableOccurrences   int      `json:"patchable_occurrences_count"`
	UnpatchableOccurrences int      `json:"unpatchable_occurrences_count"`
	FixedVersions          []string `json:"fixed_versions,omitempty"`
	Introduced             []string `json:"introduced,omitempty"`
}

type PatchWorkspace struct {
	// Patches maps a vulnerability id to its patch information.
	Patches map[string]PatchInfo `json:"patches"`
}

type PatchingOutput struct {
	Workspaces   map[string]PatchWorkspace `json:"workspaces"`
	AnalysisInfo AnalysisInfo              `json:"analysis_info"`
}
