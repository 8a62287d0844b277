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

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// QueryParams are the list parameters shared by every collection. Zero values select the collection defaults.
type QueryParams struct {
	SearchKey      string        `json:"search_key,omitempty"`
	ActiveFilters  []string      `json:"active_filters,omitempty"`
	SortBy         string        `json:"sort_by,omitempty"`
	SortDirection  SortDirection `json:"sort_direction,omitempty"`
	Page           int           `json:"page,omitempty"`
	EntriesPerPage int           `json:"entries_per_page,omitempty"`
}

// Page is the envelope of every list response.
type Page[T any] struct {
	Data           []T            `json:"data"`
	Page           int            `json:"page"`
	EntryCount     int            `json:"entry_count"`
	EntriesPerPage int            `json:"entries_per_page"`
	TotalEntries   int            `json:"total_entries"`
	TotalPages     int            `json:"total_pages"`
	MatchingCount  int            `json:"matching_count"`
	FilterCount    map[string]int `json:"filter_count"`
}

type VulnerabilityItem struct {
	VulnerabilityID string         `json:"vulnerability_id"`
	Severity        float64        `json:"severity"`
	SeverityClass   SeverityClass  `json:"severity_class"`
	SeverityType    SeverityType   `json:"severity_type,omitempty"`
	Sources         []Source       `json:"sources"`
	Weaknesses      []WeaknessInfo `json:"weaknesses,omitempty"`
	Affected        []AffectedVuln `json:"affected"`
	OWASPTop10      *OWASPCategory `json:"owasp_top_10"`
}

type DependencyItem struct {
	Name          string     `json:"name"`
	Version       string     `json:"version"`
	Direct        bool       `json:"is_direct"`
	Transitive    bool       `json:"is_transitive"`
	Prod          bool       `json:"prod"`
	Dev           bool       `json:"dev"`
	Deprecated    bool       `json:"deprecated"`
	Outdated      bool       `json:"outdated"`
	Licenses      []string   `json:"licenses"`
	LatestVersion string     `json:"latest_version,omitempty"`
	Release       *time.Time `json:"release,omitempty"`
}

type LicenseItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        LicenseCategory `json:"category,omitempty"`
	OSIApproved     bool            `json:"osi_approved"`
	FSFLibre        bool            `json:"fsf_libre"`
	Deprecated      bool            `json:"deprecated"`
	Spdx            bool            `json:"spdx"`
	DepsUsing       []string        `json:"deps_using"`
	DependencyCount int             `json:"dependency_count"`
}
