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

package query

import (
	"strconv"
	"strings"

	"github.com/snyk/findings-engine/domain/knowledge"
	"github.com/snyk/findings-engine/internal/types"
	"github.com/snyk/findings-engine/internal/versions"
)

const (
	SortSeverity          = "severity"
	SortVulnerabilityID   = "vulnerability_id"
	SortDependencyName    = "dependency_name"
	SortDependencyVersion = "dependency_version"
	SortWeakness          = "weakness"
	SortOWASPTop10        = "owasp_top_10"

	SortName            = "name"
	SortVersion         = "version"
	SortRelease         = "release"
	SortLicenses        = "licenses"
	SortDirect          = "direct"
	SortDependencyCount = "dependency_count"
	SortID              = "id"
	SortType            = "type"
)

// Vulnerabilities is the collection behind vulnerabilities/list.
func Vulnerabilities(owasp *knowledge.OWASPTable) *Collection[types.VulnerabilityItem] {
	filters := map[string]Predicate[types.VulnerabilityItem]{
		"source_nvd": hasSource(types.SourceNVD),
		"source_osv": hasSource(types.SourceOSV),
		knowledge.UncategorizedFilterName: func(v types.VulnerabilityItem) bool {
			return v.OWASPTop10 == nil
		},
	}
	for _, class := range types.SeverityClasses {
		class := class
		filters["severity_"+strings.ToLower(string(class))] = func(v types.VulnerabilityItem) bool {
			return v.SeverityClass == class
		}
	}
	for _, category := range owasp.Categories() {
		id := category.ID
		filters[category.FilterName] = func(v types.VulnerabilityItem) bool {
			return v.OWASPTop10 != nil && v.OWASPTop10.ID == id
		}
	}

	return &Collection[types.VulnerabilityItem]{
		Name: "vulnerabilities",
		Search: func(v types.VulnerabilityItem) []string {
			fields := []string{v.VulnerabilityID}
			for _, a := range v.Affected {
				fields = append(fields, a.AffectedDependency)
			}
			for _, w := range v.Weaknesses {
				fields = append(fields, w.WeaknessID)
			}
			return fields
		},
		Filters: filters,
		Sorts: map[string]Compare[types.VulnerabilityItem]{
			SortSeverity: func(a, b types.VulnerabilityItem) int {
				return compareFloat(a.Severity, b.Severity)
			},
			SortVulnerabilityID: func(a, b types.VulnerabilityItem) int {
				return strings.Compare(a.VulnerabilityID, b.VulnerabilityID)
			},
			SortDependencyName: func(a, b types.VulnerabilityItem) int {
				return strings.Compare(firstAffected(a).AffectedDependency, firstAffected(b).AffectedDependency)
			},
			SortDependencyVersion: func(a, b types.VulnerabilityItem) int {
				return versions.Compare(firstAffected(a).AffectedVersion, firstAffected(b).AffectedVersion)
			},
			SortWeakness: func(a, b types.VulnerabilityItem) int {
				return compareWeakness(firstWeakness(a), firstWeakness(b))
			},
			SortOWASPTop10: func(a, b types.VulnerabilityItem) int {
				return owasp.Index(owaspID(a)) - owasp.Index(owaspID(b))
			},
		},
		DefaultSort:    SortSeverity,
		DefaultPerPage: 20,
		MaxPerPage:     100,
	}
}

func hasSource(source types.Source) Predicate[types.VulnerabilityItem] {
	return func(v types.VulnerabilityItem) bool {
		for _, s := range v.Sources {
			if strings.EqualFold(string(s), string(source)) {
				return true
			}
		}
		return false
	}
}

func firstAffected(v types.VulnerabilityItem) types.AffectedVuln {
	if len(v.Affected) == 0 {
		return types.AffectedVuln{}
	}
	return v.Affected[0]
}

func firstWeakness(v types.VulnerabilityItem) string {
	if len(v.Weaknesses) == 0 {
		return ""
	}
	return v.Weaknesses[0].WeaknessID
}

func owaspID(v types.VulnerabilityItem) string {
	if v.OWASPTop10 == nil {
		return ""
	}
	return v.OWASPTop10.ID
}

// compareWeakness orders CWE ids by their number, CWE-79 before CWE-100. Ids without a number sort last.
func compareWeakness(a, b string) int {
	na, errA := strconv.Atoi(strings.TrimPrefix(knowledge.NormalizeWeaknessID(a), "CWE-"))
	nb, errB := strconv.Atoi(strings.TrimPrefix(knowledge.NormalizeWeaknessID(b), "CWE-"))
	switch {
	case errA == nil && errB == nil:
		return na - nb
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// Dependencies is the collection behind dependencies/list.
func Dependencies() *Collection[types.DependencyItem] {
	return &Collection[types.DependencyItem]{
		Name: "dependencies",
		Search: func(d types.DependencyItem) []string {
			return append([]string{d.Name, d.Version}, d.Licenses...)
		},
		Filters: map[string]Predicate[types.DependencyItem]{
			"direct":     func(d types.DependencyItem) bool { return d.Direct },
			"transitive": func(d types.DependencyItem) bool { return d.Transitive },
			"prod":       func(d types.DependencyItem) bool { return d.Prod },
			"dev":        func(d types.DependencyItem) bool { return d.Dev },
			"deprecated": func(d types.DependencyItem) bool { return d.Deprecated },
			"outdated":   func(d types.DependencyItem) bool { return d.Outdated },
			"unlicensed": func(d types.DependencyItem) bool { return len(d.Licenses) == 0 },
		},
		Sorts: map[string]Compare[types.DependencyItem]{
			SortName: func(a, b types.DependencyItem) int {
				if c := strings.Compare(a.Name, b.Name); c != 0 {
					return c
				}
				return versions.Compare(a.Version, b.Version)
			},
			SortVersion: func(a, b types.DependencyItem) int {
				return versions.Compare(a.Version, b.Version)
			},
			SortRelease: func(a, b types.DependencyItem) int {
				switch {
				case a.Release == nil && b.Release == nil:
					return 0
				case a.Release == nil:
					return -1
				case b.Release == nil:
					return 1
				default:
					return a.Release.Compare(*b.Release)
				}
			},
			SortLicenses: func(a, b types.DependencyItem) int {
				return strings.Compare(strings.Join(a.Licenses, ","), strings.Join(b.Licenses, ","))
			},
			SortDirect: func(a, b types.DependencyItem) int {
				return compareBool(a.Direct, b.Direct)
			},
		},
		DefaultSort:    SortName,
		DefaultPerPage: 20,
		MaxPerPage:     100,
	}
}

// Licenses is the collection behind licenses/list.
func Licenses() *Collection[types.LicenseItem] {
	category := func(c types.LicenseCategory) Predicate[types.LicenseItem] {
		return func(l types.LicenseItem) bool { return l.Category == c }
	}
	return &Collection[types.LicenseItem]{
		Name: "licenses",
		Search: func(l types.LicenseItem) []string {
			return []string{l.ID, l.Name}
		},
		Filters: map[string]Predicate[types.LicenseItem]{
			string(types.LicensePermissive):   category(types.LicensePermissive),
			string(types.LicenseCopyLeft):     category(types.LicenseCopyLeft),
			string(types.LicenseWeakCopyLeft): category(types.LicenseWeakCopyLeft),
			string(types.LicensePublicDomain): category(types.LicensePublicDomain),
			"osi_approved":                    func(l types.LicenseItem) bool { return l.OSIApproved },
			"fsf_libre":                       func(l types.LicenseItem) bool { return l.FSFLibre },
			"deprecated":                      func(l types.LicenseItem) bool { return l.Deprecated },
		},
		Sorts: map[string]Compare[types.LicenseItem]{
			SortDependencyCount: func(a, b types.LicenseItem) int { return a.DependencyCount - b.DependencyCount },
			SortID:              func(a, b types.LicenseItem) int { return strings.Compare(a.ID, b.ID) },
			SortName:            func(a, b types.LicenseItem) int { return strings.Compare(a.Name, b.Name) },
			SortType:            func(a, b types.LicenseItem) int { return strings.Compare(string(a.Category), string(b.Category)) },
		},
		DefaultSort:    SortDependencyCount,
		DefaultPerPage: 10,
		MaxPerPage:     100,
	}
}
