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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/snyk/findings-engine/domain/findings"
	"github.com/snyk/findings-engine/domain/knowledge"
	"github.com/snyk/findings-engine/internal/data_structure"
	"github.com/snyk/findings-engine/internal/types"
	"github.com/snyk/findings-engine/internal/util"
	"github.com/snyk/findings-engine/internal/versions"
)

// VulnerabilityItems projects merged vulnerabilities into list items, keeping the merge order.
func VulnerabilityItems(merged *findings.Merged, owasp *knowledge.OWASPTable) []types.VulnerabilityItem {
	items := make([]types.VulnerabilityItem, 0, merged.Len())
	for _, mv := range merged.Values() {
		item := types.VulnerabilityItem{
			VulnerabilityID: mv.VulnerabilityID,
			Severity:        mv.Severity.Severity,
			SeverityClass:   mv.Severity.Class(),
			SeverityType:    mv.Severity.SeverityType,
			Sources:         mv.Sources(),
			Weaknesses:      mv.Weaknesses,
			Affected:        mv.Affected,
		}
		if category, ok := owasp.ForVulnerability(mv); ok {
			item.OWASPTop10 = &category
		}
		items = append(items, item)
	}
	return items
}

// DependencyItems lists the dependencies of an SBOM workspace. packages holds the registry metadata by
// dependency name; dependencies without metadata are neither deprecated nor outdated.
func DependencyItems(workspace types.SbomWorkspace, packages map[string]types.PackageRecord) []types.DependencyItem {
	var items []types.DependencyItem
	names := maps.Keys(workspace.Dependencies)
	slices.Sort(names)
	for _, name := range names {
		byVersion := workspace.Dependencies[name]
		vs := maps.Keys(byVersion)
		slices.SortFunc(vs, versions.Compare)
		record, hasRecord := packages[name]
		for _, version := range vs {
			dep := byVersion[version]
			item := types.DependencyItem{
				Name:       name,
				Version:    version,
				Direct:     dep.Direct,
				Transitive: dep.Transitive,
				Prod:       dep.Prod,
				Dev:        dep.Dev,
				Licenses:   dep.Licenses,
			}
			if hasRecord {
				item.LatestVersion = record.LatestVersion
				item.Outdated = record.LatestVersion != "" && versions.Compare(version, record.LatestVersion) < 0
				if pv, ok := record.Versions[version]; ok {
					item.Deprecated = pv.Deprecated
					if !pv.ReleaseTime.IsZero() {
						item.Release = util.PtrOf(pv.ReleaseTime)
					}
					if len(item.Licenses) == 0 {
						item.Licenses = pv.Licenses
					}
				}
			}
			if item.Licenses == nil {
				item.Licenses = []string{}
			}
			items = append(items, item)
		}
	}
	return items
}

// LicenseItems lists the licenses found in a workspace. records holds the license catalogue by id; unknown
// licenses are listed by id only.
func LicenseItems(workspace types.LicenseWorkspace, records map[string]types.LicenseRecord) []types.LicenseItem {
	var items []types.LicenseItem
	add := func(depMap map[string][]string, spdx bool) {
		ids := maps.Keys(depMap)
		slices.Sort(ids)
		for _, id := range ids {
			deps := data_structure.Unique(depMap[id])
			slices.Sort(deps)
			item := types.LicenseItem{
				ID:              id,
				Name:            id,
				Spdx:            spdx,
				DepsUsing:       deps,
				DependencyCount: len(deps),
			}
			if record, ok := records[id]; ok {
				if record.Name != "" {
					item.Name = record.Name
				}
				item.Category = record.Category
				item.OSIApproved = record.OSIApproved
				item.FSFLibre = record.FSFLibre
				item.Deprecated = record.Deprecated
			}
			items = append(items, item)
		}
	}
	add(workspace.LicensesDepMap, true)
	add(workspace.NonSpdxLicensesDepMap, false)
	return items
}
