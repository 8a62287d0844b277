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

// Package findings merges the per dependency findings of the vuln-finder into one record per vulnerability id.
package findings

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/snyk/findings-engine/internal/data_structure"
	"github.com/snyk/findings-engine/internal/types"
)

// Merged is the merge output in first-seen order of vulnerability ids.
type Merged = data_structure.OrderedMap[string, *types.MergedVulnerability]

// Merge groups findings by vulnerability id in a single pass.
// The first finding of an id seeds the representative Severity and Weaknesses; later findings only add
// to Affected. A dependency+version pair is kept once per id, the first occurrence wins.
func Merge(findings []types.Finding) *Merged {
	merged := data_structure.NewOrderedMap[string, *types.MergedVulnerability]()
	seen := make(map[string]map[string]struct{})
	for _, f := range findings {
		add(merged, seen, f)
	}
	return merged
}

// MergeWorkspaces merges the findings of all workspaces of one result, visiting workspaces in name order.
func MergeWorkspaces(output types.VulnFinderOutput) *Merged {
	merged := data_structure.NewOrderedMap[string, *types.MergedVulnerability]()
	seen := make(map[string]map[string]struct{})
	names := maps.Keys(output.Workspaces)
	slices.Sort(names)
	for _, name := range names {
		for _, f := range output.Workspaces[name].Vulnerabilities {
			add(merged, seen, f)
		}
	}
	return merged
}

func add(merged *Merged, seen map[string]map[string]struct{}, f types.Finding) {
	mv, ok := merged.Get(f.VulnerabilityID)
	if !ok {
		mv = &types.MergedVulnerability{
			VulnerabilityID: f.VulnerabilityID,
			Severity:        f.Severity,
			Weaknesses:      f.Weaknesses,
		}
		merged.Add(f.VulnerabilityID, mv)
		seen[f.VulnerabilityID] = make(map[string]struct{})
	}
	key := f.DependencyKey()
	if _, duplicate := seen[f.VulnerabilityID][key]; duplicate {
		return
	}
	seen[f.VulnerabilityID][key] = struct{}{}
	mv.Affected = append(mv.Affected, types.NewAffectedVuln(f))
}

// VulnerableDependencyNames returns the distinct dependency names affected by any merged vulnerability.
func VulnerableDependencyNames(merged *Merged) []string {
	var names []string
	seen := map[string]bool{}
	for _, mv := range merged.Values() {
		for _, name := range mv.DependencyNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
