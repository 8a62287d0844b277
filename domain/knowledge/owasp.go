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

package knowledge

import (
	"strconv"

	"github.com/snyk/findings-engine/internal/types"
)

const UncategorizedFilterName = "owasp_uncategorized"

// OWASPTable maps the CWE category ids of the OWASP Top Ten 2021 view to their category. It is immutable once built.
type OWASPTable struct {
	ordered  []types.OWASPCategory
	byID     map[string]types.OWASPCategory
	byFilter map[string]types.OWASPCategory
}

func NewOWASPTop10_2021() *OWASPTable {
	return newOWASPTable([]types.OWASPCategory{
		{ID: "1345", Label: "A01", Name: "Broken Access Control",
			Description: "Access control enforces policy such that users cannot act outside of their intended permissions."},
		{ID: "1346", Label: "A02", Name: "Cryptographic Failures",
			Description: "Failures related to cryptography which often lead to exposure of sensitive data."},
		{ID: "1347", Label: "A03", Name: "Injection",
			Description: "User-supplied data is not validated, filtered, or sanitized by the application."},
		{ID: "1348", Label: "A04", Name: "Insecure Design",
			Description: "Risks related to design flaws and missing or ineffective control design."},
		{ID: "1349", Label: "A05", Name: "Security Misconfiguration",
			Description: "Missing security hardening, unnecessary features enabled or insecure default configuration."},
		{ID: "1352", Label: "A06", Name: "Vulnerable and Outdated Components",
			Description: "Components that are vulnerable, unsupported, or out of date."},
		{ID: "1353", Label: "A07", Name: "Identification and Authentication Failures",
			Description: "Weaknesses in confirming the user's identity, authentication, and session management."},
		{ID: "1354", Label: "A08", Name: "Software and Data Integrity Failures",
			Description: "Code and infrastructure that does not protect against integrity violations."},
		{ID: "1355", Label: "A09", Name: "Security Logging and Monitoring Failures",
			Description: "Insufficient logging and monitoring to detect, escalate, and respond to active breaches."},
		{ID: "1356", Label: "A10", Name: "Server-Side Request Forgery",
			Description: "Fetching a remote resource without validating the user-supplied URL."},
	})
}

func newOWASPTable(categories []types.OWASPCategory) *OWASPTable {
	t := &OWASPTable{
		byID:     make(map[string]types.OWASPCategory, len(categories)),
		byFilter: make(map[string]types.OWASPCategory, len(categories)),
	}
	for i, category := range categories {
		category.FilterName = FilterName(i + 1)
		t.ordered = append(t.ordered, category)
		t.byID[category.ID] = category
		t.byFilter[category.FilterName] = category
	}
	return t
}

// FilterName is the list filter of the n-th category, e.g. owasp_top_10_2021_a3.
func FilterName(n int) string {
	return "owasp_top_10_2021_a" + strconv.Itoa(n)
}

// Category returns the category for a CWE category id. Unknown ids are uncategorized.
func (t *OWASPTable) Category(id string) (types.OWASPCategory, bool) {
	c, ok := t.byID[id]
	return c, ok
}

func (t *OWASPTable) ByFilterName(name string) (types.OWASPCategory, bool) {
	c, ok := t.byFilter[name]
	return c, ok
}

// Categories returns a copy of the categories in A01..A10 order.
func (t *OWASPTable) Categories() []types.OWASPCategory {
	result := make([]types.OWASPCategory, len(t.ordered))
	copy(result, t.ordered)
	return result
}

// Index returns the 1-based position of the category (A03 -> 3), 0 for unknown ids.
func (t *OWASPTable) Index(id string) int {
	for i, c := range t.ordered {
		if c.ID == id {
			return i + 1
		}
	}
	return 0
}

// ForWeaknesses returns the category of the first weakness carrying a known category id.
func (t *OWASPTable) ForWeaknesses(weaknesses []types.WeaknessInfo) (types.OWASPCategory, bool) {
	for _, w := range weaknesses {
		if c, ok := t.Category(w.OWASPTop10ID); ok {
			return c, true
		}
	}
	return types.OWASPCategory{}, false
}

// ForVulnerability classifies a merged vulnerability: the representative weaknesses are tried first, then the
// weaknesses of each affected finding in order.
func (t *OWASPTable) ForVulnerability(mv *types.MergedVulnerability) (types.OWASPCategory, bool) {
	if c, ok := t.ForWeaknesses(mv.Weaknesses); ok {
		return c, true
	}
	for _, affected := range mv.Affected {
		if c, ok := t.ForWeaknesses(affected.Weaknesses); ok {
			return c, true
		}
	}
	return types.OWASPCategory{}, false
}
