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

// Package knowledge gives read access to weakness (CWE) records and the OWASP Top 10 classification of weaknesses.
package knowledge

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/internal/types"
)

// WeaknessSource loads CWE records by normalized id ("CWE-79"). Unknown ids return types.ErrNotFound.
type WeaknessSource interface {
	Weakness(ctx context.Context, id string) (types.WeaknessRecord, error)
}

type Lookup struct {
	c      *config.Config
	source WeaknessSource
	owasp  *OWASPTable
	memo   *xsync.MapOf[string, types.WeaknessRecord]
}

func NewLookup(c *config.Config, source WeaknessSource, owasp *OWASPTable) *Lookup {
	return &Lookup{
		c:      c,
		source: source,
		owasp:  owasp,
		memo:   xsync.NewMapOf[string, types.WeaknessRecord](),
	}
}

func (l *Lookup) OWASP() *OWASPTable {
	return l.owasp
}

// NormalizeWeaknessID turns "79", "cwe-79" and "CWE-79" into "CWE-79". Other ids are returned trimmed.
func NormalizeWeaknessID(id string) string {
	id = strings.TrimSpace(id)
	if isDigits(id) {
		return "CWE-" + id
	}
	upper := strings.ToUpper(id)
	if strings.HasPrefix(upper, "CWE-") && isDigits(upper[4:]) {
		return upper
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Weakness returns the CWE record, or an error wrapping types.ErrNotFound.
// Placeholders like NVD-CWE-Other never reach the source.
func (l *Lookup) Weakness(ctx context.Context, id string) (types.WeaknessRecord, error) {
	normalized := NormalizeWeaknessID(id)
	if !strings.HasPrefix(normalized, "CWE-") {
		return types.WeaknessRecord{}, errors.Wrapf(types.ErrNotFound, "weakness %s", id)
	}
	if record, ok := l.memo.Load(normalized); ok {
		return record, nil
	}
	record, err := l.source.Weakness(ctx, normalized)
	if err != nil {
		return types.WeaknessRecord{}, errors.WithMessagef(err, "weakness %s", normalized)
	}
	l.memo.Store(normalized, record)
	return record, nil
}

// OWASPCategory returns the category for a CWE category id, or an error wrapping types.ErrNotFound.
func (l *Lookup) OWASPCategory(categoryID string) (types.OWASPCategory, error) {
	c, ok := l.owasp.Category(categoryID)
	if !ok {
		return types.OWASPCategory{}, errors.Wrapf(types.ErrNotFound, "owasp category %s", categoryID)
	}
	return c, nil
}

// OWASPForWeakness classifies a weakness by the first of its categories present in the table.
// Nil means uncategorized, including when the weakness itself is unknown.
func (l *Lookup) OWASPForWeakness(ctx context.Context, weaknessID string) *types.OWASPCategory {
	record, err := l.Weakness(ctx, weaknessID)
	if err != nil {
		l.c.Logger().Debug().Str("method", "OWASPForWeakness").Err(err).Msg("uncategorized")
		return nil
	}
	for _, categoryID := range record.Categories {
		if c, ok := l.owasp.Category(categoryID); ok {
			return &c
		}
	}
	return nil
}

// Enrich fills the name, description and OWASP category of w from the knowledge base where they are missing.
func (l *Lookup) Enrich(ctx context.Context, w types.WeaknessInfo) types.WeaknessInfo {
	record, err := l.Weakness(ctx, w.WeaknessID)
	if err != nil {
		return w
	}
	if w.WeaknessName == "" {
		w.WeaknessName = record.Name
	}
	if w.WeaknessDescription == "" {
		w.WeaknessDescription = record.Description
	}
	if w.OWASPTop10ID == "" {
		for _, categoryID := range record.Categories {
			if c, ok := l.owasp.Category(categoryID); ok {
				w.OWASPTop10ID = c.ID
				w.OWASPTop10Name = c.Name
				break
			}
		}
	}
	return w
}
