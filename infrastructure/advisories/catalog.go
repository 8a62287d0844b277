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

package advisories

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/domain/knowledge"
	"github.com/snyk/findings-engine/internal/types"
)

// Catalog serves weaknesses from a YAML file, a list of records:
//
//	- id: CWE-79
//	  name: Improper Neutralization of Input During Web Page Generation
//	  categories: ["1347"]
//
// The file is read on first use.
type Catalog struct {
	c        *config.Config
	path     string
	once     sync.Once
	loadErr  error
	byID     map[string]types.WeaknessRecord
	fallback knowledge.WeaknessSource
}

// NewCatalog reads path from c.Fs(). Weaknesses missing from the file are asked from fallback when it is not nil.
func NewCatalog(c *config.Config, path string, fallback knowledge.WeaknessSource) *Catalog {
	return &Catalog{c: c, path: path, fallback: fallback}
}

func (cat *Catalog) load() {
	logger := cat.c.Logger().With().Str("method", "Catalog.load").Str("path", cat.path).Logger()
	content, err := afero.ReadFile(cat.c.Fs(), cat.path)
	if err != nil {
		cat.loadErr = errors.Wrap(err, "couldn't read weakness catalog")
		return
	}
	var records []types.WeaknessRecord
	if err = yaml.Unmarshal(content, &records); err != nil {
		cat.loadErr = errors.Wrapf(err, "couldn't parse weakness catalog %s", cat.path)
		return
	}
	cat.byID = make(map[string]types.WeaknessRecord, len(records))
	for _, record := range records {
		record.ID = knowledge.NormalizeWeaknessID(record.ID)
		cat.byID[record.ID] = record
	}
	logger.Info().Int("weaknesses", len(cat.byID)).Msg("weakness catalog loaded")
}

// Load reads the catalog file once and returns the error of that read.
func (cat *Catalog) Load() error {
	cat.once.Do(cat.load)
	return cat.loadErr
}

// Weakness looks id up in the catalog. An unreadable catalog behaves like an empty one.
func (cat *Catalog) Weakness(ctx context.Context, id string) (types.WeaknessRecord, error) {
	if err := cat.Load(); err != nil {
		if cat.fallback != nil {
			return cat.fallback.Weakness(ctx, id)
		}
		return types.WeaknessRecord{}, err
	}
	if record, ok := cat.byID[knowledge.NormalizeWeaknessID(id)]; ok {
		return record, nil
	}
	if cat.fallback != nil {
		return cat.fallback.Weakness(ctx, id)
	}
	return types.WeaknessRecord{}, errors.Wrapf(types.ErrNotFound, "weakness %s", id)
}
