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

// Package advisories reads the vulnerability knowledge base: NVD and OSV records, CWE weaknesses and licenses.
package advisories

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/infrastructure/database"
	"github.com/snyk/findings-engine/internal/types"
)

const (
	nvdQuery        = `SELECT record FROM nvd_records WHERE id = $1`
	osvQuery        = `SELECT record FROM osv_records WHERE id = $1`
	osvByAliasQuery = `SELECT record FROM osv_records WHERE $1 = ANY(aliases) ORDER BY id LIMIT 1`
	weaknessQuery   = `SELECT record FROM weaknesses WHERE id = $1`
	licensesQuery   = `SELECT id, record FROM licenses WHERE id = ANY($1)`
)

type Store struct {
	c  *config.Config
	db database.Querier
}

func NewStore(c *config.Config, db database.Querier) *Store {
	return &Store{c: c, db: db}
}

func (s *Store) NVD(ctx context.Context, cveID string) (types.NVDRecord, error) {
	var record types.NVDRecord
	err := database.ScanJSON(s.db.QueryRow(ctx, nvdQuery, strings.ToUpper(cveID)), &record)
	return record, errors.WithMessagef(err, "nvd record %s", cveID)
}

func (s *Store) OSV(ctx context.Context, id string) (types.OSVRecord, error) {
	var record types.OSVRecord
	err := database.ScanJSON(s.db.QueryRow(ctx, osvQuery, id), &record)
	return record, errors.WithMessagef(err, "osv record %s", id)
}

func (s *Store) OSVByAlias(ctx context.Context, cveID string) (types.OSVRecord, error) {
	var record types.OSVRecord
	err := database.ScanJSON(s.db.QueryRow(ctx, osvByAliasQuery, strings.ToUpper(cveID)), &record)
	return record, errors.WithMessagef(err, "osv record aliased %s", cveID)
}

func (s *Store) Weakness(ctx context.Context, id string) (types.WeaknessRecord, error) {
	var record types.WeaknessRecord
	err := database.ScanJSON(s.db.QueryRow(ctx, weaknessQuery, id), &record)
	return record, errors.WithMessagef(err, "weakness %s", id)
}

// Licenses returns the records found for ids. Unknown ids are absent from the map.
func (s *Store) Licenses(ctx context.Context, ids []string) (map[string]types.LicenseRecord, error) {
	records := make(map[string]types.LicenseRecord, len(ids))
	if len(ids) == 0 {
		return records, nil
	}
	rows, err := s.db.Query(ctx, licensesQuery, ids)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't query licenses")
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var raw []byte
		if err = rows.Scan(&id, &raw); err != nil {
			return nil, errors.Wrap(err, "couldn't scan license")
		}
		var record types.LicenseRecord
		if err = json.Unmarshal(raw, &record); err != nil {
			s.c.Logger().Warn().Err(err).Str("method", "Licenses").Str("license", id).Msg("skipping malformed record")
			continue
		}
		records[id] = record
	}
	return records, errors.Wrap(rows.Err(), "couldn't read licenses")
}
