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

// Package packages serves registry metadata of dependencies.
package packages

import (
	"context"
	"encoding/json"

	"github.com/erni27/imcache"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/infrastructure/database"
	"github.com/snyk/findings-engine/internal/data_structure"
	"github.com/snyk/findings-engine/internal/types"
)

const (
	packageQuery  = `SELECT record FROM packages WHERE name = $1`
	packagesQuery = `SELECT name, record FROM packages WHERE name = ANY($1)`
)

type Repository interface {
	Package(ctx context.Context, name string) (types.PackageRecord, error)
	// Packages returns the records found for names. Unknown names are absent from the map.
	Packages(ctx context.Context, names []string) (map[string]types.PackageRecord, error)
	Metadata(ctx context.Context, name, version string) (types.PackageVersion, error)
}

type postgresRepository struct {
	c     *config.Config
	db    database.Querier
	cache *imcache.Cache[string, types.PackageRecord]
}

// NewRepository reads package records from Postgres and keeps them for c.PackageCacheTTL().
func NewRepository(c *config.Config, db database.Querier) Repository {
	return &postgresRepository{
		c:  c,
		db: db,
		cache: imcache.New[string, types.PackageRecord](
			imcache.WithDefaultExpirationOption[string, types.PackageRecord](c.PackageCacheTTL()),
		),
	}
}

func (r *postgresRepository) Package(ctx context.Context, name string) (types.PackageRecord, error) {
	if record, ok := r.cache.Get(name); ok {
		return record, nil
	}
	var record types.PackageRecord
	if err := database.ScanJSON(r.db.QueryRow(ctx, packageQuery, name), &record); err != nil {
		return types.PackageRecord{}, errors.WithMessagef(err, "package %s", name)
	}
	r.cache.Set(name, record, imcache.WithDefaultExpiration())
	return record, nil
}

func (r *postgresRepository) Packages(ctx context.Context, names []string) (map[string]types.PackageRecord, error) {
	records := make(map[string]types.PackageRecord, len(names))
	var missing []string
	for _, name := range data_structure.Unique(names) {
		if record, ok := r.cache.Get(name); ok {
			records[name] = record
		} else {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return records, nil
	}
	slices.Sort(missing)

	rows, err := r.db.Query(ctx, packagesQuery, missing)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't query packages")
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var raw []byte
		if err = rows.Scan(&name, &raw); err != nil {
			return nil, errors.Wrap(err, "couldn't scan package")
		}
		var record types.PackageRecord
		if err = json.Unmarshal(raw, &record); err != nil {
			r.c.Logger().Warn().Err(err).Str("method", "Packages").Str("package", name).Msg("skipping malformed record")
			continue
		}
		records[name] = record
		r.cache.Set(name, record, imcache.WithDefaultExpiration())
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read packages")
	}
	r.c.Logger().Debug().Str("method", "Packages").Int("requested", len(names)).Int("found", len(records)).Msg("packages loaded")
	return records, nil
}

func (r *postgresRepository) Metadata(ctx context.Context, name, version string) (types.PackageVersion, error) {
	record, err := r.Package(ctx, name)
	if err != nil {
		return types.PackageVersion{}, err
	}
	v, ok := record.Versions[version]
	if !ok {
		return types.PackageVersion{}, errors.Wrapf(types.ErrNotFound, "package %s@%s", name, version)
	}
	return v, nil
}
