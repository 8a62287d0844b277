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

// Package database opens the Postgres pool shared by the results, packages, knowledge and access adapters.
package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/internal/types"
)

//go:embed schema.sql
var schema string

// Querier is the read subset of *pgxpool.Pool the adapters use.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func Open(ctx context.Context, c *config.Config) (*pgxpool.Pool, error) {
	if c.DatabaseURL() == "" {
		return nil, errors.New("no database url configured")
	}
	pool, err := pgxpool.New(ctx, c.DatabaseURL())
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open database pool")
	}
	c.Logger().Debug().Str("method", "database.Open").Msg("database pool opened")
	return pool, nil
}

func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return pool.Ping(ctx)
}

// EnsureSchema creates the tables read by the adapters if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return errors.Wrap(err, "couldn't create schema")
}

// ScanJSON reads a single jsonb column into v. pgx.ErrNoRows becomes types.ErrNotFound.
func ScanJSON(row pgx.Row, v any) error {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.ErrNotFound
		}
		return err
	}
	return errors.Wrap(json.Unmarshal(raw, v), "couldn't decode record")
}
