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

package results

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/infrastructure/database"
	"github.com/snyk/findings-engine/internal/types"
)

const (
	latestResultQuery = `
SELECT id::text, analysis_id::text, plugin, created_on, result, result_object
FROM analysis_results
WHERE analysis_id = $1::uuid AND plugin = $2
ORDER BY created_on DESC
LIMIT 1`

	analysisColumns = `SELECT id::text, project_id::text, organization_id::text, created_on, status FROM analyses`

	analysisQuery = analysisColumns + `
WHERE id = $1::uuid`

	previousAnalysisQuery = analysisColumns + `
WHERE project_id = $1::uuid AND created_on < $2 AND status = 'success'
ORDER BY created_on DESC
LIMIT 1`

	projectAnalysesQuery = analysisColumns + `
WHERE project_id = $1::uuid AND created_on >= $2
ORDER BY created_on, id`
)

type postgresStore struct {
	c        *config.Config
	db       database.Querier
	payloads PayloadStore
}

// NewPostgresStore reads results from Postgres. payloads may be nil when no result is offloaded.
func NewPostgresStore(c *config.Config, db database.Querier, payloads PayloadStore) Store {
	return &postgresStore{c: c, db: db, payloads: payloads}
}

func (s *postgresStore) LatestResult(ctx context.Context, analysisID uuid.UUID, plugin types.Plugin) (*types.AnalysisResult, error) {
	logger := s.c.Logger().With().Str("method", "LatestResult").Str("analysisID", analysisID.String()).
		Str("plugin", string(plugin)).Logger()

	var id, storedAnalysisID, storedPlugin string
	var result types.AnalysisResult
	var payload []byte
	var object *string
	err := s.db.QueryRow(ctx, latestResultQuery, analysisID.String(), string(plugin)).
		Scan(&id, &storedAnalysisID, &storedPlugin, &result.CreatedOn, &payload, &object)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(types.ErrPluginResultNotAvailable, "%s result of analysis %s", plugin, analysisID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "couldn't query analysis result")
	}
	if result.ID, err = uuid.Parse(id); err != nil {
		return nil, errors.Wrap(err, "invalid result id")
	}
	result.AnalysisID = analysisID
	result.Plugin = types.Plugin(storedPlugin)

	if object != nil && *object != "" {
		if s.payloads == nil {
			return nil, errors.Errorf("result %s is offloaded to %s but no object store is configured", id, *object)
		}
		logger.Debug().Str("object", *object).Msg("loading offloaded payload")
		if payload, err = s.payloads.Payload(ctx, *object); err != nil {
			return nil, err
		}
	}
	if len(payload) == 0 {
		return nil, errors.Wrapf(types.ErrPluginResultNotAvailable, "%s result of analysis %s is empty", plugin, analysisID)
	}
	result.Result = payload
	return &result, nil
}

func (s *postgresStore) Analysis(ctx context.Context, analysisID uuid.UUID) (*types.Analysis, error) {
	analysis, err := scanAnalysis(s.db.QueryRow(ctx, analysisQuery, analysisID.String()))
	if err != nil {
		return nil, errors.WithMessagef(err, "analysis %s", analysisID)
	}
	return analysis, nil
}

func (s *postgresStore) PreviousAnalysis(ctx context.Context, projectID uuid.UUID, before time.Time) (*types.Analysis, error) {
	analysis, err := scanAnalysis(s.db.QueryRow(ctx, previousAnalysisQuery, projectID.String(), before))
	if err != nil {
		return nil, errors.WithMessagef(err, "analysis of project %s before %s", projectID, before.Format(time.RFC3339))
	}
	return analysis, nil
}

func (s *postgresStore) ProjectAnalyses(ctx context.Context, projectID uuid.UUID, since time.Time) ([]types.Analysis, error) {
	rows, err := s.db.Query(ctx, projectAnalysesQuery, projectID.String(), since)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't query project analyses")
	}
	defer rows.Close()

	analyses := []types.Analysis{}
	for rows.Next() {
		analysis, scanErr := scanAnalysis(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		analyses = append(analyses, *analysis)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read project analyses")
	}
	return analyses, nil
}

func scanAnalysis(row pgx.Row) (*types.Analysis, error) {
	var id, projectID, orgID string
	var analysis types.Analysis
	if err := row.Scan(&id, &projectID, &orgID, &analysis.CreatedOn, &analysis.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, errors.Wrap(err, "couldn't scan analysis")
	}
	var err error
	if analysis.ID, err = uuid.Parse(id); err != nil {
		return nil, errors.Wrap(err, "invalid analysis id")
	}
	if analysis.ProjectID, err = uuid.Parse(projectID); err != nil {
		return nil, errors.Wrap(err, "invalid project id")
	}
	if analysis.OrganizationID, err = uuid.Parse(orgID); err != nil {
		return nil, errors.Wrap(err, "invalid organization id")
	}
	return &analysis, nil
}
