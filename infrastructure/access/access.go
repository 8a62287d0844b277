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

// Package access decides whether a user may read the results of an analysis.
package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/infrastructure/database"
	"github.com/snyk/findings-engine/internal/types"
)

//go:generate go tool github.com/golang/mock/mockgen -source=access.go -destination=mock_access/checker_mock.go -package=mock_access

type Checker interface {
	// CheckAccess returns types.ErrNotAuthorized unless user is a member of the project and the analysis belongs to it.
	// A nil analysisID checks project membership only.
	CheckAccess(ctx context.Context, orgID, projectID, analysisID uuid.UUID, user string) error
}

const membershipQuery = `SELECT EXISTS (
	SELECT 1 FROM project_members m
	WHERE m.organization_id = $1::uuid AND m.project_id = $2::uuid AND m.user_id = $3
	AND ($4::uuid IS NULL OR EXISTS (
		SELECT 1 FROM analyses a WHERE a.id = $4::uuid AND a.project_id = m.project_id
	))
)`

type postgresChecker struct {
	c  *config.Config
	db database.Querier
}

func NewPostgresChecker(c *config.Config, db database.Querier) Checker {
	return &postgresChecker{c: c, db: db}
}

func (p *postgresChecker) CheckAccess(ctx context.Context, orgID, projectID, analysisID uuid.UUID, user string) error {
	logger := p.c.Logger().With().Str("method", "CheckAccess").Str("project", projectID.String()).Logger()
	if user == "" || orgID == uuid.Nil || projectID == uuid.Nil {
		return types.ErrNotAuthorized
	}
	var analysis any
	if analysisID != uuid.Nil {
		analysis = analysisID.String()
	}
	var allowed bool
	err := p.db.QueryRow(ctx, membershipQuery, orgID.String(), projectID.String(), user, analysis).Scan(&allowed)
	if err != nil {
		return errors.Wrap(err, "couldn't check project membership")
	}
	if !allowed {
		logger.Debug().Str("user", user).Msg("access denied")
		return types.ErrNotAuthorized
	}
	return nil
}
