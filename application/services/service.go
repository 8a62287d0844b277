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

// Package services answers the queries of the findings API: every call checks access, loads the plugin results of
// the analysis and computes the requested view.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/domain/knowledge"
	"github.com/snyk/findings-engine/domain/observability/performance"
	"github.com/snyk/findings-engine/domain/query"
	"github.com/snyk/findings-engine/domain/report"
	"github.com/snyk/findings-engine/domain/stats"
	"github.com/snyk/findings-engine/infrastructure/access"
	"github.com/snyk/findings-engine/infrastructure/results"
	ctx2 "github.com/snyk/findings-engine/internal/context"
	"github.com/snyk/findings-engine/internal/types"
)

// Request identifies the analysis, the workspace and the user asking.
type Request struct {
	OrgID      uuid.UUID `json:"org_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	AnalysisID uuid.UUID `json:"analysis_id"`
	Workspace  string    `json:"workspace"`
	User       string    `json:"user"`
}

type ListRequest struct {
	Request
	types.QueryParams
}

type ReportRequest struct {
	Request
	VulnerabilityID string `json:"vulnerability_id"`
	Dependency      string `json:"dependency,omitempty"`
	Version         string `json:"version,omitempty"`
}

// WeeklyRequest asks for the analyses of a project created since Since. An empty workspace spans all workspaces.
type WeeklyRequest struct {
	Request
	Since time.Time `json:"since,omitempty"`
}

type PackageSource interface {
	Packages(ctx context.Context, names []string) (map[string]types.PackageRecord, error)
}

type LicenseSource interface {
	Licenses(ctx context.Context, ids []string) (map[string]types.LicenseRecord, error)
}

const defaultWeeklyWindow = 12 * 7 * 24 * time.Hour

type FindingsService struct {
	c            *config.Config
	access       access.Checker
	results      results.Store
	packages     PackageSource
	licenses     LicenseSource
	lookup       *knowledge.Lookup
	assembler    *report.Assembler
	renderer     *report.HtmlRenderer
	aggregator   *stats.Aggregator
	instrumentor performance.Instrumentor
	now          func() time.Time

	vulnerabilities *query.Collection[types.VulnerabilityItem]
	dependencies    *query.Collection[types.DependencyItem]
	licenseItems    *query.Collection[types.LicenseItem]
}

func NewFindingsService(
	c *config.Config,
	checker access.Checker,
	store results.Store,
	packages PackageSource,
	licenses LicenseSource,
	lookup *knowledge.Lookup,
	assembler *report.Assembler,
	renderer *report.HtmlRenderer,
	instrumentor performance.Instrumentor,
) *FindingsService {
	return &FindingsService{
		c:               c,
		access:          checker,
		results:         store,
		packages:        packages,
		licenses:        licenses,
		lookup:          lookup,
		assembler:       assembler,
		renderer:        renderer,
		aggregator:      stats.NewAggregator(c, lookup.OWASP()),
		instrumentor:    instrumentor,
		now:             time.Now,
		vulnerabilities: query.Vulnerabilities(lookup.OWASP()),
		dependencies:    query.Dependencies(),
		licenseItems:    query.Licenses(),
	}
}

func (s *FindingsService) authorize(ctx context.Context, req Request) error {
	return s.access.CheckAccess(ctx, req.OrgID, req.ProjectID, req.AnalysisID, req.User)
}

func (s *FindingsService) transaction(ctx context.Context, operation string) (context.Context, performance.Span) {
	span := s.instrumentor.NewTransaction(ctx, "FindingsService", operation)
	return span.Context(), span
}

// logger prefers the request logger put on the context by the transport.
func (s *FindingsService) logger(ctx context.Context) *zerolog.Logger {
	if _, ok := ctx2.RequestIDFromContext(ctx); ok {
		return ctx2.LoggerFromContext(ctx)
	}
	return s.c.Logger()
}
