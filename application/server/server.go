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

// Package server exposes the findings API as JSON-RPC 2.0 methods.
package server

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/application/services"
	"github.com/snyk/findings-engine/domain/observability/error_reporting"
	ctx2 "github.com/snyk/findings-engine/internal/context"
	"github.com/snyk/findings-engine/internal/types"
)

// FindingsService is the set of queries served over JSON-RPC.
type FindingsService interface {
	Vulnerabilities(ctx context.Context, req services.ListRequest) (types.Page[types.VulnerabilityItem], error)
	Report(ctx context.Context, req services.ReportRequest) (*types.VulnerabilityDetails, error)
	ReportHtml(ctx context.Context, req services.ReportRequest) (string, error)
	Dependencies(ctx context.Context, req services.ListRequest) (types.Page[types.DependencyItem], error)
	Licenses(ctx context.Context, req services.ListRequest) (types.Page[types.LicenseItem], error)
	WorkspaceStats(ctx context.Context, req services.Request) (types.AnalysisStats, error)
	ProjectStats(ctx context.Context, req services.Request) (types.AnalysisStats, error)
	Weekly(ctx context.Context, req services.WeeklyRequest) ([]types.WeekBucket, error)
}

type ReportHtmlResult struct {
	Html string `json:"html"`
}

const (
	vulnerabilitiesListOperation   = "vulnerabilities/list"
	vulnerabilitiesReportOperation = "vulnerabilities/report"
	reportHtmlOperation            = "vulnerabilities/reportHtml"
	dependenciesListOperation      = "dependencies/list"
	licensesListOperation          = "licenses/list"
	workspaceStatsOperation        = "stats/workspace"
	projectStatsOperation          = "stats/project"
	weeklyStatsOperation           = "stats/weekly"
)

func NewHandlers(c *config.Config, service FindingsService, reporter error_reporting.ErrorReporter) handler.Map {
	handlers := handler.Map{}
	initHandlers(c, service, reporter, handlers)
	return handlers
}

func initHandlers(c *config.Config, service FindingsService, reporter error_reporting.ErrorReporter, handlers handler.Map) {
	handlers[vulnerabilitiesListOperation] = handle(c, reporter, vulnerabilitiesListOperation, service.Vulnerabilities)
	handlers[vulnerabilitiesReportOperation] = handle(c, reporter, vulnerabilitiesReportOperation, service.Report)
	handlers[reportHtmlOperation] = handle(c, reporter, reportHtmlOperation,
		func(ctx context.Context, req services.ReportRequest) (ReportHtmlResult, error) {
			html, err := service.ReportHtml(ctx, req)
			return ReportHtmlResult{Html: html}, err
		})
	handlers[dependenciesListOperation] = handle(c, reporter, dependenciesListOperation, service.Dependencies)
	handlers[licensesListOperation] = handle(c, reporter, licensesListOperation, service.Licenses)
	handlers[workspaceStatsOperation] = handle(c, reporter, workspaceStatsOperation, service.WorkspaceStats)
	handlers[projectStatsOperation] = handle(c, reporter, projectStatsOperation, service.ProjectStats)
	handlers[weeklyStatsOperation] = handle(c, reporter, weeklyStatsOperation, service.Weekly)
}

func handle[P, R any](
	c *config.Config,
	reporter error_reporting.ErrorReporter,
	operation string,
	fn func(context.Context, P) (R, error),
) jrpc2.Handler {
	return handler.New(func(ctx context.Context, params P) (R, error) {
		ctx = ctx2.NewContextWithCaller(ctx2.NewContextWithRequestID(ctx), ctx2.RPC)
		requestID, _ := ctx2.RequestIDFromContext(ctx)
		logger := c.Logger().With().Str("method", operation).Str("requestId", requestID).Logger()
		ctx = ctx2.NewContextWithLogger(ctx, &logger)
		logger.Debug().Msg("RECEIVING")
		result, err := fn(ctx, params)
		if err != nil {
			var zero R
			return zero, toRPCError(&logger, reporter, err)
		}
		logger.Debug().Msg("SENDING")
		return result, nil
	})
}

type RPCLogger struct {
	c *config.Config
}

func (r RPCLogger) LogRequest(_ context.Context, req *jrpc2.Request) {
	r.c.Logger().Debug().Msgf("Incoming JSON-RPC request. Method=%s. ID=%s. Is notification=%v.",
		req.Method(),
		req.ID(),
		req.IsNotification())
}

func (r RPCLogger) LogResponse(_ context.Context, rsp *jrpc2.Response) {
	logger := r.c.Logger()
	if rsp.Error() != nil {
		logger.Debug().Err(rsp.Error()).Str("id", rsp.ID()).Msg("Outgoing JSON-RPC response error")
		return
	}
	logger.Debug().Msgf("Outgoing JSON-RPC response. ID=%s", rsp.ID())
}
