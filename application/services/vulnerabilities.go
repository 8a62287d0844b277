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

package services

import (
	"context"

	"github.com/snyk/findings-engine/domain/findings"
	"github.com/snyk/findings-engine/domain/query"
	"github.com/snyk/findings-engine/domain/report"
	"github.com/snyk/findings-engine/internal/types"
)

func (s *FindingsService) mergedWorkspace(ctx context.Context, req Request) (*findings.Merged, error) {
	var output types.VulnFinderOutput
	if err := s.load(ctx, req.AnalysisID, types.PluginVulnFinder, &output); err != nil {
		return nil, err
	}
	ws, err := workspace(output.Workspaces, req.Workspace)
	if err != nil {
		return nil, err
	}
	return findings.Merge(ws.Vulnerabilities), nil
}

func (s *FindingsService) Vulnerabilities(ctx context.Context, req ListRequest) (types.Page[types.VulnerabilityItem], error) {
	ctx, span := s.transaction(ctx, "vulnerabilities/list")
	defer s.instrumentor.Finish(span)

	if err := s.authorize(ctx, req.Request); err != nil {
		return types.Page[types.VulnerabilityItem]{}, err
	}
	merged, err := s.mergedWorkspace(ctx, req.Request)
	if err != nil {
		return types.Page[types.VulnerabilityItem]{}, err
	}
	items := query.VulnerabilityItems(merged, s.lookup.OWASP())
	return query.Run(s.c, s.vulnerabilities, items, req.QueryParams), nil
}

func (s *FindingsService) Report(ctx context.Context, req ReportRequest) (*types.VulnerabilityDetails, error) {
	ctx, span := s.transaction(ctx, "vulnerabilities/report")
	defer s.instrumentor.Finish(span)
	return s.report(ctx, req)
}

func (s *FindingsService) report(ctx context.Context, req ReportRequest) (*types.VulnerabilityDetails, error) {
	if err := s.authorize(ctx, req.Request); err != nil {
		return nil, err
	}
	merged, err := s.mergedWorkspace(ctx, req.Request)
	if err != nil {
		return nil, err
	}
	mv, _ := merged.Get(req.VulnerabilityID)
	return s.assembler.Assemble(ctx, report.Request{
		VulnerabilityID: req.VulnerabilityID,
		Dependency:      req.Dependency,
		Version:         req.Version,
		Vulnerability:   mv,
		Patch:           s.patch(ctx, req),
	})
}

func (s *FindingsService) ReportHtml(ctx context.Context, req ReportRequest) (string, error) {
	ctx, span := s.transaction(ctx, "vulnerabilities/reportHtml")
	defer s.instrumentor.Finish(span)

	details, err := s.report(ctx, req)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(details)
}

func (s *FindingsService) patch(ctx context.Context, req ReportRequest) *types.PatchInfo {
	logger := s.logger(ctx).With().Str("method", "patch").Str("vulnerability", req.VulnerabilityID).Logger()
	var output types.PatchingOutput
	if err := s.load(ctx, req.AnalysisID, types.PluginPatching, &output); err != nil {
		logger.Debug().Err(err).Msg("no patch information")
		return nil
	}
	patch, ok := output.Workspaces[req.Workspace].Patches[req.VulnerabilityID]
	if !ok {
		return nil
	}
	return &patch
}
