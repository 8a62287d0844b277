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

	"golang.org/x/exp/maps"

	"github.com/snyk/findings-engine/domain/query"
	"github.com/snyk/findings-engine/internal/types"
)

func (s *FindingsService) Dependencies(ctx context.Context, req ListRequest) (types.Page[types.DependencyItem], error) {
	ctx, span := s.transaction(ctx, "dependencies/list")
	defer s.instrumentor.Finish(span)
	logger := s.logger(ctx).With().Str("method", "Dependencies").Str("workspace", req.Workspace).Logger()

	if err := s.authorize(ctx, req.Request); err != nil {
		return types.Page[types.DependencyItem]{}, err
	}
	var output types.SbomOutput
	if err := s.load(ctx, req.AnalysisID, types.PluginSbom, &output); err != nil {
		return types.Page[types.DependencyItem]{}, err
	}
	ws, err := workspace(output.Workspaces, req.Workspace)
	if err != nil {
		return types.Page[types.DependencyItem]{}, err
	}
	packages, err := s.packages.Packages(ctx, maps.Keys(ws.Dependencies))
	if err != nil {
		logger.Debug().Err(err).Msg("listing dependencies without registry metadata")
		packages = nil
	}
	items := query.DependencyItems(ws, packages)
	return query.Run(s.c, s.dependencies, items, req.QueryParams), nil
}

func (s *FindingsService) Licenses(ctx context.Context, req ListRequest) (types.Page[types.LicenseItem], error) {
	ctx, span := s.transaction(ctx, "licenses/list")
	defer s.instrumentor.Finish(span)
	logger := s.logger(ctx).With().Str("method", "Licenses").Str("workspace", req.Workspace).Logger()

	if err := s.authorize(ctx, req.Request); err != nil {
		return types.Page[types.LicenseItem]{}, err
	}
	var output types.LicenseOutput
	if err := s.load(ctx, req.AnalysisID, types.PluginLicenseFinder, &output); err != nil {
		return types.Page[types.LicenseItem]{}, err
	}
	ws, err := workspace(output.Workspaces, req.Workspace)
	if err != nil {
		return types.Page[types.LicenseItem]{}, err
	}
	records, err := s.licenses.Licenses(ctx, maps.Keys(ws.LicensesDepMap))
	if err != nil {
		logger.Debug().Err(err).Msg("listing licenses without catalogue data")
		records = nil
	}
	items := query.LicenseItems(ws, records)
	return query.Run(s.c, s.licenseItems, items, req.QueryParams), nil
}
