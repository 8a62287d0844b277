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

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/domain/findings"
	"github.com/snyk/findings-engine/domain/stats"
	"github.com/snyk/findings-engine/internal/types"
)

type mergeFunc func(output types.VulnFinderOutput) (*findings.Merged, error)

func mergeWorkspace(name string) mergeFunc {
	return func(output types.VulnFinderOutput) (*findings.Merged, error) {
		ws, err := workspace(output.Workspaces, name)
		if err != nil {
			return nil, err
		}
		return findings.Merge(ws.Vulnerabilities), nil
	}
}

func mergeAll(output types.VulnFinderOutput) (*findings.Merged, error) {
	return findings.MergeWorkspaces(output), nil
}

// WorkspaceStats computes the statistics of one workspace against the same workspace of the previous analysis.
func (s *FindingsService) WorkspaceStats(ctx context.Context, req Request) (types.AnalysisStats, error) {
	ctx, span := s.transaction(ctx, "stats/workspace")
	defer s.instrumentor.Finish(span)
	return s.stats(ctx, req, mergeWorkspace(req.Workspace))
}

// ProjectStats computes the statistics of all workspaces of an analysis.
func (s *FindingsService) ProjectStats(ctx context.Context, req Request) (types.AnalysisStats, error) {
	ctx, span := s.transaction(ctx, "stats/project")
	defer s.instrumentor.Finish(span)
	return s.stats(ctx, req, mergeAll)
}

func (s *FindingsService) stats(ctx context.Context, req Request, merge mergeFunc) (types.AnalysisStats, error) {
	if err := s.authorize(ctx, req); err != nil {
		return types.AnalysisStats{}, err
	}
	current, err := s.merged(ctx, req.AnalysisID, merge)
	if err != nil {
		return types.AnalysisStats{}, err
	}
	previous, err := s.previous(ctx, req.AnalysisID, merge)
	if err != nil {
		return types.AnalysisStats{}, err
	}
	return s.aggregator.Compute(current, previous), nil
}

func (s *FindingsService) merged(ctx context.Context, analysisID uuid.UUID, merge mergeFunc) (*findings.Merged, error) {
	var output types.VulnFinderOutput
	if err := s.load(ctx, analysisID, types.PluginVulnFinder, &output); err != nil {
		return nil, err
	}
	return merge(output)
}

// previous merges the analysis run before analysisID. It returns nil when there is none or it has no usable
// result, including when the workspace did not exist yet.
func (s *FindingsService) previous(ctx context.Context, analysisID uuid.UUID, merge mergeFunc) (*findings.Merged, error) {
	logger := s.logger(ctx).With().Str("method", "previous").Str("analysis", analysisID.String()).Logger()
	analysis, err := s.results.Analysis(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	prev, err := s.results.PreviousAnalysis(ctx, analysis.ProjectID, analysis.CreatedOn)
	if absent(err) {
		logger.Debug().Msg("no previous analysis")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	merged, err := s.merged(ctx, prev.ID, merge)
	if absent(err) || errors.Is(err, types.ErrUnknownWorkspace) {
		logger.Debug().Err(err).Str("previous", prev.ID.String()).Msg("previous analysis not comparable")
		return nil, nil
	}
	return merged, err
}

func (s *FindingsService) Weekly(ctx context.Context, req WeeklyRequest) ([]types.WeekBucket, error) {
	ctx, span := s.transaction(ctx, "stats/weekly")
	defer s.instrumentor.Finish(span)
	logger := s.logger(ctx).With().Str("method", "Weekly").Str("project", req.ProjectID.String()).Logger()

	if err := s.authorize(ctx, req.Request); err != nil {
		return nil, err
	}
	since := req.Since
	if since.IsZero() {
		since = s.now().Add(-defaultWeeklyWindow)
	}
	analyses, err := s.results.ProjectAnalyses(ctx, req.ProjectID, since)
	if err != nil {
		return nil, err
	}
	merge := mergeAll
	if req.Workspace != "" {
		merge = mergeWorkspace(req.Workspace)
	}
	runs := make([]stats.Run, 0, len(analyses))
	for _, analysis := range analyses {
		merged, err := s.merged(ctx, analysis.ID, merge)
		if absent(err) || errors.Is(err, types.ErrUnknownWorkspace) {
			logger.Debug().Err(err).Str("analysis", analysis.ID.String()).Msg("skipping analysis")
			continue
		}
		if err != nil {
			return nil, err
		}
		runs = append(runs, stats.Run{CreatedOn: analysis.CreatedOn, Merged: merged})
	}
	return s.aggregator.Weekly(runs), nil
}
