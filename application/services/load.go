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
	"encoding/json"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/snyk/findings-engine/internal/types"
)

const minSuggestionSimilarity = 0.5

// load decodes the latest result of plugin into out. A result whose analysis info does not report success
// yields a *types.PluginFailedError.
func (s *FindingsService) load(ctx context.Context, analysisID uuid.UUID, plugin types.Plugin, out any) error {
	result, err := s.results.LatestResult(ctx, analysisID, plugin)
	if err != nil {
		return err
	}
	var envelope types.ResultEnvelope
	if err = json.Unmarshal(result.Result, &envelope); err != nil {
		return errors.Wrapf(err, "couldn't decode %s result of %s", plugin, analysisID)
	}
	if envelope.AnalysisInfo.Status != types.StatusSuccess {
		return &types.PluginFailedError{Plugin: plugin, Errors: envelope.AnalysisInfo.Errors}
	}
	return errors.Wrapf(json.Unmarshal(result.Result, out), "couldn't decode %s result of %s", plugin, analysisID)
}

func workspace[T any](workspaces map[string]T, name string) (T, error) {
	if ws, ok := workspaces[name]; ok {
		return ws, nil
	}
	var zero T
	return zero, &types.UnknownWorkspaceError{Workspace: name, Suggestion: closestName(maps.Keys(workspaces), name)}
}

// closestName returns the most similar name, or "" when none is similar enough.
func closestName(names []string, name string) string {
	slices.Sort(names)
	best, bestScore := "", 0.0
	for _, candidate := range names {
		score := strutil.Similarity(name, candidate, metrics.NewLevenshtein())
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < minSuggestionSimilarity {
		return ""
	}
	return best
}

// absent reports errors meaning the data is not there (yet), which optional lookups tolerate.
func absent(err error) bool {
	return errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrPluginResultNotAvailable) ||
		errors.Is(err, types.ErrPluginFailed)
}
