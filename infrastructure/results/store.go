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

// Package results reads analyses and the plugin results persisted for them.
package results

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/snyk/findings-engine/internal/types"
)

//go:generate go tool github.com/golang/mock/mockgen -source=store.go -destination=mock_results/store_mock.go -package=mock_results

// Store gives access to analyses and their plugin results. LatestResult returns an error wrapping
// types.ErrPluginResultNotAvailable when the plugin has not stored a result yet; the analysis lookups return
// types.ErrNotFound.
type Store interface {
	LatestResult(ctx context.Context, analysisID uuid.UUID, plugin types.Plugin) (*types.AnalysisResult, error)
	Analysis(ctx context.Context, analysisID uuid.UUID) (*types.Analysis, error)
	PreviousAnalysis(ctx context.Context, projectID uuid.UUID, before time.Time) (*types.Analysis, error)
	ProjectAnalyses(ctx context.Context, projectID uuid.UUID, since time.Time) ([]types.Analysis, error)
}

// PayloadStore fetches result payloads offloaded from the database to object storage.
type PayloadStore interface {
	Payload(ctx context.Context, key string) ([]byte, error)
}
