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
	"encoding/json"

	"github.com/erni27/imcache"
	"github.com/google/uuid"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/internal/types"
	"github.com/snyk/findings-engine/internal/util"
)

// cachedStore keeps successful plugin results in memory. Failed results may be replaced by a rerun and always go
// to the underlying store, as do the analysis lookups.
type cachedStore struct {
	Store
	c     *config.Config
	cache *imcache.Cache[string, *types.AnalysisResult]
}

func NewCachedStore(c *config.Config, store Store) Store {
	return &cachedStore{
		Store: store,
		c:     c,
		cache: imcache.New[string, *types.AnalysisResult](
			imcache.WithDefaultExpirationOption[string, *types.AnalysisResult](c.ResultCacheTTL()),
		),
	}
}

func resultKey(analysisID uuid.UUID, plugin types.Plugin) string {
	return util.CacheKey("result", analysisID.String(), string(plugin))
}

func (s *cachedStore) LatestResult(ctx context.Context, analysisID uuid.UUID, plugin types.Plugin) (*types.AnalysisResult, error) {
	key := resultKey(analysisID, plugin)
	if result, ok := s.cache.Get(key); ok {
		return result, nil
	}
	result, err := s.Store.LatestResult(ctx, analysisID, plugin)
	if err != nil {
		return nil, err
	}
	if isSuccess(result) {
		s.cache.Set(key, result, imcache.WithDefaultExpiration())
	} else {
		s.c.Logger().Debug().Str("method", "LatestResult").Str("plugin", string(plugin)).Msg("not caching unsuccessful result")
	}
	return result, nil
}

func isSuccess(result *types.AnalysisResult) bool {
	var envelope types.ResultEnvelope
	if err := json.Unmarshal(result.Result, &envelope); err != nil {
		return false
	}
	return envelope.AnalysisInfo.Status == types.StatusSuccess
}
