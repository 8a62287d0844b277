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

package stats

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/snyk/findings-engine/domain/findings"
	"github.com/snyk/findings-engine/internal/float"
	"github.com/snyk/findings-engine/internal/types"
)

// Run is the merged result of one analysis and the time it was created.
type Run struct {
	CreatedOn time.Time
	Merged    *findings.Merged
}

// Weekly groups runs by the ISO week of their creation time, oldest week first.
func (a *Aggregator) Weekly(runs []Run) []types.WeekBucket {
	type weekKey struct{ year, week int }
	buckets := map[weekKey]*types.WeekBucket{}
	for _, run := range runs {
		year, week := run.CreatedOn.UTC().ISOWeek()
		key := weekKey{year, week}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &types.WeekBucket{Year: year, Week: week}
			buckets[key] = bucket
		}
		bucket.Analyses++
		if run.Merged == nil {
			continue
		}
		for _, mv := range run.Merged.Values() {
			switch mv.Severity.Class() {
			case types.Critical:
				bucket.Critical++
			case types.High:
				bucket.High++
			case types.Medium:
				bucket.Medium++
			case types.Low:
				bucket.Low++
			default:
				bucket.None++
			}
			bucket.SummedSeverity += mv.Severity.Severity
		}
	}

	result := make([]types.WeekBucket, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.SummedSeverity = float.ToFixed(bucket.SummedSeverity, 2)
		result = append(result, *bucket)
	}
	slices.SortFunc(result, func(x, y types.WeekBucket) int {
		if x.Year != y.Year {
			return x.Year - y.Year
		}
		return x.Week - y.Week
	})
	a.c.Logger().Debug().Str("method", "stats.Weekly").Int("runs", len(runs)).Int("weeks", len(result)).Msg("bucketed runs")
	return result
}
