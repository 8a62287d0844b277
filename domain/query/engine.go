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

// Package query filters, sorts and pages the list views. Every collection declares the filters, search fields and
// sort keys it supports; everything else in a request is ignored.
package query

import (
	"math"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/internal/types"
	"github.com/snyk/findings-engine/internal/util"
)

type Predicate[T any] func(T) bool

// Compare orders two items ascending, returning <0, 0 or >0.
type Compare[T any] func(a, b T) int

type Collection[T any] struct {
	Name string
	// Search returns the fields matched by the search key.
	Search         func(T) []string
	Filters        map[string]Predicate[T]
	Sorts          map[string]Compare[T]
	DefaultSort    string
	DefaultPerPage int
	MaxPerPage     int
}

// FilterNames returns the names of all filters of the collection, sorted.
func (coll *Collection[T]) FilterNames() []string {
	names := make([]string, 0, len(coll.Filters))
	for name := range coll.Filters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run applies search and active filters, counts the facets, sorts and slices the requested page.
func Run[T any](c *config.Config, coll *Collection[T], items []T, params types.QueryParams) types.Page[T] {
	logger := c.Logger().With().Str("method", "query.Run").Str("collection", coll.Name).Logger()

	active := activeFilters(coll, params.ActiveFilters)
	if len(active) != len(params.ActiveFilters) {
		logger.Debug().Strs("activeFilters", params.ActiveFilters).Msg("ignoring unknown or repeated filters")
	}

	search := strings.ToLower(strings.TrimSpace(params.SearchKey))
	matching := make([]T, 0, len(items))
	for _, item := range items {
		if matchesSearch(coll, item, search) && matchesAll(coll, item, active) {
			matching = append(matching, item)
		}
	}

	filterCount := map[string]int{}
	if len(items) <= c.MaxFacetInput() {
		isActive := make(map[string]bool, len(active))
		for _, name := range active {
			isActive[name] = true
		}
		for name, predicate := range coll.Filters {
			if isActive[name] {
				continue
			}
			count := 0
			for _, item := range matching {
				if predicate(item) {
					count++
				}
			}
			filterCount[name] = count
		}
	} else {
		logger.Info().Int("entries", len(items)).Int("max", c.MaxFacetInput()).Msg("too many entries, skipping filter counts")
	}

	sortItems(coll, matching, params.SortBy, params.SortDirection)

	perPage := params.EntriesPerPage
	if perPage <= 0 {
		perPage = coll.DefaultPerPage
	}
	perPage = util.Clamp(perPage, 1, coll.MaxPerPage)
	page := util.Max(params.Page, 0)

	start := len(matching)
	if page <= len(matching)/perPage {
		start = page * perPage
	}
	end := util.Min(start+perPage, len(matching))
	data := make([]T, end-start)
	copy(data, matching[start:end])

	return types.Page[T]{
		Data:           data,
		Page:           page,
		EntryCount:     len(data),
		EntriesPerPage: perPage,
		TotalEntries:   len(items),
		TotalPages:     int(math.Ceil(float64(len(matching)) / float64(perPage))),
		MatchingCount:  len(matching),
		FilterCount:    filterCount,
	}
}

func activeFilters[T any](coll *Collection[T], requested []string) []string {
	var active []string
	seen := map[string]bool{}
	for _, name := range requested {
		if _, known := coll.Filters[name]; !known || seen[name] {
			continue
		}
		seen[name] = true
		active = append(active, name)
	}
	return active
}

func matchesSearch[T any](coll *Collection[T], item T, search string) bool {
	if search == "" || coll.Search == nil {
		return true
	}
	for _, field := range coll.Search(item) {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchesAll[T any](coll *Collection[T], item T, active []string) bool {
	for _, name := range active {
		if !coll.Filters[name](item) {
			return false
		}
	}
	return true
}

func sortItems[T any](coll *Collection[T], items []T, sortBy string, direction types.SortDirection) {
	compare, ok := coll.Sorts[sortBy]
	if !ok {
		compare = coll.Sorts[coll.DefaultSort]
	}
	if compare == nil {
		return
	}
	asc := strings.EqualFold(string(direction), string(types.SortAsc))
	slices.SortStableFunc(items, func(a, b T) int {
		if asc {
			return compare(a, b)
		}
		return compare(b, a)
	})
}
