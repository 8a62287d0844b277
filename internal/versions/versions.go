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

// Package versions evaluates version intervals and affected-version constraint expressions under semantic version ordering.
package versions

import (
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/internal/types"
)

// Any is the constraint matching every version.
const Any = "*"

// Satisfying returns the versions of all that lie inside the interval, in input order.
// A nil bound is unbounded on that side. Candidates that do not parse are skipped.
func Satisfying(all []string, lower, upper *string, lowerInclusive, upperInclusive bool) ([]string, error) {
	b, err := newBound(lower, upper, lowerInclusive, upperInclusive)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(all))
	for _, candidate := range all {
		v, parseErr := version.NewVersion(candidate)
		if parseErr != nil {
			continue
		}
		if b.contains(v) {
			result = append(result, candidate)
		}
	}
	return result, nil
}

// SatisfyingConstraint returns the versions of all matching expr, in input order.
// expr is a list of disjuncts joined by "||"; each disjunct is either "*" or whitespace separated comparators
// (">=1.0.0 <2.0.0", "=1.2.3" or a bare "1.2.3").
func SatisfyingConstraint(all []string, expr string) ([]string, error) {
	c, err := ParseConstraint(expr)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(all))
	for _, candidate := range all {
		v, parseErr := version.NewVersion(candidate)
		if parseErr != nil {
			continue
		}
		if c.Check(v) {
			result = append(result, candidate)
		}
	}
	return result, nil
}

// Matches reports whether a single version satisfies expr. Unparseable versions never match.
func Matches(v string, expr string) (bool, error) {
	matching, err := SatisfyingConstraint([]string{v}, expr)
	if err != nil {
		return false, err
	}
	return len(matching) == 1, nil
}

// Compare is a total order over version strings: valid versions compare semantically and sort before
// malformed ones, malformed ones compare lexically.
func Compare(a, b string) int {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

type comparator struct {
	op string
	v  *version.Version
}

func (c comparator) check(v *version.Version) bool {
	cmp := v.Compare(c.v)
	switch c.op {
	case ">=":
		return cmp >= 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	case "<":
		return cmp < 0
	default:
		return cmp == 0
	}
}

// Constraint is a parsed affected-versions expression.
type Constraint struct {
	disjuncts [][]comparator
	any       bool
}

func (c *Constraint) Check(v *version.Version) bool {
	if c.any {
		return true
	}
	for _, conjunction := range c.disjuncts {
		ok := true
		for _, cmp := range conjunction {
			if !cmp.check(v) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

var operators = []string{">=", "<=", ">", "<", "="}

func ParseConstraint(expr string) (*Constraint, error) {
	c := &Constraint{}
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.Wrap(types.ErrInvalidVersion, "empty constraint")
	}
	for _, part := range strings.Split(expr, "||") {
		part = strings.TrimSpace(part)
		if part == Any {
			c.any = true
			continue
		}
		fields := normalizeFields(strings.Fields(part))
		if len(fields) == 0 {
			return nil, errors.Wrapf(types.ErrInvalidVersion, "empty disjunct in %q", expr)
		}
		conjunction := make([]comparator, 0, len(fields))
		for _, field := range fields {
			cmp, err := parseComparator(field)
			if err != nil {
				return nil, err
			}
			conjunction = append(conjunction, cmp)
		}
		c.disjuncts = append(c.disjuncts, conjunction)
	}
	return c, nil
}

// normalizeFields joins an operator written apart from its version (">= 1.0.0") with the version.
func normalizeFields(fields []string) []string {
	result := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if isOperator(f) && i+1 < len(fields) {
			f += fields[i+1]
			i++
		}
		result = append(result, f)
	}
	return result
}

func isOperator(s string) bool {
	for _, op := range operators {
		if s == op {
			return true
		}
	}
	return false
}

func parseComparator(field string) (comparator, error) {
	op := "="
	for _, candidate := range operators {
		if strings.HasPrefix(field, candidate) {
			op = candidate
			field = strings.TrimPrefix(field, candidate)
			break
		}
	}
	v, err := version.NewVersion(field)
	if err != nil {
		return comparator{}, errors.Wrapf(types.ErrInvalidVersion, "%q: %v", field, err)
	}
	return comparator{op: op, v: v}, nil
}

type bound struct {
	lower, upper                   *version.Version
	lowerInclusive, upperInclusive bool
}

func newBound(lower, upper *string, lowerInclusive, upperInclusive bool) (*bound, error) {
	b := &bound{lowerInclusive: lowerInclusive, upperInclusive: upperInclusive}
	var err error
	if lower != nil {
		if b.lower, err = version.NewVersion(*lower); err != nil {
			return nil, errors.Wrapf(types.ErrInvalidVersion, "lower bound %q", *lower)
		}
	}
	if upper != nil {
		if b.upper, err = version.NewVersion(*upper); err != nil {
			return nil, errors.Wrapf(types.ErrInvalidVersion, "upper bound %q", *upper)
		}
	}
	return b, nil
}

func (b *bound) contains(v *version.Version) bool {
	if b.lower != nil {
		c := v.Compare(b.lower)
		if c < 0 || (c == 0 && !b.lowerInclusive) {
			return false
		}
	}
	if b.upper != nil {
		c := v.Compare(b.upper)
		if c > 0 || (c == 0 && !b.upperInclusive) {
			return false
		}
	}
	return true
}
