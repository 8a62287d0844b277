/*
 * © 2022-2026 Snyk Limited All rights reserved.
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

package float

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFixed(t *testing.T) {
	testTable := []struct {
		input     float64
		precision int
		output    float64
	}{
		{1.23456789, 2, 1.23},  // normal case, 2 decimal places
		{1.23446789, 3, 1.234}, // normal case, 3 decimal places
		{1.245, 2, 1.25},       // rounding case, 2 decimal places
		{9.9968, 1, 10.0},      // CVSS v2 exploitability of AV:N/AC:L/Au:N
		{6.44298, 1, 6.4},
		{-0.25, 1, -0.3},
	}

	for _, s := range testTable {
		assert.Equal(t, s.output, ToFixed(s.input, s.precision))
	}
}

func TestCeil(t *testing.T) {
	assert.Equal(t, 6.1, Ceil(6.00696, 1))
	assert.Equal(t, 4.0, Ceil(4.0, 1))
	assert.Equal(t, 0.1, Ceil(0.01, 1))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
}
