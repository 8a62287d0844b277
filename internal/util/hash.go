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

package util

import (
	"fmt"
	"strings"

	"github.com/spaolacci/murmur3"
)

func Murmur(s string) string {
	h := murmur3.New64()
	_, err := h.Write([]byte(s))
	if err != nil {
		return s
	}
	hash := fmt.Sprintf("%x", h.Sum64())
	return hash
}

// CacheKey hashes the parts into a single fixed width key. Parts are separated so that ("ab","c") and ("a","bc") differ.
func CacheKey(parts ...string) string {
	return Murmur(strings.Join(parts, "\x00"))
}
