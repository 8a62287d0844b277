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
	"github.com/snyk/findings-engine/domain/findings"
)

// Delta returns the vulnerability ids only present in current (new) and only present in previous (fixed),
// each in the order of its run. An empty previous makes every current id new.
func Delta(previous, current *findings.Merged) (newIDs, fixedIDs []string) {
	newIDs = []string{}
	fixedIDs = []string{}
	for _, id := range current.Keys() {
		if _, found := previous.Get(id); !found {
			newIDs = append(newIDs, id)
		}
	}
	for _, id := range previous.Keys() {
		if _, found := current.Get(id); !found {
			fixedIDs = append(fixedIDs, id)
		}
	}
	return newIDs, fixedIDs
}
