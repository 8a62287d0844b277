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

package di

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snyk/findings-engine/application/config"
	er "github.com/snyk/findings-engine/domain/observability/error_reporting"
	"github.com/snyk/findings-engine/domain/observability/performance"
	"github.com/snyk/findings-engine/infrastructure/database"
)

// TestInit wires every component against db with test reporting and instrumentation.
func TestInit(t *testing.T, db database.Querier) {
	t.Helper()
	initMutex.Lock()
	defer initMutex.Unlock()
	c := config.CurrentConfig()
	pool = nil
	errorReporter = er.NewTestErrorReporter()
	instrumentor = performance.NewTestInstrumentor()
	require.NoError(t, initStores(c, db, nil))
	require.NoError(t, initDomain(c))
	initApplication(c)
}
