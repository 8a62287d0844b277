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

package testutil

import (
	"os"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/snyk/findings-engine/application/config"
)

const (
	integTestEnvVar = "INTEG_TESTS"
)

func IntegTest(t *testing.T) {
	t.Helper()
	if os.Getenv(integTestEnvVar) == "" {
		t.Skipf("%s is not set", integTestEnvVar)
	}
	UnitTest(t)
}

// UnitTest installs a fresh config with an in-memory file system and a logger writing to the test output.
func UnitTest(t *testing.T) *config.Config {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger()
	c := config.New(config.WithFs(afero.NewMemMapFs()), config.WithLogger(&logger))
	c.SetErrorReportingEnabled(false)
	c.SetConfigFile("")
	config.SetCurrentConfig(c)
	return c
}

func NotOnWindows(t *testing.T, reason string) {
	t.Helper()
	if //goland:noinspection GoBoolExpressions
	runtime.GOOS == "windows" {
		t.Skipf("Not on windows, because %s", reason)
	}
}
