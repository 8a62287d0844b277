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

package config

import (
	"os"

	"github.com/subosito/gotenv"
)

// LoadEnvFiles exports the variables of the given dotenv files. Variables already present in the environment win.
func (c *Config) LoadEnvFiles(fileNames ...string) {
	for _, fileName := range fileNames {
		c.loadEnvFile(fileName)
	}
}

func (c *Config) loadEnvFile(fileName string) {
	logger := c.Logger().With().Str("method", "loadEnvFile").Str("fileName", fileName).Logger()
	file, err := c.Fs().Open(fileName)
	if err != nil {
		logger.Debug().Msg("Couldn't load " + fileName)
		return
	}
	defer file.Close()
	env := gotenv.Parse(file)
	for k, v := range env {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			logger.Warn().Msg("Couldn't set environment variable " + k)
		}
	}
	logger.Debug().Msg("loaded.")
}
