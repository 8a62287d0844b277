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
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ConfigOption is a function that configures a Config instance
type ConfigOption func(*Config)

// WithFs replaces the file system used to read the config file and the weakness catalog
func WithFs(fs afero.Fs) ConfigOption {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithLogger replaces the console logger
func WithLogger(logger *zerolog.Logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}
