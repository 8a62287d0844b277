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
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// fileSettings is the on-disk shape of the config file. Zero values leave the current setting untouched.
type fileSettings struct {
	LogLevel        string               `yaml:"log_level"`
	LogPath         string               `yaml:"log_path"`
	ListenAddress   string               `yaml:"listen_address"`
	DatabaseURL     string               `yaml:"database_url"`
	ObjectStore     *ObjectStoreSettings `yaml:"object_store"`
	ErrorReporting  *bool                `yaml:"error_reporting"`
	SentryDSN       string               `yaml:"sentry_dsn"`
	Environment     string               `yaml:"environment"`
	ResultCacheTTL  string               `yaml:"result_cache_ttl"`
	PackageCacheTTL string               `yaml:"package_cache_ttl"`
	WeaknessCatalog string               `yaml:"weakness_catalog"`
	MaxFacetInput   int                  `yaml:"max_facet_input"`
}

// DefaultConfigFile is config.yaml in the XDG config directory, e.g. ~/.config/findings-engine/config.yaml.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadFile applies the settings of the config file. A missing file is not an error.
func (c *Config) LoadFile() error {
	path := c.ConfigFile()
	logger := c.Logger().With().Str("method", "LoadFile").Str("path", path).Logger()
	if path == "" {
		return nil
	}
	content, err := afero.ReadFile(c.Fs(), path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug().Msg("no config file")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "couldn't read config file")
	}

	var settings fileSettings
	if err = yaml.Unmarshal(content, &settings); err != nil {
		return errors.Wrapf(err, "couldn't parse config file %s", path)
	}
	if err = c.apply(settings); err != nil {
		return errors.Wrapf(err, "invalid config file %s", path)
	}
	logger.Debug().Msg("config file loaded")
	return nil
}

func (c *Config) apply(s fileSettings) error {
	if s.LogLevel != "" {
		c.SetLogLevel(s.LogLevel)
	}
	if s.LogPath != "" {
		c.SetLogPath(s.LogPath)
	}
	if s.ListenAddress != "" {
		c.SetListenAddress(s.ListenAddress)
	}
	if s.DatabaseURL != "" {
		c.SetDatabaseURL(s.DatabaseURL)
	}
	if s.ObjectStore != nil {
		c.SetObjectStore(*s.ObjectStore)
	}
	if s.ErrorReporting != nil {
		c.SetErrorReportingEnabled(*s.ErrorReporting)
	}
	if s.SentryDSN != "" {
		c.SetSentryDSN(s.SentryDSN)
	}
	if s.Environment != "" {
		c.SetEnvironment(s.Environment)
	}
	if s.ResultCacheTTL != "" {
		ttl, err := time.ParseDuration(s.ResultCacheTTL)
		if err != nil {
			return errors.Wrap(err, "result_cache_ttl")
		}
		c.SetResultCacheTTL(ttl)
	}
	if s.PackageCacheTTL != "" {
		ttl, err := time.ParseDuration(s.PackageCacheTTL)
		if err != nil {
			return errors.Wrap(err, "package_cache_ttl")
		}
		c.SetPackageCacheTTL(ttl)
	}
	if s.WeaknessCatalog != "" {
		c.SetWeaknessCatalogPath(s.WeaknessCatalog)
	}
	if s.MaxFacetInput > 0 {
		c.SetMaxFacetInput(s.MaxFacetInput)
	}
	return nil
}
