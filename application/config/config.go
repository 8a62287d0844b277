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

// Package config implements the configuration functionality
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	AppName                = "findings-engine"
	DefaultListenAddress   = "localhost:8080"
	DefaultResultCacheTTL  = 12 * time.Hour
	DefaultPackageCacheTTL = time.Hour
	DefaultMaxFacetInput   = 10000
	logLevelEnvVar         = "FINDINGS_LOG_LEVEL"
)

var (
	Version       = "SNAPSHOT"
	Development   = "true"
	currentConfig *Config
	mutex         = &sync.Mutex{}
)

// ObjectStoreSettings points to the bucket holding offloaded analysis result payloads.
type ObjectStoreSettings struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

func (o ObjectStoreSettings) Enabled() bool {
	return o.Endpoint != "" && o.Bucket != ""
}

type Config struct {
	configFile              string
	logPath                 string
	logFile                 *os.File
	listenAddress           string
	databaseURL             string
	objectStore             ObjectStoreSettings
	isErrorReportingEnabled bool
	sentryDSN               string
	environment             string
	resultCacheTTL          time.Duration
	packageCacheTTL         time.Duration
	weaknessCatalogPath     string
	maxFacetInput           int
	fs                      afero.Fs
	logger                  *zerolog.Logger
	m                       sync.RWMutex
}

func CurrentConfig() *Config {
	mutex.Lock()
	defer mutex.Unlock()
	if currentConfig == nil {
		currentConfig = New()
	}
	return currentConfig
}

func SetCurrentConfig(config *Config) {
	mutex.Lock()
	defer mutex.Unlock()
	currentConfig = config
}

func IsDevelopment() bool {
	parseBool, _ := strconv.ParseBool(Development)
	return parseBool
}

// New creates a configuration object with default values
func New(opts ...ConfigOption) *Config {
	c := &Config{}
	c.fs = afero.NewOsFs()
	c.listenAddress = DefaultListenAddress
	c.isErrorReportingEnabled = true
	c.environment = "production"
	if IsDevelopment() {
		c.environment = "development"
	}
	c.resultCacheTTL = DefaultResultCacheTTL
	c.packageCacheTTL = DefaultPackageCacheTTL
	c.maxFacetInput = DefaultMaxFacetInput
	c.configFile = DefaultConfigFile()

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		logger := zerolog.New(c.getConsoleWriter(os.Stderr)).With().Timestamp().Str("method", "").Logger()
		c.logger = &logger
	}
	return c
}

func (c *Config) ConfigureLogging() {
	var logLevel zerolog.Level
	var err error

	logLevel, err = zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Can't set log level from flag. Setting to default (=info)")
		logLevel = zerolog.InfoLevel
	}

	// env var overrides flag
	envLogLevel := os.Getenv(logLevelEnvVar)
	if envLogLevel != "" {
		envLevel, levelErr := zerolog.ParseLevel(envLogLevel)
		if levelErr == nil {
			_, _ = fmt.Fprintln(os.Stderr, "Setting log level from environment variable ("+logLevelEnvVar+") \""+envLogLevel+"\"")
			logLevel = envLevel
		}
	}
	c.SetLogLevel(logLevel.String())

	writers := []io.Writer{os.Stderr}
	if c.LogPath() != "" {
		c.logFile, err = os.OpenFile(c.LogPath(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "couldn't open logfile")
		} else {
			_, _ = fmt.Fprintln(os.Stderr, fmt.Sprint("adding file logger to file ", c.logPath))
			writers = append(writers, c.logFile)
		}
	}

	c.m.Lock()
	defer c.m.Unlock()

	writer := c.getConsoleWriter(zerolog.MultiLevelWriter(writers...))
	logger := zerolog.New(writer).With().Timestamp().Str("method", "").Logger().Level(logLevel)
	c.logger = &logger
}

func (c *Config) getConsoleWriter(writer io.Writer) zerolog.ConsoleWriter {
	w := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = writer
		w.NoColor = true
		w.TimeFormat = time.RFC3339Nano
		w.PartsOrder = []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"method",
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		}
		w.FieldsExclude = []string{"method"}
	})
	return w
}

// DisableLoggingToFile closes the open log file
func (c *Config) DisableLoggingToFile() {
	c.Logger().Info().Msgf("Disabling file logging to %v", c.logPath)
	c.logPath = ""
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}

func (c *Config) SetLogLevel(level string) {
	c.m.RLock()
	defer c.m.RUnlock()
	parseLevel, err := zerolog.ParseLevel(level)
	if err == nil {
		zerolog.SetGlobalLevel(parseLevel)
	}
}

func (c *Config) LogLevel() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return zerolog.GlobalLevel().String()
}

func (c *Config) Logger() *zerolog.Logger {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logger
}

func (c *Config) LogPath() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logPath
}

func (c *Config) SetLogPath(logPath string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.logPath = logPath
}

func (c *Config) ConfigFile() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.configFile
}

func (c *Config) SetConfigFile(configFile string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.configFile = configFile
}

func (c *Config) Fs() afero.Fs {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.fs
}

func (c *Config) ListenAddress() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.listenAddress
}

func (c *Config) SetListenAddress(address string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.listenAddress = address
}

func (c *Config) DatabaseURL() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.databaseURL
}

func (c *Config) SetDatabaseURL(url string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.databaseURL = url
}

func (c *Config) ObjectStore() ObjectStoreSettings {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.objectStore
}

func (c *Config) SetObjectStore(settings ObjectStoreSettings) {
	c.m.Lock()
	defer c.m.Unlock()
	c.objectStore = settings
}

func (c *Config) IsErrorReportingEnabled() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.isErrorReportingEnabled
}

func (c *Config) SetErrorReportingEnabled(enabled bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.isErrorReportingEnabled = enabled
}

func (c *Config) SentryDSN() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.sentryDSN
}

func (c *Config) SetSentryDSN(dsn string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.sentryDSN = dsn
}

func (c *Config) Environment() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.environment
}

func (c *Config) SetEnvironment(environment string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.environment = environment
}

func (c *Config) ResultCacheTTL() time.Duration {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.resultCacheTTL
}

func (c *Config) SetResultCacheTTL(ttl time.Duration) {
	c.m.Lock()
	defer c.m.Unlock()
	c.resultCacheTTL = ttl
}

func (c *Config) PackageCacheTTL() time.Duration {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.packageCacheTTL
}

func (c *Config) SetPackageCacheTTL(ttl time.Duration) {
	c.m.Lock()
	defer c.m.Unlock()
	c.packageCacheTTL = ttl
}

func (c *Config) WeaknessCatalogPath() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.weaknessCatalogPath
}

func (c *Config) SetWeaknessCatalogPath(path string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.weaknessCatalogPath = path
}

// MaxFacetInput bounds the collection size for which facet counts are computed.
func (c *Config) MaxFacetInput() int {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.maxFacetInput
}

func (c *Config) SetMaxFacetInput(max int) {
	c.m.Lock()
	defer c.m.Unlock()
	c.maxFacetInput = max
}
