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

// Package cli holds the findings-engine commands.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/snyk/findings-engine/application/config"
)

const envPrefix = "FINDINGS"

// flag and viper keys
const (
	keyConfig          = "config"
	keyEnvFile         = "env-file"
	keyLogLevel        = "log-level"
	keyLogPath         = "log-path"
	keyListen          = "listen"
	keyDatabaseURL     = "database-url"
	keyReportErrors    = "report-errors"
	keySentryDSN       = "sentry-dsn"
	keyWeaknessCatalog = "weakness-catalog"
)

// NewRootCmd builds the command tree operating on c. Settings are applied in the order config file,
// environment (FINDINGS_*), flags; later sources win.
func NewRootCmd(c *config.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Serves merged vulnerability findings, reports and statistics of analyses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configure(c, v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(keyConfig, "c", c.ConfigFile(), "path of the YAML config file")
	flags.StringSlice(keyEnvFile, []string{".env"}, "dotenv files to load before reading the environment")
	flags.StringP(keyLogLevel, "l", "info", "sets the log-level to <trace|debug|info|warn|error|fatal>")
	flags.String(keyLogPath, "", "directory to write the log file to, stderr when empty")
	bindFlags(v, flags)

	rootCmd.AddCommand(newServeCmd(c, v))
	rootCmd.AddCommand(newMigrateCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

// configure loads the dotenv and config files, then applies environment and flag overrides.
func configure(c *config.Config, v *viper.Viper) error {
	c.LoadEnvFiles(v.GetStringSlice(keyEnvFile)...)
	c.SetConfigFile(v.GetString(keyConfig))
	if err := c.LoadFile(); err != nil {
		return err
	}
	if v.IsSet(keyLogLevel) {
		c.SetLogLevel(v.GetString(keyLogLevel))
	}
	if v.IsSet(keyLogPath) {
		c.SetLogPath(v.GetString(keyLogPath))
	}
	if v.IsSet(keyListen) {
		c.SetListenAddress(v.GetString(keyListen))
	}
	if v.IsSet(keyDatabaseURL) {
		c.SetDatabaseURL(v.GetString(keyDatabaseURL))
	}
	if v.IsSet(keyReportErrors) {
		c.SetErrorReportingEnabled(v.GetBool(keyReportErrors))
	}
	if v.IsSet(keySentryDSN) {
		c.SetSentryDSN(v.GetString(keySentryDSN))
	}
	if v.IsSet(keyWeaknessCatalog) {
		c.SetWeaknessCatalogPath(v.GetString(keyWeaknessCatalog))
	}
	c.ConfigureLogging()
	return nil
}
