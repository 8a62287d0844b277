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

package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/application/di"
)

func newServeCmd(c *config.Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON-RPC API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := c.Logger().With().Str("method", "serve").Logger()
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := di.Init(ctx); err != nil {
				return err
			}
			defer di.Close()
			defer di.ErrorReporter().FlushErrorReporting()

			logger.Info().Str("version", config.Version).Msg("findings engine starting")
			return di.NewHTTPServer(c).Serve(ctx)
		},
	}
	flags := cmd.Flags()
	flags.String(keyListen, config.DefaultListenAddress, "address to listen on")
	flags.String(keyDatabaseURL, "", "postgres connection string")
	flags.Bool(keyReportErrors, false, "enables error reporting")
	flags.String(keySentryDSN, "", "sentry DSN errors are reported to")
	flags.String(keyWeaknessCatalog, "", "YAML file with CWE records, used before the database")
	bindFlags(v, flags)
	return cmd
}
