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
	"github.com/spf13/cobra"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/infrastructure/database"
)

func newMigrateCmd(c *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables the findings engine reads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := database.Open(cmd.Context(), c)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err = database.EnsureSchema(cmd.Context(), pool); err != nil {
				return err
			}
			c.Logger().Info().Str("method", "migrate").Msg("schema is up to date")
			return nil
		},
	}
}
