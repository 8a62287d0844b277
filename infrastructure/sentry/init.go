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

package sentry

import (
	"sync/atomic"

	"github.com/getsentry/sentry-go"

	"github.com/snyk/findings-engine/application/config"
)

var initialized atomic.Bool

func initializeSentry(c *config.Config) {
	if !initialized.CompareAndSwap(false, true) {
		return
	}
	logger := c.Logger().With().Str("method", "initializeSentry").Logger()
	if c.SentryDSN() == "" {
		logger.Info().Msg("no Sentry DSN configured, errors are only logged")
		return
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              c.SentryDSN(),
		Environment:      sentryEnvironment(c),
		Release:          config.AppName + "@" + config.Version,
		Debug:            config.IsDevelopment(),
		BeforeSend:       beforeSend,
		EnableTracing:    true,
		TracesSampleRate: 1,
		AttachStacktrace: true,
	})
	if err != nil {
		logger.Error().Err(err).Msg("cannot initialize error reporting")
	} else {
		logger.Info().Msg("Error reporting initialized")
	}
}

func beforeSend(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if config.CurrentConfig().IsErrorReportingEnabled() {
		return event
	}
	return nil
}

func sentryEnvironment(c *config.Config) string {
	if c.Environment() != "" {
		return c.Environment()
	}
	if config.IsDevelopment() {
		return "development"
	}
	return "production"
}
