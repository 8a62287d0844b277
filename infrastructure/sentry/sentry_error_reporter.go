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
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/domain/observability/error_reporting"
)

// A Sentry implementation of our error reporter that honours the error reporting switch of the configuration
type sentryErrorReporter struct {
	c *config.Config
}

func NewSentryErrorReporter(c *config.Config) error_reporting.ErrorReporter {
	initializeSentry(c)
	return &sentryErrorReporter{c: c}
}

func (s *sentryErrorReporter) FlushErrorReporting() {
	// Set the timeout to the maximum duration the program can afford to wait
	sentry.Flush(2 * time.Second)
}

func (s *sentryErrorReporter) CaptureError(err error) bool {
	logger := s.c.Logger().With().Str("method", "CaptureError").Logger()
	if !s.c.IsErrorReportingEnabled() {
		logger.Debug().Err(err).Msg("error reporting disabled, not sending")
		return false
	}
	eventId := sentry.CaptureException(err)
	if eventId == nil {
		logger.Warn().Err(err).Msg("error was not sent to Sentry")
		return false
	}
	logger.Info().Err(err).Msgf("Sent error to Sentry (ID: %v)", *eventId)
	return true
}
