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
	"context"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/domain/observability/performance"
)

// instrumentor creates Sentry spans while error reporting is enabled and NoopSpans otherwise.
type instrumentor struct {
	c *config.Config
}

func NewInstrumentor(c *config.Config) performance.Instrumentor {
	initializeSentry(c)
	return &instrumentor{c: c}
}

func (i *instrumentor) Finish(span performance.Span) {
	span.Finish()
}

func (i *instrumentor) StartSpan(ctx context.Context, operation string) performance.Span {
	s := i.CreateSpan("", operation)
	s.StartSpan(ctx)
	return s
}

func (i *instrumentor) NewTransaction(ctx context.Context, txName string, operation string) performance.Span {
	s := i.CreateSpan(txName, operation)
	s.StartSpan(ctx)
	return s
}

func (i *instrumentor) CreateSpan(txName string, operation string) performance.Span {
	var s performance.Span
	if i.c.IsErrorReportingEnabled() && i.c.SentryDSN() != "" {
		s = &span{c: i.c, operation: operation}
	} else {
		s = &performance.NoopSpan{Operation: operation}
	}
	s.SetTransactionName(txName)
	return s
}
