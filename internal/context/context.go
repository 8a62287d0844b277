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

// Package context carries request scoped values through the findings operations.
package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Caller string

func (c Caller) String() string {
	return string(c)
}

const (
	RPC Caller = "RPC"
	CLI Caller = "CLI"
)

type callerKeyType int

var callerKey callerKeyType

func NewContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok
}

type requestIDKeyType int

var requestIDKey requestIDKeyType

// NewContextWithRequestID returns a context carrying a fresh request id, unless ctx already has one.
func NewContextWithRequestID(ctx context.Context) context.Context {
	if _, ok := RequestIDFromContext(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, uuid.NewString())
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

type loggerKeyType string

func (l loggerKeyType) String() string {
	return string(l)
}

var loggerKey loggerKeyType

func NewContextWithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	l := ctx.Value(loggerKey)
	if l == nil {
		l = log.Logger
	}
	returnLogger, ok := l.(*zerolog.Logger)
	if !ok {
		returnLogger = &log.Logger
	}
	return returnLogger
}

// Clone copies the request values of ctx onto newCtx, e.g. to detach work from a cancelled request.
func Clone(ctx, newCtx context.Context) context.Context {
	newCtx = NewContextWithLogger(newCtx, LoggerFromContext(ctx))
	if caller, found := CallerFromContext(ctx); found {
		newCtx = NewContextWithCaller(newCtx, caller)
	}
	if id, found := RequestIDFromContext(ctx); found {
		newCtx = context.WithValue(newCtx, requestIDKey, id)
	}
	return newCtx
}
