/*
 * © 2026 Snyk Limited All rights reserved.
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

package context

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaller_String(t *testing.T) {
	require.Equal(t, "RPC", RPC.String())
	require.Equal(t, "CLI", CLI.String())
}

func TestCallerFromContext(t *testing.T) {
	t.Run("returns false when caller not in context", func(t *testing.T) {
		caller, ok := CallerFromContext(context.Background())
		require.False(t, ok)
		require.Empty(t, caller)
	})

	t.Run("returns caller from context", func(t *testing.T) {
		caller, ok := CallerFromContext(NewContextWithCaller(context.Background(), RPC))
		require.True(t, ok)
		require.Equal(t, RPC, caller)
	})
}

func TestNewContextWithRequestID(t *testing.T) {
	ctx := NewContextWithRequestID(context.Background())
	id, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	require.NotEmpty(t, id)

	again, _ := RequestIDFromContext(NewContextWithRequestID(ctx))
	assert.Equal(t, id, again)
}

func TestLoggerFromContext(t *testing.T) {
	t.Run("falls back to the global logger", func(t *testing.T) {
		assert.Equal(t, &log.Logger, LoggerFromContext(context.Background()))
	})

	t.Run("returns the stored logger", func(t *testing.T) {
		logger := zerolog.Nop()
		ctx := NewContextWithLogger(context.Background(), &logger)
		assert.Same(t, &logger, LoggerFromContext(ctx))
	})
}

func TestClone(t *testing.T) {
	logger := zerolog.Nop()
	ctx := NewContextWithLogger(context.Background(), &logger)
	ctx = NewContextWithCaller(ctx, CLI)
	ctx = NewContextWithRequestID(ctx)
	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	cloned := Clone(cancelled, context.Background())

	require.NoError(t, cloned.Err())
	assert.Same(t, &logger, LoggerFromContext(cloned))
	caller, _ := CallerFromContext(cloned)
	assert.Equal(t, CLI, caller)
	want, _ := RequestIDFromContext(ctx)
	got, _ := RequestIDFromContext(cloned)
	assert.Equal(t, want, got)
}
