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

package server

import (
	"context"
	"encoding/json"

	"github.com/creachadair/jrpc2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/snyk/findings-engine/domain/observability/error_reporting"
	"github.com/snyk/findings-engine/internal/types"
)

const (
	CodeForbidden         jrpc2.Code = -32003
	CodeUnknownWorkspace  jrpc2.Code = -32004
	CodeResultPending     jrpc2.Code = -32010
	CodePluginFailed      jrpc2.Code = -32011
	CodeReportUnavailable jrpc2.Code = -32012
)

type unknownWorkspaceData struct {
	Workspace  string `json:"workspace"`
	Suggestion string `json:"suggestion,omitempty"`
}

type pluginFailedData struct {
	Plugin types.Plugin        `json:"plugin"`
	Errors []types.PluginError `json:"errors,omitempty"`
}

// toRPCError maps a service error to the JSON-RPC error returned to callers. Unexpected errors are reported and
// their detail is not passed on.
func toRPCError(logger *zerolog.Logger, reporter error_reporting.ErrorReporter, err error) error {
	var unknownWorkspace *types.UnknownWorkspaceError
	var pluginFailed *types.PluginFailedError
	switch {
	case errors.Is(err, types.ErrNotAuthorized):
		logger.Debug().Err(err).Msg("access denied")
		return &jrpc2.Error{Code: CodeForbidden, Message: "forbidden"}
	case errors.As(err, &unknownWorkspace):
		return withData(&jrpc2.Error{Code: CodeUnknownWorkspace, Message: unknownWorkspace.Error()},
			unknownWorkspaceData{Workspace: unknownWorkspace.Workspace, Suggestion: unknownWorkspace.Suggestion})
	case errors.Is(err, types.ErrUnknownWorkspace):
		return &jrpc2.Error{Code: CodeUnknownWorkspace, Message: "unknown workspace"}
	case errors.Is(err, types.ErrPluginResultNotAvailable):
		return &jrpc2.Error{Code: CodeResultPending, Message: "pending"}
	case errors.As(err, &pluginFailed):
		return withData(&jrpc2.Error{Code: CodePluginFailed, Message: pluginFailed.Error()},
			pluginFailedData{Plugin: pluginFailed.Plugin, Errors: pluginFailed.Errors})
	case errors.Is(err, types.ErrPluginFailed):
		return &jrpc2.Error{Code: CodePluginFailed, Message: "plugin failed"}
	case errors.Is(err, types.ErrReportGenerationFailed), errors.Is(err, types.ErrInvalidCVSSVector):
		logger.Warn().Err(err).Msg("report unavailable")
		return &jrpc2.Error{Code: CodeReportUnavailable, Message: "report unavailable"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	logger.Err(err).Msg("request failed")
	reporter.CaptureError(err)
	return &jrpc2.Error{Code: jrpc2.InternalError, Message: "internal error"}
}

func withData(rpcErr *jrpc2.Error, data any) *jrpc2.Error {
	if raw, err := json.Marshal(data); err == nil {
		rpcErr.Data = raw
	}
	return rpcErr
}
