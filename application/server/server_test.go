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

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/server"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/snyk/findings-engine/application/services"
	"github.com/snyk/findings-engine/domain/observability/error_reporting"
	"github.com/snyk/findings-engine/internal/testutil"
	"github.com/snyk/findings-engine/internal/types"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Vulnerabilities(ctx context.Context, req services.ListRequest) (types.Page[types.VulnerabilityItem], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.Page[types.VulnerabilityItem]), args.Error(1)
}

func (m *mockService) Report(ctx context.Context, req services.ReportRequest) (*types.VulnerabilityDetails, error) {
	args := m.Called(ctx, req)
	details, _ := args.Get(0).(*types.VulnerabilityDetails)
	return details, args.Error(1)
}

func (m *mockService) ReportHtml(ctx context.Context, req services.ReportRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockService) Dependencies(ctx context.Context, req services.ListRequest) (types.Page[types.DependencyItem], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.Page[types.DependencyItem]), args.Error(1)
}

func (m *mockService) Licenses(ctx context.Context, req services.ListRequest) (types.Page[types.LicenseItem], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.Page[types.LicenseItem]), args.Error(1)
}

func (m *mockService) WorkspaceStats(ctx context.Context, req services.Request) (types.AnalysisStats, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.AnalysisStats), args.Error(1)
}

func (m *mockService) ProjectStats(ctx context.Context, req services.Request) (types.AnalysisStats, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.AnalysisStats), args.Error(1)
}

func (m *mockService) Weekly(ctx context.Context, req services.WeeklyRequest) ([]types.WeekBucket, error) {
	args := m.Called(ctx, req)
	buckets, _ := args.Get(0).([]types.WeekBucket)
	return buckets, args.Error(1)
}

const params = `{"org_id":"6f2c0c8e-1f3e-4a55-9c1b-2f0a8d2b7e11","project_id":"0b7a4c3e-6a90-4b6b-8a44-76c9d5a3f2a0",
"analysis_id":"c1d7f7e2-4f4e-4c38-9d6a-1c8f5d0b9a77","workspace":"api","user":"alice"}`

func setupServer(t *testing.T) (server.Local, *mockService, *error_reporting.TestErrorReporter) {
	t.Helper()
	c := testutil.UnitTest(t)
	service := &mockService{}
	reporter := error_reporting.NewTestErrorReporter()
	loc := server.NewLocal(NewHandlers(c, service, reporter), nil)
	t.Cleanup(func() {
		_ = loc.Close()
	})
	return loc, service, reporter
}

func rpcCode(t *testing.T, err error) jrpc2.Code {
	t.Helper()
	var rpcErr *jrpc2.Error
	require.True(t, errors.As(err, &rpcErr), "expected a JSON-RPC error, got %v", err)
	return rpcErr.Code
}

func TestNewHandlers_RegistersAllMethods(t *testing.T) {
	loc, _, _ := setupServer(t)

	methods := loc.Server.ServerInfo().Methods

	for _, method := range []string{
		"vulnerabilities/list", "vulnerabilities/report", "vulnerabilities/reportHtml", "dependencies/list",
		"licenses/list", "stats/workspace", "stats/project", "stats/weekly",
	} {
		assert.Contains(t, methods, method)
	}
}

func TestVulnerabilitiesList_DecodesParams(t *testing.T) {
	loc, service, _ := setupServer(t)
	service.On("Vulnerabilities", mock.Anything, mock.MatchedBy(func(req services.ListRequest) bool {
		return req.Workspace == "api" && req.User == "alice" && req.SortBy == "severity" &&
			req.ActiveFilters[0] == "severity_critical" && req.AnalysisID.String() == "c1d7f7e2-4f4e-4c38-9d6a-1c8f5d0b9a77"
	})).Return(types.Page[types.VulnerabilityItem]{
		Data:        []types.VulnerabilityItem{{VulnerabilityID: "GHSA-35jh-r3h4-6jhm", Severity: 9.8}},
		Page:        1,
		EntryCount:  1,
		FilterCount: map[string]int{"severity_high": 0},
	}, nil)
	raw := strings.TrimSuffix(params, "}") + `,"sort_by":"severity","active_filters":["severity_critical"]}`

	var page types.Page[types.VulnerabilityItem]
	err := loc.Client.CallResult(context.Background(), "vulnerabilities/list", json.RawMessage(raw), &page)

	require.NoError(t, err)
	assert.Equal(t, "GHSA-35jh-r3h4-6jhm", page.Data[0].VulnerabilityID)
	service.AssertExpectations(t)
}

func TestReportHtml_WrapsHtml(t *testing.T) {
	loc, service, _ := setupServer(t)
	service.On("ReportHtml", mock.Anything, mock.Anything).Return("<html></html>", nil)

	var result ReportHtmlResult
	err := loc.Client.CallResult(context.Background(), "vulnerabilities/reportHtml", json.RawMessage(params), &result)

	require.NoError(t, err)
	assert.Equal(t, "<html></html>", result.Html)
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     jrpc2.Code
		captured bool
	}{
		{"not authorized", errors.Wrap(types.ErrNotAuthorized, "project 42"), CodeForbidden, false},
		{"unknown workspace", &types.UnknownWorkspaceError{Workspace: "apl", Suggestion: "api"}, CodeUnknownWorkspace, false},
		{"pending", errors.Wrap(types.ErrPluginResultNotAvailable, "vuln-finder"), CodeResultPending, false},
		{"plugin failed", &types.PluginFailedError{Plugin: types.PluginVulnFinder}, CodePluginFailed, false},
		{"no report", errors.Wrap(types.ErrReportGenerationFailed, "GHSA-none"), CodeReportUnavailable, false},
		{"unexpected", errors.New("connection refused"), jrpc2.InternalError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, service, reporter := setupServer(t)
			service.On("WorkspaceStats", mock.Anything, mock.Anything).Return(types.AnalysisStats{}, tt.err)

			_, err := loc.Client.Call(context.Background(), "stats/workspace", json.RawMessage(params))

			require.Error(t, err)
			assert.Equal(t, tt.code, rpcCode(t, err))
			assert.Equal(t, tt.captured, len(reporter.Captured()) > 0)
		})
	}
}

func TestErrorCodes_ForbiddenHidesDetail(t *testing.T) {
	loc, service, _ := setupServer(t)
	service.On("ProjectStats", mock.Anything, mock.Anything).
		Return(types.AnalysisStats{}, errors.Wrap(types.ErrNotAuthorized, "user alice not in project 42"))

	_, err := loc.Client.Call(context.Background(), "stats/project", json.RawMessage(params))

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "alice")
}

func TestErrorCodes_UnknownWorkspaceCarriesSuggestion(t *testing.T) {
	loc, service, _ := setupServer(t)
	service.On("Dependencies", mock.Anything, mock.Anything).
		Return(types.Page[types.DependencyItem]{}, &types.UnknownWorkspaceError{Workspace: "apl", Suggestion: "api"})

	_, err := loc.Client.Call(context.Background(), "dependencies/list", json.RawMessage(params))

	var rpcErr *jrpc2.Error
	require.True(t, errors.As(err, &rpcErr))
	var data unknownWorkspaceData
	require.NoError(t, json.Unmarshal(rpcErr.Data, &data))
	assert.Equal(t, "api", data.Suggestion)
}

func TestHTTPServer(t *testing.T) {
	c := testutil.UnitTest(t)
	service := &mockService{}
	service.On("Weekly", mock.Anything, mock.Anything).Return([]types.WeekBucket{{Year: 2026, Week: 42, High: 2}}, nil)
	srv := NewHTTPServer(c, NewHandlers(c, service, error_reporting.NewTestErrorReporter()), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Close()
	})

	t.Run("rpc", func(t *testing.T) {
		body := `{"jsonrpc":"2.0","id":1,"method":"stats/weekly","params":` + params + `}`
		rsp, err := http.Post(ts.URL+"/rpc", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer rsp.Body.Close()

		var reply struct {
			Result []types.WeekBucket `json:"result"`
		}
		require.NoError(t, json.NewDecoder(rsp.Body).Decode(&reply))
		require.Len(t, reply.Result, 1)
		assert.Equal(t, 2, reply.Result[0].High)
	})

	t.Run("healthz", func(t *testing.T) {
		rsp, err := http.Get(ts.URL + "/healthz")
		require.NoError(t, err)
		defer rsp.Body.Close()
		assert.Equal(t, http.StatusOK, rsp.StatusCode)
	})
}

func TestHealthz_Unhealthy(t *testing.T) {
	c := testutil.UnitTest(t)
	srv := NewHTTPServer(c, NewHandlers(c, &mockService{}, error_reporting.NewTestErrorReporter()),
		func(context.Context) error { return errors.New("database unreachable") })
	t.Cleanup(func() { _ = srv.Close() })
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
