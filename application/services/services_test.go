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

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/findings-engine/domain/knowledge"
	"github.com/snyk/findings-engine/domain/observability/performance"
	"github.com/snyk/findings-engine/domain/report"
	"github.com/snyk/findings-engine/infrastructure/access/mock_access"
	"github.com/snyk/findings-engine/infrastructure/results/mock_results"
	"github.com/snyk/findings-engine/internal/testutil"
	"github.com/snyk/findings-engine/internal/types"
)

var (
	orgID      = uuid.MustParse("6f2c0c8e-1f3e-4a55-9c1b-2f0a8d2b7e11")
	projectID  = uuid.MustParse("0b7a4c3e-6a90-4b6b-8a44-76c9d5a3f2a0")
	analysisID = uuid.MustParse("c1d7f7e2-4f4e-4c38-9d6a-1c8f5d0b9a77")
	previousID = uuid.MustParse("9a3e2b51-77c4-4d0e-8f36-5b2d1e0c4a98")
	created    = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
)

// fakeKnowledge serves every knowledge lookup from memory.
type fakeKnowledge struct {
	osv      map[string]types.OSVRecord
	packages map[string]types.PackageRecord
	licenses map[string]types.LicenseRecord
	failPkgs bool
}

func (f *fakeKnowledge) Weakness(_ context.Context, id string) (types.WeaknessRecord, error) {
	return types.WeaknessRecord{}, errors.Wrap(types.ErrNotFound, id)
}

func (f *fakeKnowledge) NVD(_ context.Context, id string) (types.NVDRecord, error) {
	return types.NVDRecord{}, errors.Wrap(types.ErrNotFound, id)
}

func (f *fakeKnowledge) OSV(_ context.Context, id string) (types.OSVRecord, error) {
	if record, ok := f.osv[id]; ok {
		return record, nil
	}
	return types.OSVRecord{}, errors.Wrap(types.ErrNotFound, id)
}

func (f *fakeKnowledge) OSVByAlias(_ context.Context, id string) (types.OSVRecord, error) {
	return types.OSVRecord{}, errors.Wrap(types.ErrNotFound, id)
}

func (f *fakeKnowledge) Package(_ context.Context, name string) (types.PackageRecord, error) {
	if record, ok := f.packages[name]; ok {
		return record, nil
	}
	return types.PackageRecord{}, errors.Wrap(types.ErrNotFound, name)
}

func (f *fakeKnowledge) Packages(_ context.Context, names []string) (map[string]types.PackageRecord, error) {
	if f.failPkgs {
		return nil, errors.New("registry unavailable")
	}
	records := map[string]types.PackageRecord{}
	for _, name := range names {
		if record, ok := f.packages[name]; ok {
			records[name] = record
		}
	}
	return records, nil
}

func (f *fakeKnowledge) Licenses(_ context.Context, ids []string) (map[string]types.LicenseRecord, error) {
	records := map[string]types.LicenseRecord{}
	for _, id := range ids {
		if record, ok := f.licenses[id]; ok {
			records[id] = record
		}
	}
	return records, nil
}

type fixture struct {
	service      *FindingsService
	store        *mock_results.MockStore
	checker      *mock_access.MockChecker
	kb           *fakeKnowledge
	instrumentor *performance.TestInstrumentor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	c := testutil.UnitTest(t)
	ctrl := gomock.NewController(t)
	kb := &fakeKnowledge{}
	lookup := knowledge.NewLookup(c, kb, knowledge.NewOWASPTop10_2021())
	renderer, err := report.NewHtmlRenderer(c)
	require.NoError(t, err)
	f := &fixture{
		store:        mock_results.NewMockStore(ctrl),
		checker:      mock_access.NewMockChecker(ctrl),
		kb:           kb,
		instrumentor: performance.NewTestInstrumentor(),
	}
	f.service = NewFindingsService(c, f.checker, f.store, kb, kb, lookup, report.NewAssembler(c, lookup, kb, kb),
		renderer, f.instrumentor)
	f.service.now = func() time.Time { return created }
	return f
}

func (f *fixture) allow() {
	f.checker.EXPECT().CheckAccess(gomock.Any(), orgID, projectID, gomock.Any(), "alice").Return(nil).AnyTimes()
}

func (f *fixture) result(t *testing.T, id uuid.UUID, plugin types.Plugin, output any) {
	t.Helper()
	raw, err := json.Marshal(output)
	require.NoError(t, err)
	f.store.EXPECT().LatestResult(gomock.Any(), id, plugin).
		Return(&types.AnalysisResult{AnalysisID: id, Plugin: plugin, Result: raw}, nil).AnyTimes()
}

func request(workspace string) Request {
	return Request{OrgID: orgID, ProjectID: projectID, AnalysisID: analysisID, Workspace: workspace, User: "alice"}
}

var success = types.AnalysisInfo{Status: types.StatusSuccess}

func finding(id, dependency, version string, score float64) types.Finding {
	return types.Finding{
		ID:                 id + "/" + dependency + "@" + version,
		VulnerabilityID:    id,
		AffectedDependency: dependency,
		AffectedVersion:    version,
		Sources:            []types.Source{types.SourceOSV},
		Severity: types.SeverityInfo{
			SeverityType:          types.CVSSv31,
			Severity:              score,
			ConfidentialityImpact: "HIGH",
			IntegrityImpact:       "LOW",
			AvailabilityImpact:    "NONE",
		},
	}
}

func vulnOutput(workspaces map[string][]types.Finding) types.VulnFinderOutput {
	output := types.VulnFinderOutput{Workspaces: map[string]types.VulnWorkspace{}, AnalysisInfo: success}
	for name, list := range workspaces {
		output.Workspaces[name] = types.VulnWorkspace{Vulnerabilities: list}
	}
	return output
}

func TestVulnerabilities_FilterCounts(t *testing.T) {
	f := setup(t)
	f.allow()
	var list []types.Finding
	for i := 0; i < 10; i++ {
		score := 5.0
		if i < 3 {
			score = 9.8
		}
		list = append(list, finding(fmt.Sprintf("GHSA-%04d", i), "lodash", "4.17.15", score))
	}
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": list}))

	page, err := f.service.Vulnerabilities(context.Background(), ListRequest{Request: request("api")})

	require.NoError(t, err)
	assert.Equal(t, 10, page.TotalEntries)
	assert.Equal(t, 3, page.FilterCount["severity_critical"])
	assert.Equal(t, 7, page.FilterCount["severity_medium"])
	assert.Equal(t, 9.8, page.Data[0].Severity)
}

func TestVulnerabilities_UnknownWorkspace(t *testing.T) {
	f := setup(t)
	f.allow()
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{
		"packages/api": {finding("GHSA-1", "lodash", "4.17.15", 9.8)},
		"frontend":     nil,
	}))

	_, err := f.service.Vulnerabilities(context.Background(), ListRequest{Request: request("packages/apl")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownWorkspace))
	var unknown *types.UnknownWorkspaceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "packages/api", unknown.Suggestion)
}

func TestVulnerabilities_NotAuthorized(t *testing.T) {
	f := setup(t)
	f.checker.EXPECT().CheckAccess(gomock.Any(), orgID, projectID, analysisID, "alice").Return(types.ErrNotAuthorized)

	_, err := f.service.Vulnerabilities(context.Background(), ListRequest{Request: request("api")})

	assert.True(t, errors.Is(err, types.ErrNotAuthorized))
}

func TestVulnerabilities_PluginFailed(t *testing.T) {
	f := setup(t)
	f.allow()
	f.result(t, analysisID, types.PluginVulnFinder, types.VulnFinderOutput{AnalysisInfo: types.AnalysisInfo{
		Status: types.StatusFailure,
		Errors: []types.PluginError{{Type: "LockfileMissing", Description: "package-lock.json not found"}},
	}})

	_, err := f.service.Vulnerabilities(context.Background(), ListRequest{Request: request("api")})

	assert.True(t, errors.Is(err, types.ErrPluginFailed))
	assert.ErrorContains(t, err, "package-lock.json not found")
}

func TestVulnerabilities_ResultNotAvailable(t *testing.T) {
	f := setup(t)
	f.allow()
	f.store.EXPECT().LatestResult(gomock.Any(), analysisID, types.PluginVulnFinder).
		Return(nil, errors.Wrap(types.ErrPluginResultNotAvailable, "vuln-finder"))

	_, err := f.service.Vulnerabilities(context.Background(), ListRequest{Request: request("api")})

	assert.True(t, errors.Is(err, types.ErrPluginResultNotAvailable))
}

func TestVulnerabilities_RecordsTransaction(t *testing.T) {
	f := setup(t)
	f.allow()
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": nil}))

	_, err := f.service.Vulnerabilities(context.Background(), ListRequest{Request: request("api")})

	require.NoError(t, err)
	spans := f.instrumentor.SpanRecorder.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, "vulnerabilities/list", spans[0].GetOperation())
	assert.Equal(t, "FindingsService", spans[0].GetTxName())
}

func (f *fixture) analyses(previous *types.Analysis) {
	f.store.EXPECT().Analysis(gomock.Any(), analysisID).
		Return(&types.Analysis{ID: analysisID, ProjectID: projectID, CreatedOn: created}, nil).AnyTimes()
	if previous == nil {
		f.store.EXPECT().PreviousAnalysis(gomock.Any(), projectID, created).
			Return(nil, errors.Wrap(types.ErrNotFound, "previous analysis")).AnyTimes()
		return
	}
	f.store.EXPECT().PreviousAnalysis(gomock.Any(), projectID, created).Return(previous, nil).AnyTimes()
}

func TestWorkspaceStats_NoPreviousRun(t *testing.T) {
	f := setup(t)
	f.allow()
	f.analyses(nil)
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": {
		finding("GHSA-1", "lodash", "4.17.15", 9.8),
		finding("GHSA-2", "minimist", "1.2.0", 5.6),
	}}))

	s, err := f.service.WorkspaceStats(context.Background(), request("api"))

	require.NoError(t, err)
	assert.Equal(t, 1, s.NumberOfCritical)
	assert.Equal(t, s.NumberOfCritical, s.NumberOfCriticalDiff)
	assert.Equal(t, s.NumberOfMedium, s.NumberOfMediumDiff)
	assert.Equal(t, 2, s.NumberOfVulnerabilitiesDiff)
	assert.Equal(t, 2, s.NumberOfVulnerableDependenciesDiff)
	assert.Equal(t, s.MaxSeverity, s.MaxSeverityDiff)
	assert.Equal(t, s.MeanSeverity, s.MeanSeverityDiff)
	assert.Equal(t, []string{"GHSA-1", "GHSA-2"}, s.NewVulnerabilities)
	assert.Empty(t, s.FixedVulnerabilities)
}

func TestWorkspaceStats_AgainstPreviousRun(t *testing.T) {
	f := setup(t)
	f.allow()
	f.analyses(&types.Analysis{ID: previousID, ProjectID: projectID, CreatedOn: created.Add(-24 * time.Hour)})
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": {
		finding("GHSA-1", "lodash", "4.17.15", 9.8),
		finding("GHSA-2", "minimist", "1.2.0", 5.6),
	}}))
	f.result(t, previousID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": {
		finding("GHSA-1", "lodash", "4.17.15", 9.8),
		finding("GHSA-3", "axios", "0.21.0", 7.5),
	}}))

	s, err := f.service.WorkspaceStats(context.Background(), request("api"))

	require.NoError(t, err)
	assert.Equal(t, 0, s.NumberOfCriticalDiff)
	assert.Equal(t, -1, s.NumberOfHighDiff)
	assert.Equal(t, 1, s.NumberOfMediumDiff)
	assert.Equal(t, 0, s.NumberOfVulnerabilitiesDiff)
	assert.Equal(t, []string{"GHSA-2"}, s.NewVulnerabilities)
	assert.Equal(t, []string{"GHSA-3"}, s.FixedVulnerabilities)
}

func TestWorkspaceStats_PreviousRunWithoutWorkspace(t *testing.T) {
	f := setup(t)
	f.allow()
	f.analyses(&types.Analysis{ID: previousID, ProjectID: projectID, CreatedOn: created.Add(-time.Hour)})
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": {
		finding("GHSA-1", "lodash", "4.17.15", 9.8),
	}}))
	f.result(t, previousID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"web": nil}))

	s, err := f.service.WorkspaceStats(context.Background(), request("api"))

	require.NoError(t, err)
	assert.Equal(t, 1, s.NumberOfCriticalDiff)
}

func TestProjectStats_SpansAllWorkspaces(t *testing.T) {
	f := setup(t)
	f.allow()
	f.analyses(nil)
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{
		"api": {finding("GHSA-1", "lodash", "4.17.15", 9.8)},
		"web": {finding("GHSA-1", "lodash", "4.17.10", 9.8), finding("GHSA-2", "minimist", "1.2.0", 3.1)},
	}))

	s, err := f.service.ProjectStats(context.Background(), request(""))

	require.NoError(t, err)
	assert.Equal(t, 2, s.NumberOfVulnerabilities)
	assert.Equal(t, 1, s.NumberOfCritical)
	assert.Equal(t, 1, s.NumberOfLow)
	assert.Equal(t, 2, s.NumberOfVulnerableDependencies)
}

func TestWeekly_SkipsAnalysesWithoutResult(t *testing.T) {
	f := setup(t)
	f.allow()
	pending := uuid.MustParse("3c5b9a10-2d4e-4f6a-8b7c-9d0e1f2a3b4c")
	f.store.EXPECT().ProjectAnalyses(gomock.Any(), projectID, created.Add(-defaultWeeklyWindow)).Return([]types.Analysis{
		{ID: previousID, ProjectID: projectID, CreatedOn: created.Add(-8 * 24 * time.Hour)},
		{ID: analysisID, ProjectID: projectID, CreatedOn: created},
		{ID: pending, ProjectID: projectID, CreatedOn: created.Add(time.Hour)},
	}, nil)
	f.result(t, previousID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": {
		finding("GHSA-1", "lodash", "4.17.15", 9.8),
	}}))
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": {
		finding("GHSA-2", "minimist", "1.2.0", 5.6),
	}}))
	f.store.EXPECT().LatestResult(gomock.Any(), pending, types.PluginVulnFinder).
		Return(nil, types.ErrPluginResultNotAvailable)

	buckets, err := f.service.Weekly(context.Background(), WeeklyRequest{Request: Request{
		OrgID: orgID, ProjectID: projectID, User: "alice",
	}})

	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, 1, buckets[0].Critical)
	assert.Equal(t, 1, buckets[0].Analyses)
	assert.Equal(t, 1, buckets[1].Medium)
	assert.Equal(t, 1, buckets[1].Analyses)
	assert.Equal(t, 5.6, buckets[1].SummedSeverity)
}

func TestReport_WithPatch(t *testing.T) {
	f := setup(t)
	f.allow()
	f.kb.osv = map[string]types.OSVRecord{"GHSA-35jh-r3h4-6jhm": {
		ID:      "GHSA-35jh-r3h4-6jhm",
		Summary: "Command Injection in lodash",
		Details: "`lodash` versions prior to 4.17.21 are vulnerable to Command Injection.",
		Aliases: []string{"CVE-2021-23337"},
		Severity: []types.OSVSeverity{
			{Type: "CVSS_V3", Score: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"},
		},
	}}
	vuln := finding("GHSA-35jh-r3h4-6jhm", "lodash", "4.17.15", 9.8)
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": {vuln}}))
	f.result(t, analysisID, types.PluginPatching, types.PatchingOutput{
		AnalysisInfo: success,
		Workspaces: map[string]types.PatchWorkspace{"api": {Patches: map[string]types.PatchInfo{
			"GHSA-35jh-r3h4-6jhm": {IsPatchable: "FULL", PatchableOccurrences: 1, FixedVersions: []string{"4.17.21"}},
		}}},
	})

	details, err := f.service.Report(context.Background(), ReportRequest{
		Request:         request("api"),
		VulnerabilityID: "GHSA-35jh-r3h4-6jhm",
		Dependency:      "lodash",
		Version:         "4.17.15",
	})

	require.NoError(t, err)
	assert.Equal(t, "GHSA-35jh-r3h4-6jhm", details.VulnerabilityInfo.VulnerabilityID)
	assert.Equal(t, 9.8, details.Severities.Severity)
	require.NotNil(t, details.Patch)
	assert.Equal(t, []string{"4.17.21"}, details.Patch.FixedVersions)
}

func TestReportHtml_WithoutPatchingResult(t *testing.T) {
	f := setup(t)
	f.allow()
	f.kb.osv = map[string]types.OSVRecord{"GHSA-35jh-r3h4-6jhm": {
		ID:      "GHSA-35jh-r3h4-6jhm",
		Summary: "Command Injection in lodash",
		Details: "Prototype pollution.",
	}}
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": nil}))
	f.store.EXPECT().LatestResult(gomock.Any(), analysisID, types.PluginPatching).
		Return(nil, types.ErrPluginResultNotAvailable)

	html, err := f.service.ReportHtml(context.Background(), ReportRequest{
		Request:         request("api"),
		VulnerabilityID: "GHSA-35jh-r3h4-6jhm",
	})

	require.NoError(t, err)
	assert.Contains(t, html, "GHSA-35jh-r3h4-6jhm")
	assert.Contains(t, html, "Prototype pollution.")
}

func TestReport_NoAdvisory(t *testing.T) {
	f := setup(t)
	f.allow()
	f.result(t, analysisID, types.PluginVulnFinder, vulnOutput(map[string][]types.Finding{"api": nil}))
	f.store.EXPECT().LatestResult(gomock.Any(), analysisID, types.PluginPatching).
		Return(nil, types.ErrPluginResultNotAvailable)

	_, err := f.service.Report(context.Background(), ReportRequest{Request: request("api"), VulnerabilityID: "GHSA-none"})

	assert.True(t, errors.Is(err, types.ErrReportGenerationFailed))
}

func TestDependencies_WithRegistryMetadata(t *testing.T) {
	f := setup(t)
	f.allow()
	f.kb.packages = map[string]types.PackageRecord{"lodash": {Name: "lodash", LatestVersion: "4.17.21"}}
	f.result(t, analysisID, types.PluginSbom, types.SbomOutput{
		AnalysisInfo: success,
		Workspaces: map[string]types.SbomWorkspace{"api": {Dependencies: map[string]map[string]types.SbomDependency{
			"lodash":   {"4.17.15": {Key: "lodash@4.17.15", Prod: true, Direct: true}},
			"minimist": {"1.2.6": {Key: "minimist@1.2.6", Dev: true, Transitive: true}},
		}}},
	})

	page, err := f.service.Dependencies(context.Background(), ListRequest{
		Request:     request("api"),
		QueryParams: types.QueryParams{SortDirection: types.SortAsc},
	})

	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "lodash", page.Data[0].Name)
	assert.True(t, page.Data[0].Outdated)
	assert.False(t, page.Data[1].Outdated)
	assert.Equal(t, 1, page.FilterCount["outdated"])
}

func TestDependencies_RegistryFailureIsAbsorbed(t *testing.T) {
	f := setup(t)
	f.allow()
	f.kb.failPkgs = true
	f.result(t, analysisID, types.PluginSbom, types.SbomOutput{
		AnalysisInfo: success,
		Workspaces: map[string]types.SbomWorkspace{"api": {Dependencies: map[string]map[string]types.SbomDependency{
			"lodash": {"4.17.15": {Key: "lodash@4.17.15", Prod: true}},
		}}},
	})

	page, err := f.service.Dependencies(context.Background(), ListRequest{Request: request("api")})

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.False(t, page.Data[0].Outdated)
}

func TestLicenses(t *testing.T) {
	f := setup(t)
	f.allow()
	f.kb.licenses = map[string]types.LicenseRecord{"MIT": {ID: "MIT", Name: "MIT License", OSIApproved: true}}
	f.result(t, analysisID, types.PluginLicenseFinder, types.LicenseOutput{
		AnalysisInfo: success,
		Workspaces: map[string]types.LicenseWorkspace{"api": {LicensesDepMap: map[string][]string{
			"MIT":        {"lodash@4.17.15", "minimist@1.2.6"},
			"Apache-2.0": {"typescript@5.4.5"},
		}}},
	})

	page, err := f.service.Licenses(context.Background(), ListRequest{Request: request("api")})

	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "MIT License", page.Data[0].Name)
	assert.Equal(t, 2, page.Data[0].DependencyCount)
	assert.Equal(t, 1, page.FilterCount["osi_approved"])
}

func TestClosestName(t *testing.T) {
	assert.Equal(t, "packages/api", closestName([]string{"packages/web", "packages/api"}, "packages/apl"))
	assert.Equal(t, "", closestName([]string{"frontend"}, "zz"))
	assert.Equal(t, "", closestName(nil, "api"))
}
