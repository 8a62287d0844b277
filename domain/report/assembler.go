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

// Package report assembles the detail view of one vulnerability affecting one dependency version.
package report

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/domain/knowledge"
	"github.com/snyk/findings-engine/internal/data_structure"
	"github.com/snyk/findings-engine/internal/types"
)

const (
	osvURL = "https://osv.dev/vulnerability/"
	nvdURL = "https://nvd.nist.gov/vuln/detail/"
)

// KnowledgeSource serves advisory records. Missing records return an error wrapping types.ErrNotFound.
type KnowledgeSource interface {
	NVD(ctx context.Context, cveID string) (types.NVDRecord, error)
	OSV(ctx context.Context, id string) (types.OSVRecord, error)
	OSVByAlias(ctx context.Context, cveID string) (types.OSVRecord, error)
}

// PackageSource serves registry metadata with all versions of a package.
type PackageSource interface {
	Package(ctx context.Context, name string) (types.PackageRecord, error)
}

// Request names the vulnerability and dependency version to report on. Vulnerability and Patch come from the
// analysis results and may be nil.
type Request struct {
	VulnerabilityID string
	Dependency      string
	Version         string
	Vulnerability   *types.MergedVulnerability
	Patch           *types.PatchInfo
}

type Assembler struct {
	c          *config.Config
	lookup     *knowledge.Lookup
	advisories KnowledgeSource
	packages   PackageSource
}

func NewAssembler(c *config.Config, lookup *knowledge.Lookup, advisories KnowledgeSource, packages PackageSource) *Assembler {
	return &Assembler{c: c, lookup: lookup, advisories: advisories, packages: packages}
}

// Assemble builds the report. Only the absence of both an OSV and an NVD record fails the report; every other
// missing piece is left out.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*types.VulnerabilityDetails, error) {
	logger := a.c.Logger().With().Str("method", "Assemble").Str("vulnerabilityID", req.VulnerabilityID).Logger()

	nvd, osv := a.records(ctx, req.VulnerabilityID)
	if nvd == nil && osv == nil {
		return nil, errors.Wrapf(types.ErrReportGenerationFailed, "no advisory found for %s", req.VulnerabilityID)
	}
	primary, secondary := types.SourceOSV, types.SourceNVD
	if osv == nil {
		primary, secondary = types.SourceNVD, types.SourceOSV
	}

	var affected *types.AffectedVuln
	if req.Vulnerability != nil {
		if entry, ok := req.Vulnerability.FindAffected(req.Dependency, req.Version); ok {
			affected = &entry
		}
	}
	dependency := req.Dependency
	if dependency == "" && affected != nil {
		dependency = affected.AffectedDependency
	}
	version := req.Version
	if version == "" && affected != nil {
		version = affected.AffectedVersion
	}

	var pkg *types.PackageRecord
	if dependency != "" && a.packages != nil {
		record, err := a.packages.Package(ctx, dependency)
		if err != nil {
			logger.Debug().Err(err).Str("dependency", dependency).Msg("no package metadata")
		} else {
			pkg = &record
		}
	}

	evidence := a.evidence(primary, affected, osv, dependency)
	affectedString := AffectedVersionsString(evidence)

	details := &types.VulnerabilityDetails{
		VulnerabilityInfo: types.VulnerabilityInfo{
			VulnerabilityID: req.VulnerabilityID,
			Sources:         sourceLinks(req.VulnerabilityID, nvd, osv),
			VersionInfo: types.VulnerabilityVersionInfo{
				AffectedVersionsString: affectedString,
				PatchedVersionsString:  PatchedVersionsString(evidence),
				Versions:               a.versionStatuses(pkg, affectedString),
			},
		},
		DependencyInfo:     dependencyInfo(pkg, dependency, version),
		Severities:         a.severities(primary, secondary, nvd, osv, dependency),
		Patch:              req.Patch,
		CommonConsequences: map[string][]types.CommonConsequence{},
		References:         references(nvd, osv),
		Other:              types.OtherInfo{PackageManagerLinks: packageManagerLinks(dependency, version)},
	}
	describe(&details.VulnerabilityInfo, nvd, osv)

	details.Weaknesses = []types.ReportWeakness{}
	for _, id := range weaknessIDs(nvd, osv, affected) {
		record, err := a.lookup.Weakness(ctx, id)
		if err != nil {
			logger.Debug().Err(err).Msg("weakness not enriched")
			details.Weaknesses = append(details.Weaknesses, types.ReportWeakness{ID: id})
			continue
		}
		details.Weaknesses = append(details.Weaknesses, types.ReportWeakness{
			ID:          record.ID,
			Name:        record.Name,
			Description: record.Description,
		})
		if len(record.CommonConsequences) > 0 {
			details.CommonConsequences[record.ID] = record.CommonConsequences
		}
		if details.OWASPTop10 == nil {
			details.OWASPTop10 = a.lookup.OWASPForWeakness(ctx, record.ID)
		}
	}
	if details.OWASPTop10 == nil && affected != nil {
		if category, ok := a.lookup.OWASP().ForWeaknesses(affected.Weaknesses); ok {
			details.OWASPTop10 = &category
		}
	}

	logger.Debug().Str("primary", string(primary)).Int("weaknesses", len(details.Weaknesses)).Msg("report assembled")
	return details, nil
}

// records resolves both advisory records of a vulnerability. CVE ids are looked up in the NVD and as OSV alias,
// other ids in OSV with their CVE alias looked up in the NVD.
func (a *Assembler) records(ctx context.Context, id string) (*types.NVDRecord, *types.OSVRecord) {
	logger := a.c.Logger().With().Str("method", "records").Str("vulnerabilityID", id).Logger()
	var nvd *types.NVDRecord
	var osv *types.OSVRecord

	if strings.HasPrefix(strings.ToUpper(id), "CVE-") {
		if record, err := a.advisories.NVD(ctx, id); err == nil {
			nvd = &record
		} else {
			logger.Debug().Err(err).Msg("no NVD record")
		}
		if record, err := a.advisories.OSVByAlias(ctx, id); err == nil {
			osv = &record
		} else {
			logger.Debug().Err(err).Msg("no OSV record for alias")
		}
		return nvd, osv
	}

	record, err := a.advisories.OSV(ctx, id)
	if err != nil {
		logger.Debug().Err(err).Msg("no OSV record")
		return nil, nil
	}
	osv = &record
	for _, alias := range osv.Aliases {
		if !strings.HasPrefix(strings.ToUpper(alias), "CVE-") {
			continue
		}
		if nvdRecord, nvdErr := a.advisories.NVD(ctx, alias); nvdErr == nil {
			nvd = &nvdRecord
			break
		}
	}
	return nvd, osv
}

// evidence prefers the vuln-finder's match of the primary source, then the other match, then the ranges the OSV
// record declares for the dependency.
func (a *Assembler) evidence(primary types.Source, affected *types.AffectedVuln, osv *types.OSVRecord, dependency string) *types.MatchEvidence {
	if affected != nil {
		first, second := affected.OSVMatch, affected.NVDMatch
		if primary == types.SourceNVD {
			first, second = second, first
		}
		if first != nil {
			return first
		}
		if second != nil {
			return second
		}
	}
	return osvEvidence(osv, dependency)
}

func describe(info *types.VulnerabilityInfo, nvd *types.NVDRecord, osv *types.OSVRecord) {
	if osv != nil {
		info.Description = CleanDescription(osv.Details)
		info.Summary = osv.Summary
		info.Aliases = osv.Aliases
		published, modified := osv.Published, osv.Modified
		info.Published, info.LastModified = &published, &modified
		if info.Description == "" && nvd != nil {
			info.Description = CleanDescription(nvd.Description())
		}
		return
	}
	info.Description = CleanDescription(nvd.Description())
	published, modified := nvd.Published, nvd.LastModified
	info.Published, info.LastModified = &published, &modified
}

func sourceLinks(id string, nvd *types.NVDRecord, osv *types.OSVRecord) []types.SourceLink {
	links := []types.SourceLink{}
	if osv != nil {
		links = append(links, types.SourceLink{Name: types.SourceOSV, VulnURL: osvURL + osv.ID})
	}
	if nvd != nil {
		links = append(links, types.SourceLink{Name: types.SourceNVD, VulnURL: nvdURL + nvd.ID})
	}
	if len(links) == 0 {
		links = append(links, types.SourceLink{Name: types.SourceNVD, VulnURL: nvdURL + id})
	}
	return links
}

func weaknessIDs(nvd *types.NVDRecord, osv *types.OSVRecord, affected *types.AffectedVuln) []string {
	var ids []string
	if osv != nil {
		ids = append(ids, osv.DatabaseSpecific.CWEIDs...)
	}
	if nvd != nil {
		ids = append(ids, nvd.WeaknessIDs()...)
	}
	if affected != nil {
		for _, w := range affected.Weaknesses {
			ids = append(ids, w.WeaknessID)
		}
	}
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		id = knowledge.NormalizeWeaknessID(id)
		if strings.HasPrefix(id, "CWE-") {
			normalized = append(normalized, id)
		}
	}
	return data_structure.Unique(normalized)
}

func references(nvd *types.NVDRecord, osv *types.OSVRecord) []types.ReportReference {
	refs := data_structure.NewOrderedMap[string, types.ReportReference]()
	if osv != nil {
		for _, r := range osv.References {
			if _, ok := refs.Get(r.URL); !ok && r.URL != "" {
				refs.Add(r.URL, types.ReportReference{URL: r.URL, Tags: []string{r.Type}})
			}
		}
	}
	if nvd != nil {
		for _, r := range nvd.References {
			if _, ok := refs.Get(r.URL); !ok && r.URL != "" {
				refs.Add(r.URL, types.ReportReference{URL: r.URL, Tags: r.Tags})
			}
		}
	}
	return refs.Values()
}

func dependencyInfo(pkg *types.PackageRecord, dependency, version string) *types.DependencyInfo {
	if pkg == nil {
		return nil
	}
	info := &types.DependencyInfo{
		Name:          dependency,
		Version:       version,
		Description:   pkg.Description,
		Keywords:      pkg.Keywords,
		Homepage:      pkg.Homepage,
		RepositoryURL: pkg.RepositoryURL,
		IssuesURL:     pkg.IssuesURL,
		License:       pkg.License,
		LatestVersion: pkg.LatestVersion,
	}
	if v, ok := pkg.Versions[version]; ok {
		released := v.ReleaseTime
		info.Published = &released
		if len(v.Licenses) > 0 {
			info.License = strings.Join(v.Licenses, " OR ")
		}
	}
	return info
}

func packageManagerLinks(dependency, version string) []types.ReportLink {
	if dependency == "" {
		return nil
	}
	npm := "https://www.npmjs.com/package/" + dependency
	if version != "" {
		npm += "/v/" + version
	}
	return []types.ReportLink{
		{Name: "npm", URL: npm},
		{Name: "yarn", URL: "https://yarnpkg.com/package?name=" + url.QueryEscape(dependency)},
	}
}
