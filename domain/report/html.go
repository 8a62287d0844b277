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

package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/internal/html"
	"github.com/snyk/findings-engine/internal/types"
)

//go:embed template/details.html
var detailsHtmlTemplate string

type HtmlRenderer struct {
	c              *config.Config
	globalTemplate *template.Template
}

func NewHtmlRenderer(c *config.Config) (*HtmlRenderer, error) {
	funcMap := template.FuncMap{
		"trimCWEPrefix": html.TrimCWEPrefix,
		"join":          html.Join,
		"formatDate":    html.FormatDate,
	}
	globalTemplate, err := template.New("details").Funcs(funcMap).Parse(detailsHtmlTemplate)
	if err != nil {
		c.Logger().Error().Msgf("Failed to parse details template: %s", err)
		return nil, errors.Wrap(err, "parse details template")
	}
	return &HtmlRenderer{c: c, globalTemplate: globalTemplate}, nil
}

// Render returns the report as a standalone HTML page.
func (r *HtmlRenderer) Render(details *types.VulnerabilityDetails) (string, error) {
	if details == nil {
		return "", errors.Wrap(types.ErrReportGenerationFailed, "nothing to render")
	}
	nonce, err := html.GenerateSecurityNonce()
	if err != nil {
		return "", err
	}
	info := details.VulnerabilityInfo
	data := map[string]interface{}{
		"Nonce":              nonce,
		"VulnerabilityID":    info.VulnerabilityID,
		"Summary":            info.Summary,
		"Description":        html.MarkdownToHTML(info.Description),
		"Published":          info.Published,
		"LastModified":       info.LastModified,
		"Aliases":            info.Aliases,
		"Sources":            info.Sources,
		"AffectedVersions":   info.VersionInfo.AffectedVersionsString,
		"PatchedVersions":    info.VersionInfo.PatchedVersionsString,
		"Versions":           info.VersionInfo.Versions,
		"Dependency":         details.DependencyInfo,
		"SeverityClass":      string(details.Severities.SeverityClass),
		"SeverityIcon":       html.SeverityIcon(details.Severities.SeverityClass),
		"Score":              fmt.Sprintf("%.1f", details.Severities.Severity),
		"CVSS31":             details.Severities.CVSS31,
		"CVSS3":              details.Severities.CVSS3,
		"CVSS2":              details.Severities.CVSS2,
		"OWASP":              details.OWASPTop10,
		"Weaknesses":         details.Weaknesses,
		"CommonConsequences": details.CommonConsequences,
		"Patch":              details.Patch,
		"References":         details.References,
		"Links":              details.Other.PackageManagerLinks,
		"ExternalIcon":       html.ExternalIcon(),
	}

	var htmlBuffer bytes.Buffer
	if err := r.globalTemplate.Execute(&htmlBuffer, data); err != nil {
		r.c.Logger().Error().Msgf("Failed to execute main details template: %v", err)
		return "", errors.Wrap(err, "render details")
	}
	return htmlBuffer.String(), nil
}
