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

package html

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
)

func FormatDate(date *time.Time) string {
	if date == nil || date.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d, %d", date.Format("January"), date.Day(), date.Year())
}

func TrimCWEPrefix(cwe string) string {
	return strings.TrimPrefix(strings.ToUpper(cwe), "CWE-")
}

func Join(sep string, s []string) string {
	return strings.Join(s, sep)
}

// MarkdownToHTML renders advisory markdown. Raw HTML inside the markdown is escaped.
func MarkdownToHTML(md string) template.HTML {
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML})
	rendered := markdown.ToHTML([]byte(md), nil, renderer)
	return template.HTML(rendered) //nolint:gosec // raw html in the input is skipped by the renderer
}
