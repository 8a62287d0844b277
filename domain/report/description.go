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
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

var (
	atxHeading = regexp.MustCompile(`^ {0,3}#{1,6}(\s|$)`)
	fenceStart = regexp.MustCompile("^ {0,3}(```|~~~)")
)

type section struct {
	lines []string
}

func (s section) text() string {
	return strings.Join(s.lines, "\n")
}

// CleanDescription strips the markdown headings of an advisory text. It keeps the untitled top section and every
// section containing a fenced code block, without their heading lines, and trims trailing blank lines.
func CleanDescription(description string) string {
	lines := strings.Split(strings.ReplaceAll(description, "\r\n", "\n"), "\n")

	sections := []section{{}}
	inFence := false
	fence := ""
	for _, line := range lines {
		if m := fenceStart.FindStringSubmatch(line); m != nil {
			switch {
			case !inFence:
				inFence, fence = true, m[1]
			case m[1] == fence:
				inFence = false
			}
		}
		if !inFence && atxHeading.MatchString(line) {
			sections = append(sections, section{})
			continue
		}
		current := &sections[len(sections)-1]
		current.lines = append(current.lines, line)
	}

	var kept []string
	for i, s := range sections {
		if i == 0 || containsFencedCode(s.text()) {
			kept = append(kept, s.lines...)
		}
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, "\n")
}

func containsFencedCode(text string) bool {
	if !strings.Contains(text, "```") && !strings.Contains(text, "~~~") {
		return false
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse([]byte(text), p)
	found := false
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if block, ok := node.(*ast.CodeBlock); ok && entering && block.IsFenced {
			found = true
			return ast.Terminate
		}
		return ast.GoToNext
	})
	return found
}
