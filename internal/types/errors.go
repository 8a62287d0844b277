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

package types

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotAuthorized            = errors.New("not authorized")
	ErrUnknownWorkspace         = errors.New("unknown workspace")
	ErrPluginResultNotAvailable = errors.New("plugin result not available")
	ErrPluginFailed             = errors.New("plugin failed")
	ErrInvalidCVSSVector        = errors.New("invalid CVSS vector")
	ErrReportGenerationFailed   = errors.New("report generation failed")
	ErrNotFound                 = errors.New("not found")
	ErrInvalidVersion           = errors.New("invalid version")
)

// UnknownWorkspaceError is returned when a result does not contain the requested workspace.
type UnknownWorkspaceError struct {
	Workspace  string
	Suggestion string
}

func (e *UnknownWorkspaceError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown workspace %q, did you mean %q?", e.Workspace, e.Suggestion)
	}
	return fmt.Sprintf("unknown workspace %q", e.Workspace)
}

func (e *UnknownWorkspaceError) Is(target error) bool {
	return target == ErrUnknownWorkspace
}

// PluginFailedError carries the errors a plugin reported in its analysis info.
type PluginFailedError struct {
	Plugin Plugin
	Errors []PluginError
}

func (e *PluginFailedError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("plugin %s failed", e.Plugin)
	}
	return fmt.Sprintf("plugin %s failed: %s", e.Plugin, e.Errors[0].Description)
}

func (e *PluginFailedError) Is(target error) bool {
	return target == ErrPluginFailed
}
