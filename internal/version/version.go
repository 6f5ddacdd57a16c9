/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package version carries build metadata, set via -ldflags "-X layoutstudio/internal/version.Version=...".
package version

import "strings"

var (
	Version = "0.1.0-dev"
	Commit  = ""
	Date    = ""
)

// String renders "layoutstudio <version> (<commit>, <date>)", omitting empty parts.
func String() string {
	b := strings.Builder{}
	b.WriteString("layoutstudio ")
	b.WriteString(Version)
	var extra []string
	if Commit != "" {
		extra = append(extra, Commit)
	}
	if Date != "" {
		extra = append(extra, Date)
	}
	if len(extra) > 0 {
		b.WriteString(" (" + strings.Join(extra, ", ") + ")")
	}
	return b.String()
}
