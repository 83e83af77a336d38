// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "runtime/debug"

// Set via -ldflags "-X github.com/olegiv/bandsite/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info contains build-time version information.
type Info struct {
	Version   string `json:"version"`    // e.g. "v1.2.3"
	GitCommit string `json:"git_commit"` // short hash
	BuildTime string `json:"build_time"` // RFC3339
}

// Current returns the linked-in version. When no commit was injected it
// falls back to the VCS data the Go toolchain embeds.
func Current() Info {
	info := Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
	if info.GitCommit != "" {
		return info
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = shortCommit(s.Value)
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// String formats the info for -version output.
func (i Info) String() string {
	s := i.Version
	if i.GitCommit != "" {
		s += " (" + i.GitCommit + ")"
	}
	if i.BuildTime != "" {
		s += " built " + i.BuildTime
	}
	return s
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
