// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import (
	"runtime/debug"
)

// Set via -ldflags "-X github.com/HariHaran212/Pawradize-sub000/internal/version.version=v1.2.3".
var (
	version   = "dev"
	gitCommit = ""
	buildTime = ""
)

// Info contains build-time version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"commit,omitempty"`
	BuildTime string `json:"built,omitempty"`
}

// String formats the info for logs, e.g. "v1.2.3 (abc1234)".
func (i Info) String() string {
	if i.GitCommit == "" {
		return i.Version
	}
	return i.Version + " (" + i.GitCommit + ")"
}

// Get returns the linked-in version, falling back to the VCS data the Go
// toolchain embeds when ldflags were not set.
func Get() Info {
	info := Info{Version: version, GitCommit: gitCommit, BuildTime: buildTime}
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

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
