// ============================================================================
// lumen - Scripting Language Front-End
// ============================================================================
//
// Package:     version
// Description: Central version management for the lumen tools
// Author:      msto63
// Created:     2025-02-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the lumen components
const (
	// Tool version
	Tool = "0.3.0"

	// Language front-end versions
	Lexer  = "0.2.0"
	Parser = "0.2.0"
	AST    = "0.2.0"
)

// Set at build time via -ldflags "-X github.com/msto63/lumen/pkg/core/version.GitCommit=..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "ast":
		return AST
	default:
		return Tool
	}
}

// Info describes the running build
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Tool,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the build information as printed by "lumen version"
func (i Info) String() string {
	return fmt.Sprintf("lumen v%s\n  Git Commit: %s\n  Build Date: %s\n  Go Version: %s\n  OS/Arch:    %s\n",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
