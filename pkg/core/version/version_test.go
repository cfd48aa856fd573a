package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Tool", Tool},
		{"Lexer", Lexer},
		{"Parser", Parser},
		{"AST", AST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"lexer", Lexer},
		{"parser", Parser},
		{"ast", AST},
		{"unknown", Tool},
		{"", Tool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComponentVersion(tt.name); got != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Tool {
		t.Errorf("Version = %q, want %q", info.Version, Tool)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}

	out := info.String()
	for _, want := range []string{"lumen v" + Tool, "Git Commit: " + GitCommit, "OS/Arch:"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() lacks %q:\n%s", want, out)
		}
	}
}
