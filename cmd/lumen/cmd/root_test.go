package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	lerror "github.com/msto63/lumen/foundation/core/error"
	"github.com/msto63/lumen/pkg/core/version"
)

// writeConfig creates a quiet configuration so tests never pick up files
// from the working directory or the home directory
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumen.toml")
	if content == "" {
		content = "[general]\nlog_level = \"error\"\n\n[output]\nno_color = true\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func writeScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(append([]string{"--config", writeConfig(t, "")}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestTokensCommand(t *testing.T) {
	stdout, _, err := run(t, "int x = 45;", "tokens", "-")
	if err != nil {
		t.Fatalf("tokens error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), stdout)
	}
	if got := strings.Fields(lines[3]); strings.Join(got, " ") != "1:9 Number 45" {
		t.Errorf("line 4 = %q", lines[3])
	}
	if got := strings.Fields(lines[5]); strings.Join(got, " ") != "1:12 EOF" {
		t.Errorf("line 6 = %q", lines[5])
	}
}

func TestTokensCommand_JSON(t *testing.T) {
	stdout, _, err := run(t, "print 1;", "tokens", "-", "--format", "json")
	if err != nil {
		t.Fatalf("tokens error = %v", err)
	}

	var tokens []map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &tokens); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(tokens) != 4 || tokens[0]["kind"] != "Keyword" || tokens[3]["kind"] != "EOF" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestParseCommand_Formats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"tree", func(t *testing.T, out string) {
			if !strings.HasPrefix(out, "Program @1:1\n  PrintStatement @1:1\n") {
				t.Errorf("tree output = %q", out)
			}
		}},
		{"sexpr", func(t *testing.T, out string) {
			if !strings.HasPrefix(out, "Program([PrintStatement(BinaryExpression(") {
				t.Errorf("sexpr output = %q", out)
			}
		}},
		{"json", func(t *testing.T, out string) {
			var m map[string]interface{}
			if err := json.Unmarshal([]byte(out), &m); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if m["type"] != "Program" {
				t.Errorf("type = %v", m["type"])
			}
		}},
		{"yaml", func(t *testing.T, out string) {
			var m map[string]interface{}
			if err := yaml.Unmarshal([]byte(out), &m); err != nil {
				t.Fatalf("invalid YAML: %v", err)
			}
			if m["type"] != "Program" {
				t.Errorf("type = %v", m["type"])
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, _, err := run(t, "print 1 + 2;", "parse", "-", "--format", tt.format)
			if err != nil {
				t.Fatalf("parse error = %v", err)
			}
			tt.check(t, stdout)
		})
	}
}

func TestParseCommand_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "print 1;", "parse", "-", "--format", "dot")
	if !lerror.HasCode(err, lerror.CodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestParseCommand_Diagnostic(t *testing.T) {
	stdout, stderr, err := run(t, "print 1", "parse", "-")
	if err == nil {
		t.Fatal("expected an error")
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if strings.TrimSpace(stderr) != "<stdin>:1:8: Expect ';' after value." {
		t.Errorf("stderr = %q", stderr)
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(err))
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeScript(t, dir, "good.lum", "function f(a) { return a; }\nprint f(1);\n")
	bad := writeScript(t, dir, "bad.lum", "int x = 1\n")
	writeScript(t, dir, "notes.txt", "not a script")

	stdout, stderr, err := run(t, "", "check", dir)
	if err == nil {
		t.Fatal("expected an error for bad.lum")
	}
	if !strings.Contains(stdout, good+": ok") {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.TrimSpace(stderr) != bad+":2:1: Expect ';' after variable declaration." {
		t.Errorf("stderr = %q", stderr)
	}
	if strings.Contains(stdout+stderr, "notes.txt") {
		t.Error("files without a configured extension must be skipped")
	}
}

func TestCheckCommand_LexicalError(t *testing.T) {
	stdout, stderr, err := run(t, "x ? y;", "check", "-")
	if !lerror.HasCode(err, lerror.CodeLexicalError) {
		t.Errorf("error = %v, want LEXICAL_ERROR", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.TrimSpace(stderr) != "<stdin>:1:3: unexpected character '?'" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCheckCommand_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "check", filepath.Join(t.TempDir(), "missing.lum"))
	if !lerror.HasCode(err, lerror.CodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
	if ExitCode(err) != 3 {
		t.Errorf("ExitCode = %d, want 3", ExitCode(err))
	}
}

func TestKeepCommentsFlag(t *testing.T) {
	stdout, _, err := run(t, "-- hello\nprint 1;", "parse", "-", "--keep-comments", "--format", "sexpr")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.HasPrefix(stdout, "Program([Comment(") {
		t.Errorf("output = %q", stdout)
	}
}

func TestInvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"--config", writeConfig(t, "[output]\nformat = \"dot\"\n"), "parse", "-"})
	root.SetIn(strings.NewReader("print 1;"))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	if !lerror.HasCode(err, lerror.CodeValidationFailed) {
		t.Errorf("error = %v, want VALIDATION_FAILED", err)
	}
	if ExitCode(err) != 2 {
		t.Errorf("ExitCode = %d, want 2", ExitCode(err))
	}
}

func TestLogLevelFlag(t *testing.T) {
	_, stderr, err := run(t, "print 1;", "--log-level", "info", "--log-format", "logfmt", "check", "-")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(stderr, `message="Source checked"`) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestVerboseFlag(t *testing.T) {
	_, stderr, err := run(t, "print 1", "-v", "--log-format", "logfmt", "check", "-")
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{
		`level=debug message="Configuration loaded"`,
		`message="File check failed"`,
		`file="<stdin>"`,
		"<stdin>:1:8: Expect ';' after value.",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr lacks %q:\n%s", want, stderr)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"version"})
	root.SetOut(&stdout)
	if err := root.Execute(); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "lumen v"+version.Tool) {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, 0},
		{"syntax", lerror.New("x").WithCode(lerror.CodeSyntaxError), 1},
		{"config", lerror.New("x").WithCode(lerror.CodeInvalidConfig), 2},
		{"io", lerror.New("x").WithCode(lerror.CodeIOError), 3},
		{"reported", &reportedError{lerror.New("x").WithCode(lerror.CodeLexicalError)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}
