package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	lerror "github.com/msto63/lumen/foundation/core/error"
	llog "github.com/msto63/lumen/foundation/core/log"
	"github.com/msto63/lumen/foundation/lang"
	"github.com/msto63/lumen/pkg/core/config"
	"github.com/msto63/lumen/pkg/core/logging"
)

// app holds the state shared by all subcommands of one invocation
type app struct {
	cfgFile      string
	logLevel     string
	logFormat    string
	verbose      bool
	keepComments bool

	cfg    *config.Config
	logger *llog.Logger
	engine *lang.Engine
	styles styles
}

type styles struct {
	diag lipgloss.Style
	ok   lipgloss.Style
	file lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{diag: plain, ok: plain, file: plain}
	}
	return styles{
		diag: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		ok:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		file: lipgloss.NewStyle().Bold(true),
	}
}

// reportedError marks failures whose diagnostics were already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// NewRootCmd builds the lumen command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "lumen",
		Short: "lumen - front end for a small scripting language",
		Long: `lumen tokenizes and parses scripts of a small procedural language
and shows the resulting token streams and syntax trees.

Commands:
  tokens   - list the tokens of a script
  parse    - print the syntax tree of a script
  check    - report the first lexical or syntax error per file
  repl     - interactive front-end session
  version  - show build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $LUMEN_CONFIG, ./lumen.toml, ./configs/lumen.toml, ~/.config/lumen/config.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (text, json, console, logfmt)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output, implies --log-level debug")
	flags.BoolVar(&a.keepComments, "keep-comments", false, "emit comment tokens and Comment nodes")

	rootCmd.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and prints errors that no command reported
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an error onto the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return lerror.GetCode(err).ExitCode()
}

// setup loads the configuration, applies flag overrides and creates the
// logger and the engine
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.Load(a.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.General.LogLevel = a.logLevel
	}
	if a.verbose {
		cfg.General.LogLevel = llog.VerboseLevel().String()
	}
	if a.logFormat != "" {
		cfg.General.LogFormat = a.logFormat
	}
	if a.keepComments {
		cfg.Compiler.KeepComments = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.NewLogger(logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		Output:      cmd.ErrOrStderr(),
	})
	a.engine = lang.New(lang.Options{
		Logger:         a.logger,
		MaxInputLength: cfg.Compiler.MaxInputLength,
		KeepComments:   cfg.Compiler.KeepComments,
	})
	a.styles = newStyles(cfg.Output.NoColor)

	a.logger.Debug("Configuration loaded", llog.Fields{
		"path":   cfg.Path(),
		"format": cfg.Output.Format,
	})
	return nil
}

// readSource reads a script file, or standard input for "-"
func readSource(cmd *cobra.Command, path string) (string, error) {
	const op = "cmd.readSource"

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		code := lerror.CodeIOError
		if os.IsNotExist(err) {
			code = lerror.CodeNotFound
		}
		return "", lerror.Wrap(err, "failed to read source").
			WithCode(code).
			WithOperation(op).
			WithDetail("path", path)
	}
	return string(data), nil
}

// displayName is the file name used in diagnostics
func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// report prints err as "file:line:col: message" when it carries a
// position, otherwise as "file: error"
func (a *app) report(w io.Writer, path string, err error) {
	var line string
	if d, ok := lang.Diagnose(err); ok {
		line = fmt.Sprintf("%s:%s: %s", displayName(path), d.Pos, d.Message)
	} else {
		line = fmt.Sprintf("%s: %v", displayName(path), err)
	}
	fmt.Fprintln(w, a.styles.diag.Render(line))
}

// expandPaths replaces directories by the files they contain that carry
// one of the configured extensions, sorted by name
func (a *app) expandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if p == "-" || err != nil || !info.IsDir() {
			out = append(out, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, lerror.Wrap(err, "failed to read directory").
				WithCode(lerror.CodeIOError).
				WithOperation("cmd.expandPaths").
				WithDetail("path", p)
		}
		for _, e := range entries {
			if !e.IsDir() && a.hasExtension(e.Name()) {
				out = append(out, filepath.Join(p, e.Name()))
			}
		}
	}
	return out, nil
}

func (a *app) hasExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range a.cfg.Watch.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
