package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	lerror "github.com/msto63/lumen/foundation/core/error"
	llog "github.com/msto63/lumen/foundation/core/log"
	"github.com/msto63/lumen/internal/watch"
)

func newCheckCmd(a *app) *cobra.Command {
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "check FILE|DIR|-...",
		Short: "Report the first lexical or syntax error per file",
		Long: `Tokenizes and parses every given script and prints one diagnostic
per failing file as file:line:column: message. Directories are expanded
to the files with a configured extension.

With --watch the files are checked again whenever they change.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.expandPaths(args)
			if err != nil {
				return err
			}

			firstErr := a.checkAll(cmd, paths)
			if !watchMode {
				return firstErr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "check again whenever a file changes")
	return cmd
}

// checkAll checks every path and returns the first failure
func (a *app) checkAll(cmd *cobra.Command, paths []string) error {
	var firstErr error
	for _, path := range paths {
		if err := a.checkFile(cmd, path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// checkFile checks one file and prints its outcome
func (a *app) checkFile(cmd *cobra.Command, path string) error {
	source, err := readSource(cmd, path)
	if err == nil {
		_, err = a.engine.Check(source)
	}
	if err != nil {
		a.logger.Debug("File check failed", llog.Field("file", displayName(path)).Merge(llog.Err(err)))
		a.report(cmd.ErrOrStderr(), path, err)
		return &reportedError{err}
	}

	a.printOK(cmd.OutOrStdout(), path)
	return nil
}

func (a *app) printOK(w io.Writer, path string) {
	fmt.Fprintf(w, "%s: %s\n", a.styles.file.Render(displayName(path)), a.styles.ok.Render("ok"))
}

// watch re-checks changed files until ctx is done
func (a *app) watch(ctx context.Context, cmd *cobra.Command, args []string) error {
	w := watch.New(watch.Options{
		Debounce:   a.cfg.Watch.Debounce.Duration,
		Extensions: a.cfg.Watch.Extensions,
		Logger:     a.logger,
	}, func(ev watch.Event) {
		if ev.Op == watch.Removed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: removed\n", a.styles.file.Render(ev.Path))
			return
		}
		a.checkFile(cmd, ev.Path)
	})

	for _, arg := range args {
		if arg == "-" {
			continue
		}
		if err := w.Add(arg); err != nil {
			return lerror.Wrap(err, "failed to watch path").
				WithCode(lerror.CodeWatchError).
				WithOperation("cmd.watch").
				WithDetail("path", arg)
		}
	}

	if err := w.Start(ctx); err != nil {
		return lerror.Wrap(err, "failed to start watcher").
			WithCode(lerror.CodeWatchError).
			WithOperation("cmd.watch")
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d path(s), press Ctrl+C to stop\n", len(args))

	<-ctx.Done()
	w.Stop()
	return nil
}
