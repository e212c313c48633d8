package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/systemstart/eject-blocks/pkg/api"
	"github.com/systemstart/eject-blocks/pkg/console"
	"github.com/systemstart/eject-blocks/pkg/processing"
	"github.com/systemstart/eject-blocks/pkg/steps"
)

var version = "dev"

const (
	_ = iota
	exitUsage
	exitDotenvError
	exitLoadConfigurationFileFailed
	exitThemeDirectoryCheckFailed
	exitAssetsDiscoveryFailed
	exitLoadThemeFailed
	exitLoadStubFailed
	exitToolErrors
	exitPermissionDenied
	exitBuildFailed
	exitMissingAssets
	exitMissingManifest
	exitDirectoryCreateFailed
	exitCancelled
	exitInvalidConfig
)

var kindExitCodes = map[api.ErrorKind]int{
	api.PermissionDenied:      exitPermissionDenied,
	api.BuildFailed:           exitBuildFailed,
	api.MissingAssets:         exitMissingAssets,
	api.MissingManifest:       exitMissingManifest,
	api.DirectoryCreateFailed: exitDirectoryCreateFailed,
	api.Cancelled:             exitCancelled,
	api.InvalidConfig:         exitInvalidConfig,
}

// exitError carries the process exit code of a startup failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(code int, msg string, err error, args ...any) error {
	slog.Error(msg, append(args, "error", err)...)
	return &exitError{code: code, err: fmt.Errorf("%s: %w", msg, err)}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	if code, ok := kindExitCodes[api.KindOf(err)]; ok {
		return code
	}
	return exitToolErrors
}

type options struct {
	defaults    bool
	skipYarn    bool
	themeDir    string
	contentDir  string
	configFile  string
	loggingType string
	logLevel    string
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "eject-blocks",
		Short: "Eject the theme's editor blocks into a standalone plugin",
		Long: "Copies the editor assets built by the active theme into a WordPress plugin,\n" +
			"generates its loader and activates it with WP-CLI.",
		Version:           version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate("{{ .Version }}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitUsage, err: err}
	})

	flags := cmd.Flags()
	flags.BoolVar(&opts.defaults, "defaults", false, "use the configured defaults without asking")
	flags.BoolVar(&opts.skipYarn, "skip-yarn", false, "do not build the assets before ejecting")
	flags.StringVar(&opts.themeDir, "theme-dir", "", "theme directory (default: current directory)")
	flags.StringVar(&opts.contentDir, "content-dir", "", "wp-content directory (default: $WP_CONTENT_DIR or two levels above the theme)")
	flags.StringVar(&opts.configFile, "config", "", "configuration file applied after the theme's "+api.ProjectFilename)
	flags.StringVar(&opts.loggingType, "logging-type", "tint", "logging type: json, text or tint")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "logging level: debug, info, warn, error")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()

	var e *exitError
	if errors.As(err, &e) && e.code == exitUsage {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func run(ctx context.Context, opts options) error {
	out := console.NewStdout()

	if err := initLogging(opts); err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	env, err := loadEnvironment(opts)
	if err != nil {
		return err
	}

	out.Logo(version)

	summary, err := processing.Run(ctx, processing.Options{
		Config:          env.project.Plugin,
		Interactive:     !opts.defaults,
		SkipBuild:       opts.skipYarn,
		BasePath:        env.themeDir,
		PluginsDir:      env.pluginsDir,
		Stub:            env.stub,
		BuildCommand:    env.project.Build.Command,
		ActivateCommand: env.project.Activate.Command,
		Assets:          env.assets,
		Theme:           env.theme,
		Prompt:          console.NewPrompter(),
		Runner:          steps.ExecRunner{},
		Reporter:        out,
	})
	if err != nil {
		out.Error(err)
		return err
	}

	for _, w := range summary.Warnings {
		out.Warn(w)
	}

	if err := out.Summary(summary.Destination, summary.Config.Name, env.theme.Name, summary.Files); err != nil {
		slog.Warn("failed to render summary", "error", err)
	}

	slog.Info("done", "destination", summary.Destination)
	return nil
}
