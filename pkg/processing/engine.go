package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/systemstart/eject-blocks/pkg/api"
	"github.com/systemstart/eject-blocks/pkg/console"
	"github.com/systemstart/eject-blocks/pkg/steps"
	"github.com/systemstart/eject-blocks/pkg/theme"
)

// Reporter renders the progress of each step.
type Reporter interface {
	Start(title, status string)
	Finish(title string, outcome console.Outcome)
}

// Options configures an ejection run.
type Options struct {
	Config      api.PluginConfig
	Interactive bool
	SkipBuild   bool

	BasePath        string
	PluginsDir      string
	Stub            string
	BuildCommand    []string
	ActivateCommand []string

	Assets   steps.AssetResolver
	Theme    theme.Metadata
	Prompt   console.Prompter
	Runner   steps.Runner
	Reporter Reporter
}

// Summary describes a finished ejection.
type Summary struct {
	Config      api.PluginConfig
	Destination string
	Files       []api.FileReport
	Warnings    []error
}

// Run executes the ejection steps in order and stops at the first fatal error.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	sctx := steps.StepContext{
		Config:      opts.Config,
		Interactive: opts.Interactive,
		BasePath:    opts.BasePath,
		PluginsDir:  opts.PluginsDir,
		Stub:        opts.Stub,
		Assets:      opts.Assets,
		Theme:       opts.Theme,
		Prompt:      opts.Prompt,
		Runner:      opts.Runner,
	}

	plan := steps.Plan(steps.PlanOptions{
		SkipBuild:       opts.SkipBuild,
		BuildCommand:    opts.BuildCommand,
		ActivateCommand: opts.ActivateCommand,
	})

	var warnings []error
	for _, step := range plan {
		if c, ok := step.(steps.Conditional); ok && !c.Enabled(sctx) {
			slog.Debug("skipping step", "step", step.Name())
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, &api.Error{Kind: api.Cancelled, Step: step.Name(), Err: err}
		}

		warning, err := runStep(ctx, step, &sctx, opts.Reporter)
		if err != nil {
			return nil, err
		}
		if warning != nil {
			warnings = append(warnings, warning)
		}
	}

	files, err := Summarize(sctx.Destination)
	if err != nil {
		return nil, fmt.Errorf("summarizing plugin: %w", err)
	}

	return &Summary{
		Config:      sctx.Config,
		Destination: sctx.Destination,
		Files:       files,
		Warnings:    warnings,
	}, nil
}

// runStep runs a single step and applies its result to sctx. Non-fatal
// errors are returned as the warning. A step that fails because ctx was
// cancelled is reported as cancelled whatever its own error kind.
func runStep(ctx context.Context, step steps.Step, sctx *steps.StepContext, r Reporter) (warning, err error) {
	name := step.Name()
	slog.Info("running step", "step", name)

	p, prompts := step.(steps.Prompting)
	prompts = prompts && p.Prompts(*sctx)
	if !prompts {
		r.Start(name, step.Status())
	}

	result, err := step.Run(ctx, *sctx)
	if prompts {
		r.Start(name, step.Status())
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.Finish(name, console.Failure)
			return nil, &api.Error{Kind: api.Cancelled, Step: name, Err: ctxErr}
		}
		if !api.IsFatal(err) {
			slog.Warn("step finished with a warning", "step", name, "error", err)
			r.Finish(name, console.Warning)
			return withStep(err, name), nil
		}
		r.Finish(name, console.Failure)
		return nil, withStep(err, name)
	}

	if result == nil {
		r.Finish(name, console.Success)
		return nil, nil
	}

	if result.Failed {
		r.Finish(name, console.Failure)
	} else {
		r.Finish(name, console.Success)
	}

	if result.Config != nil {
		sctx.Config = *result.Config
	}
	if result.Destination != "" {
		sctx.Destination = result.Destination
	}
	if result.WebpackManifest {
		sctx.WebpackManifest = true
	}
	return nil, nil
}

func withStep(err error, name string) error {
	var e *api.Error
	if errors.As(err, &e) {
		if e.Step == "" {
			e.Step = name
		}
		return err
	}
	return fmt.Errorf("step %q failed: %w", name, err)
}
