package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ProcessResult is the outcome of an external command that was started.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs external commands.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) (ProcessResult, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run starts argv in dir and waits for it. A non-zero exit status is
// reported through ProcessResult, not as an error.
func (ExecRunner) Run(ctx context.Context, dir string, argv []string) (ProcessResult, error) {
	if len(argv) == 0 {
		return ProcessResult{}, fmt.Errorf("empty command")
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		return ProcessResult{}, fmt.Errorf("%s binary not found in PATH: %w", argv[0], err)
	}

	slog.Info("running command", "dir", dir, "argv", argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ProcessResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("running %s: %w", argv[0], err)
	}
	return result, nil
}

// CommandData is available to command templates.
type CommandData struct {
	BasePath         string
	Name             string
	PluginPath       string
	PluginsDirectory string
}

func newCommandData(sctx StepContext) CommandData {
	return CommandData{
		BasePath:         sctx.BasePath,
		Name:             sctx.Config.Name,
		PluginPath:       sctx.Destination,
		PluginsDirectory: sctx.PluginsDir,
	}
}

// RenderCommand executes every element of argv as a template over data.
func RenderCommand(argv []string, data CommandData) ([]string, error) {
	out := make([]string, 0, len(argv))
	for i, arg := range argv {
		tmpl, err := template.New(fmt.Sprintf("arg%d", i)).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("parsing template: %w", err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template: %w", err)
		}
		out = append(out, buf.String())
	}
	return out, nil
}

// runCommand renders argv and runs it in the theme directory. Launch
// failures and non-zero exits are both returned as errors.
func runCommand(ctx context.Context, sctx StepContext, argv []string) (ProcessResult, error) {
	rendered, err := RenderCommand(argv, newCommandData(sctx))
	if err != nil {
		return ProcessResult{}, fmt.Errorf("rendering command: %w", err)
	}
	if len(rendered) == 0 {
		return ProcessResult{}, fmt.Errorf("empty command")
	}

	result, err := sctx.Runner.Run(ctx, sctx.BasePath, rendered)
	if err != nil {
		return result, err
	}
	if result.ExitCode != 0 {
		return result, fmt.Errorf("%s exited with status %d\nstderr: %s", rendered[0], result.ExitCode, result.Stderr)
	}
	return result, nil
}
