package steps

import (
	"context"
	"log/slog"

	"github.com/systemstart/eject-blocks/pkg/api"
)

type buildStep struct {
	argv []string
}

// NewBuildStep creates the step that builds the theme assets for production.
func NewBuildStep(argv []string) Step {
	return &buildStep{argv: argv}
}

func (s *buildStep) Name() string   { return "Building assets for production" }
func (s *buildStep) Status() string { return "running Yarn..." }

func (s *buildStep) Run(ctx context.Context, sctx StepContext) (*StepResult, error) {
	result, err := runCommand(ctx, sctx, s.argv)
	if err != nil {
		return nil, api.NewError(api.BuildFailed, err)
	}

	slog.Debug("build finished", "stdout", result.Stdout)
	return &StepResult{}, nil
}
