package steps

import (
	"context"
	"log/slog"

	"github.com/systemstart/eject-blocks/pkg/api"
)

type activateStep struct {
	argv []string
}

// NewActivateStep creates the step that activates the ejected plugin.
// Its failure is reported as a warning: the plugin is on disk either way.
func NewActivateStep(argv []string) Step {
	return &activateStep{argv: argv}
}

func (s *activateStep) Name() string   { return "Activating plugin" }
func (s *activateStep) Status() string { return "using WP-CLI..." }

func (s *activateStep) Run(ctx context.Context, sctx StepContext) (*StepResult, error) {
	result, err := runCommand(ctx, sctx, s.argv)
	if err != nil {
		return nil, api.NewError(api.ActivationFailed, err)
	}

	slog.Debug("plugin activated", "plugin", sctx.Config.Name, "stdout", result.Stdout)
	return &StepResult{}, nil
}
