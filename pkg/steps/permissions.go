package steps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/systemstart/eject-blocks/pkg/api"
)

type permissionsStep struct{}

// NewPermissionsStep creates the step that checks the plugins directory is
// writable and computes the plugin destination.
func NewPermissionsStep() Step {
	return &permissionsStep{}
}

func (s *permissionsStep) Name() string   { return "Verifying permissions" }
func (s *permissionsStep) Status() string { return defaultStatus }

func (s *permissionsStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	if err := VerifyWritable(sctx.PluginsDir); err != nil {
		return nil, api.NewError(api.PermissionDenied, err)
	}

	dest := filepath.Join(sctx.PluginsDir, sctx.Config.Name)
	slog.Debug("plugin destination", "path", dest)
	return &StepResult{Destination: dest}, nil
}

// VerifyWritable checks that dir is a directory new files can be created in.
func VerifyWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("unable to write to %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("unable to write to %s: not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".eject-blocks-*")
	if err != nil {
		return fmt.Errorf("unable to write to %s: %w", dir, err)
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		slog.Warn("failed to close permission probe", "path", name, "error", err)
	}
	if err := os.Remove(name); err != nil {
		slog.Warn("failed to remove permission probe", "path", name, "error", err)
	}
	return nil
}
