package steps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type ejectAssetsStep struct{}

// NewEjectAssetsStep creates the step that copies the editor assets.
func NewEjectAssetsStep() Step {
	return &ejectAssetsStep{}
}

func (s *ejectAssetsStep) Name() string   { return "Ejecting plugin assets" }
func (s *ejectAssetsStep) Status() string { return defaultStatus }

func (s *ejectAssetsStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	for _, f := range sctx.Config.AssetFiles {
		if err := ejectFile(sctx, f); err != nil {
			return nil, err
		}
	}
	return &StepResult{}, nil
}

type ejectManifestStep struct{}

// NewEjectManifestStep creates the step that copies the asset manifest.
func NewEjectManifestStep() Step {
	return &ejectManifestStep{}
}

func (s *ejectManifestStep) Name() string   { return "Ejecting plugin asset manifest" }
func (s *ejectManifestStep) Status() string { return defaultStatus }

func (s *ejectManifestStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	if err := ejectFile(sctx, sctx.Config.ManifestFile); err != nil {
		return nil, err
	}
	return &StepResult{}, nil
}

type ejectWebpackManifestStep struct{}

// NewEjectWebpackManifestStep creates the step that copies the webpack
// manifest. It only runs when the manifest was found.
func NewEjectWebpackManifestStep() Step {
	return &ejectWebpackManifestStep{}
}

func (s *ejectWebpackManifestStep) Name() string   { return "Ejecting plugin webpack manifest" }
func (s *ejectWebpackManifestStep) Status() string { return defaultStatus }

func (s *ejectWebpackManifestStep) Enabled(sctx StepContext) bool { return sctx.WebpackManifest }

func (s *ejectWebpackManifestStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	if err := ejectFile(sctx, sctx.Config.JSManifestFile); err != nil {
		return nil, err
	}
	return &StepResult{}, nil
}

// ejectFile copies the built file for name into the plugin directory,
// keeping its base name.
func ejectFile(sctx StepContext, name string) error {
	src := sctx.Assets.Path(sctx.Config.AssetPath(name))
	dst := filepath.Join(sctx.Destination, filepath.Base(name))

	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("ejecting %s: %w", name, err)
	}

	slog.Debug("ejected file", "source", src, "target", dst)
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
