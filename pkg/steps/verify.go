package steps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/systemstart/eject-blocks/pkg/api"
)

// MissingAssets returns, in configuration order, the asset files that do
// not resolve to a built file.
func MissingAssets(r AssetResolver, cfg api.PluginConfig) []string {
	var missing []string
	for _, f := range cfg.AssetFiles {
		if !r.Exists(cfg.AssetPath(f)) {
			missing = append(missing, f)
		}
	}
	return missing
}

type verifyAssetsStep struct{}

// NewVerifyAssetsStep creates the step that checks every editor asset was built.
func NewVerifyAssetsStep() Step {
	return &verifyAssetsStep{}
}

func (s *verifyAssetsStep) Name() string   { return "Verifying editor assets" }
func (s *verifyAssetsStep) Status() string { return defaultStatus }

func (s *verifyAssetsStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	if missing := MissingAssets(sctx.Assets, sctx.Config); len(missing) > 0 {
		return nil, &api.Error{Kind: api.MissingAssets, Missing: missing}
	}
	return &StepResult{}, nil
}

type verifyManifestStep struct{}

// NewVerifyManifestStep creates the step that checks the asset manifest was built.
func NewVerifyManifestStep() Step {
	return &verifyManifestStep{}
}

func (s *verifyManifestStep) Name() string   { return "Verifying editor manifest" }
func (s *verifyManifestStep) Status() string { return defaultStatus }

func (s *verifyManifestStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	name := sctx.Config.AssetPath(sctx.Config.ManifestFile)
	if !sctx.Assets.Exists(name) {
		return nil, api.NewError(api.MissingManifest, fmt.Errorf("asset manifest missing: %s", name))
	}
	return &StepResult{}, nil
}

type checkWebpackManifestStep struct{}

// NewCheckWebpackManifestStep creates the advisory webpack manifest check.
func NewCheckWebpackManifestStep() Step {
	return &checkWebpackManifestStep{}
}

func (s *checkWebpackManifestStep) Name() string   { return "Checking for webpack manifest" }
func (s *checkWebpackManifestStep) Status() string { return defaultStatus }

func (s *checkWebpackManifestStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	name := sctx.Config.AssetPath(sctx.Config.JSManifestFile)
	if !sctx.Assets.Exists(name) {
		slog.Debug("no webpack manifest", "path", name)
		return &StepResult{Failed: true}, nil
	}
	return &StepResult{WebpackManifest: true}, nil
}
