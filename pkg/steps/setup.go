package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/systemstart/eject-blocks/pkg/api"
	"github.com/systemstart/eject-blocks/pkg/console"
)

type setupStep struct{}

// NewSetupStep creates the step that settles the plugin configuration,
// asking the user when running interactively.
func NewSetupStep() Step {
	return &setupStep{}
}

func (s *setupStep) Name() string   { return "Setting up plugin" }
func (s *setupStep) Status() string { return defaultStatus }

func (s *setupStep) Prompts(sctx StepContext) bool { return sctx.Interactive }

func (s *setupStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	cfg := sctx.Config

	if sctx.Interactive {
		var err error
		cfg, err = promptConfig(sctx.Prompt, cfg)
		if err != nil {
			return nil, err
		}
	}

	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, api.NewError(api.InvalidConfig, err)
	}

	return &StepResult{Config: &cfg}, nil
}

func promptConfig(p console.Prompter, cfg api.PluginConfig) (api.PluginConfig, error) {
	name, err := p.Text("Plugin name?", cfg.Name)
	if err != nil {
		return cfg, fmt.Errorf("asking for plugin name: %w", err)
	}

	dir, err := p.Text("Plugin assets location?", cfg.AssetsDirectory)
	if err != nil {
		return cfg, fmt.Errorf("asking for assets location: %w", err)
	}

	files, err := p.Text("Plugin assets?", strings.Join(cfg.AssetFiles, ", "))
	if err != nil {
		return cfg, fmt.Errorf("asking for assets: %w", err)
	}

	cfg.Name = name
	cfg.AssetsDirectory = api.NormalizeDirectory(dir)
	cfg.AssetFiles = api.ParseAssetList(files)
	return cfg, nil
}
