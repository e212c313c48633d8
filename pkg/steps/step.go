package steps

import (
	"context"

	"github.com/systemstart/eject-blocks/pkg/api"
	"github.com/systemstart/eject-blocks/pkg/console"
	"github.com/systemstart/eject-blocks/pkg/theme"
)

// AssetResolver maps asset paths relative to the public directory to built files.
type AssetResolver interface {
	Exists(name string) bool
	Path(name string) string
}

// StepContext provides the runtime context for a step.
type StepContext struct {
	Config      api.PluginConfig
	Interactive bool

	BasePath        string // theme directory
	PluginsDir      string
	Destination     string // set once the permission check passed
	WebpackManifest bool   // set by the webpack manifest check

	Stub   string // loader stub, DefaultStub when empty
	Assets AssetResolver
	Theme  theme.Metadata
	Prompt console.Prompter
	Runner Runner
}

// StepResult holds the output of a step.
type StepResult struct {
	Config          *api.PluginConfig // setup only
	Destination     string
	WebpackManifest bool
	Failed          bool // shown as failed without stopping the pipeline
}

// Step is the interface all pipeline steps implement.
type Step interface {
	Name() string
	Status() string // shown while the step runs
	Run(ctx context.Context, sctx StepContext) (*StepResult, error)
}

// Conditional is implemented by steps that only run in some situations.
// Disabled steps are skipped without being shown.
type Conditional interface {
	Enabled(sctx StepContext) bool
}

// Prompting is implemented by steps that may ask the user questions. Their
// progress line is shown once the answers are in.
type Prompting interface {
	Prompts(sctx StepContext) bool
}

const defaultStatus = "..."
