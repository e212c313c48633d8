package steps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/systemstart/eject-blocks/pkg/api"
	"github.com/systemstart/eject-blocks/pkg/console"
)

const overwriteQuestion = "A plugin containing block assets already exists. Do you wish to overwrite it?"

type createDirectoryStep struct{}

// NewCreateDirectoryStep creates the step that (re)creates the plugin directory.
func NewCreateDirectoryStep() Step {
	return &createDirectoryStep{}
}

func (s *createDirectoryStep) Name() string   { return "Creating plugin directory" }
func (s *createDirectoryStep) Status() string { return defaultStatus }

func (s *createDirectoryStep) Prompts(sctx StepContext) bool { return sctx.Interactive }

func (s *createDirectoryStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	if err := CreateDirectory(sctx.Destination, sctx.Interactive, sctx.Prompt); err != nil {
		return nil, err
	}
	return &StepResult{}, nil
}

// CreateDirectory creates dest as an empty directory. An existing directory
// is replaced, after confirmation when interactive; declining leaves it as is.
func CreateDirectory(dest string, interactive bool, prompt console.Prompter) error {
	info, err := os.Lstat(dest)
	switch {
	case err == nil && info.IsDir():
		if interactive {
			ok, err := prompt.Confirm(overwriteQuestion)
			if err != nil {
				return fmt.Errorf("asking for overwrite confirmation: %w", err)
			}
			if !ok {
				return api.NewError(api.Cancelled, errors.New("the operation has been cancelled"))
			}
		}
		slog.Info("removing existing plugin directory", "path", dest)
		if err := os.RemoveAll(dest); err != nil {
			return api.NewError(api.DirectoryCreateFailed, fmt.Errorf("removing %s: %w", dest, err))
		}
	case err == nil:
		return api.NewError(api.DirectoryCreateFailed, fmt.Errorf("%s exists and is not a directory", dest))
	case !errors.Is(err, fs.ErrNotExist):
		return api.NewError(api.DirectoryCreateFailed, fmt.Errorf("checking %s: %w", dest, err))
	}

	if err := os.Mkdir(dest, 0o755); err != nil {
		return api.NewError(api.DirectoryCreateFailed, fmt.Errorf("creating %s: %w", dest, err))
	}
	return nil
}
