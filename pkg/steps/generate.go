package steps

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/systemstart/eject-blocks/pkg/api"
)

// DefaultStub is the plugin loader template shipped with the binary.
//
//go:embed stubs/plugin.stub
var DefaultStub string

// Placeholders replaced in the loader stub.
const (
	TokenThemeName  = "DummyThemeName"
	TokenThemeURI   = "DummyThemeUri"
	TokenAuthorName = "DummyAuthorName"
	TokenAuthorURI  = "DummyAuthorUri"
	TokenTextDomain = "DummyTextDomain"
	TokenScripts    = "DummyScripts"
	TokenManifest   = "DummyManifest"
)

// LoaderValues are substituted for the stub placeholders.
type LoaderValues struct {
	ThemeName  string
	ThemeURI   string
	AuthorName string
	AuthorURI  string
	TextDomain string
	Scripts    string
	Manifest   string
}

// RenderLoader replaces the placeholders of stub in a single pass, so values
// that contain a placeholder are left alone.
func RenderLoader(stub string, v LoaderValues) string {
	return strings.NewReplacer(
		TokenThemeName, v.ThemeName,
		TokenThemeURI, v.ThemeURI,
		TokenAuthorName, v.AuthorName,
		TokenAuthorURI, v.AuthorURI,
		TokenTextDomain, v.TextDomain,
		TokenScripts, v.Scripts,
		TokenManifest, v.Manifest,
	).Replace(stub)
}

var phpQuote = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// ScriptsLiteral renders files as the elements of a PHP array literal,
// e.g. 'editor.js', 'blocks.js'.
func ScriptsLiteral(files []string) string {
	quoted := make([]string, len(files))
	for i, f := range files {
		quoted[i] = "'" + phpQuote.Replace(f) + "'"
	}
	return strings.Join(quoted, ", ")
}

type generateLoaderStep struct{}

// NewGenerateLoaderStep creates the step that writes plugin.php.
func NewGenerateLoaderStep() Step {
	return &generateLoaderStep{}
}

func (s *generateLoaderStep) Name() string   { return "Generating plugin loader" }
func (s *generateLoaderStep) Status() string { return defaultStatus }

func (s *generateLoaderStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	stub := sctx.Stub
	if stub == "" {
		stub = DefaultStub
	}

	out := RenderLoader(stub, LoaderValues{
		ThemeName:  sctx.Theme.Name,
		ThemeURI:   sctx.Theme.URI,
		AuthorName: sctx.Theme.Author,
		AuthorURI:  sctx.Theme.AuthorURI,
		TextDomain: sctx.Theme.TextDomain,
		Scripts:    ScriptsLiteral(sctx.Config.AssetFiles),
		Manifest:   sctx.Config.ManifestFile,
	})

	outPath := filepath.Join(sctx.Destination, api.LoaderFilename)
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return nil, fmt.Errorf("writing plugin loader: %w", err)
	}

	slog.Info("generated plugin loader", "output", outPath)
	return &StepResult{}, nil
}
