package steps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/systemstart/eject-blocks/pkg/api"
)

// writeTestFile writes content to a file in dir, failing the test on error.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// dirResolver resolves asset names directly below a directory.
type dirResolver string

func (d dirResolver) Path(name string) string {
	return filepath.Join(string(d), filepath.FromSlash(name))
}

func (d dirResolver) Exists(name string) bool {
	info, err := os.Stat(d.Path(name))
	return err == nil && info.Mode().IsRegular()
}

type fakePrompter struct {
	answers  map[string]string
	confirm  bool
	asked    []string
	confirms int
}

func (p *fakePrompter) Text(question, def string) (string, error) {
	p.asked = append(p.asked, question)
	if a, ok := p.answers[question]; ok {
		return a, nil
	}
	return def, nil
}

func (p *fakePrompter) Confirm(string) (bool, error) {
	p.confirms++
	return p.confirm, nil
}

type fakeRunner struct {
	result ProcessResult
	err    error
	calls  [][]string
	dirs   []string
}

func (r *fakeRunner) Run(_ context.Context, dir string, argv []string) (ProcessResult, error) {
	r.calls = append(r.calls, argv)
	r.dirs = append(r.dirs, dir)
	return r.result, r.err
}

// newPublicDir creates a public directory with the default build output.
func newPublicDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "scripts/editor.js", "editor")
	writeTestFile(t, dir, "scripts/manifest.asset.php", "<?php return [];")
	return dir
}

func testContext(t *testing.T, publicDir string) StepContext {
	t.Helper()
	plugins := t.TempDir()
	return StepContext{
		Config:      api.DefaultPluginConfig(),
		BasePath:    t.TempDir(),
		PluginsDir:  plugins,
		Destination: filepath.Join(plugins, api.DefaultPluginName),
		Assets:      dirResolver(publicDir),
		Prompt:      &fakePrompter{},
		Runner:      &fakeRunner{},
	}
}
