package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"

	"github.com/systemstart/eject-blocks/pkg/api"
)

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

// isolateUserConfig points the user configuration lookup at an empty directory.
func isolateUserConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", dir)
	xdg.Reload()
	return dir
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"startup failure", &exitError{code: exitDotenvError, err: errors.New("bad .env")}, exitDotenvError},
		{"missing assets", &api.Error{Kind: api.MissingAssets, Missing: []string{"a.js"}}, exitMissingAssets},
		{"wrapped kind", fmt.Errorf("outer: %w", api.NewError(api.Cancelled, nil)), exitCancelled},
		{"permission denied", api.NewError(api.PermissionDenied, nil), exitPermissionDenied},
		{"build failed", api.NewError(api.BuildFailed, nil), exitBuildFailed},
		{"missing manifest", api.NewError(api.MissingManifest, nil), exitMissingManifest},
		{"directory", api.NewError(api.DirectoryCreateFailed, nil), exitDirectoryCreateFailed},
		{"invalid config", api.NewError(api.InvalidConfig, nil), exitInvalidConfig},
		{"plain error", errors.New("copy failed"), exitToolErrors},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Distinct(t *testing.T) {
	seen := map[int]api.ErrorKind{}
	for kind, code := range kindExitCodes {
		if code == 0 {
			t.Errorf("%v maps to exit code 0", kind)
		}
		if other, ok := seen[code]; ok {
			t.Errorf("%v and %v share exit code %d", kind, other, code)
		}
		seen[code] = kind
	}
	if _, ok := kindExitCodes[api.ActivationFailed]; ok {
		t.Error("activation failures must not have an exit code")
	}
}

func TestContentDirectory(t *testing.T) {
	themeDir := filepath.FromSlash("/srv/wp-content/themes/sage")

	t.Setenv(contentDirEnv, "")
	if got, want := contentDirectory(themeDir, "", ""), filepath.FromSlash("/srv/wp-content"); got != want {
		t.Errorf("default: got %q, want %q", got, want)
	}
	if got, want := contentDirectory(themeDir, "", "../../custom"), filepath.FromSlash("/srv/wp-content/custom"); got != want {
		t.Errorf("configured: got %q, want %q", got, want)
	}

	t.Setenv(contentDirEnv, "/env/content")
	if got, want := contentDirectory(themeDir, "", "../../custom"), filepath.FromSlash("/env/content"); got != want {
		t.Errorf("environment: got %q, want %q", got, want)
	}
	if got, want := contentDirectory(themeDir, "/flag/content", ""), filepath.FromSlash("/flag/content"); got != want {
		t.Errorf("flag: got %q, want %q", got, want)
	}
}

func TestConfigSources(t *testing.T) {
	userDir := isolateUserConfig(t)
	themeDir := t.TempDir()

	got, err := configSources(themeDir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(themeDir, api.ProjectFilename)}, got); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	writeTestFile(t, userDir, userConfigPath, "plugin:\n  name: user-blocks\n")
	explicit := filepath.Join(t.TempDir(), "extra.yaml")
	writeTestFile(t, filepath.Dir(explicit), "extra.yaml", "")

	got, err = configSources(themeDir, explicit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		filepath.Join(userDir, filepath.FromSlash(userConfigPath)),
		filepath.Join(themeDir, api.ProjectFilename),
		explicit,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigSources_MissingExplicitFile(t *testing.T) {
	isolateUserConfig(t)

	_, err := configSources(t.TempDir(), "/nonexistent/.eject-blocks.yaml")
	if err == nil || !strings.Contains(err.Error(), "reading project file") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestLoadEnvironment(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv(contentDirEnv, "")

	content := t.TempDir()
	themeDir := filepath.Join(content, "themes", "sage")
	writeTestFile(t, themeDir, "style.css", "/*\nTheme Name: Sage\nText Domain: sage\n*/")
	writeTestFile(t, themeDir, "public/js/editor.js", "editor")
	writeTestFile(t, themeDir, api.ProjectFilename, "stub: loader.stub\nbuild:\n  command: [npm, run, build]\n")
	writeTestFile(t, themeDir, "loader.stub", "<?php // DummyThemeName")
	writeTestFile(t, themeDir, dotenvFilename, "EJECT_BLOCKS_TEST_VALUE=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("EJECT_BLOCKS_TEST_VALUE") })

	env, err := loadEnvironment(options{themeDir: themeDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.pluginsDir != filepath.Join(content, "plugins") {
		t.Errorf("unexpected plugins directory %q", env.pluginsDir)
	}
	if env.project.Plugin.AssetsDirectory != "js/" {
		t.Errorf("expected discovered assets directory 'js/', got %q", env.project.Plugin.AssetsDirectory)
	}
	if env.stub != "<?php // DummyThemeName" {
		t.Errorf("unexpected stub %q", env.stub)
	}
	if diff := cmp.Diff([]string{"npm", "run", "build"}, env.project.Build.Command); diff != "" {
		t.Errorf("build command mismatch (-want +got):\n%s", diff)
	}
	if env.theme.Name != "Sage" {
		t.Errorf("expected theme name 'Sage', got %q", env.theme.Name)
	}
	if !env.assets.Exists("js/editor.js") {
		t.Error("expected resolver to find js/editor.js")
	}
	if os.Getenv("EJECT_BLOCKS_TEST_VALUE") != "from-dotenv" {
		t.Error("expected .env to be loaded")
	}
}

func TestLoadEnvironment_Failures(t *testing.T) {
	isolateUserConfig(t)

	tests := []struct {
		name  string
		setup func(t *testing.T) options
		want  int
	}{
		{
			name: "missing theme directory",
			setup: func(t *testing.T) options {
				return options{themeDir: filepath.Join(t.TempDir(), "missing")}
			},
			want: exitThemeDirectoryCheckFailed,
		},
		{
			name: "invalid configuration",
			setup: func(t *testing.T) options {
				dir := t.TempDir()
				writeTestFile(t, dir, api.ProjectFilename, "plugin:\n  name: ../escape\n")
				return options{themeDir: dir}
			},
			want: exitLoadConfigurationFileFailed,
		},
		{
			name: "missing stub",
			setup: func(t *testing.T) options {
				dir := t.TempDir()
				writeTestFile(t, dir, api.ProjectFilename, "stub: missing.stub\n")
				return options{themeDir: dir}
			},
			want: exitLoadStubFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadEnvironment(tt.setup(t))
			if got := exitCode(err); got != tt.want {
				t.Errorf("expected exit code %d, got %d (%v)", tt.want, got, err)
			}
		})
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"defaults", "skip-yarn", "theme-dir", "content-dir", "config", "logging-type", "log-level"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}

	cmd.SetArgs([]string{"--no-such-flag"})
	err := cmd.Execute()
	if got := exitCode(err); got != exitUsage {
		t.Errorf("expected usage exit code, got %d (%v)", got, err)
	}
}
