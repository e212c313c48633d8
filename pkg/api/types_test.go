package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeDirectory(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"scripts":   "scripts/",
		"scripts/":  "scripts/",
		"scripts//": "scripts/",
		" js ":      "js/",
		"a/b":       "a/b/",
	}
	for in, want := range tests {
		if got := NormalizeDirectory(in); got != want {
			t.Errorf("NormalizeDirectory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAssetList(t *testing.T) {
	got := ParseAssetList(" editor.js, blocks.js,,  ")
	if diff := cmp.Diff([]string{"editor.js", "blocks.js"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := ParseAssetList(""); len(got) != 0 {
		t.Errorf("expected no assets, got %v", got)
	}
}

func TestAssetPath(t *testing.T) {
	c := DefaultPluginConfig()
	if got := c.AssetPath("editor.js"); got != "scripts/editor.js" {
		t.Errorf("expected 'scripts/editor.js', got %q", got)
	}
	if got := c.AssetPath("scripts/editor.js"); got != "scripts/editor.js" {
		t.Errorf("expected prefix not to be doubled, got %q", got)
	}
}

func TestDefaultPluginConfig_IsolatedSlice(t *testing.T) {
	c := DefaultPluginConfig()
	c.AssetFiles[0] = "changed.js"
	if DefaultAssetFiles[0] != "editor.js" {
		t.Fatalf("modifying a config changed the defaults: %v", DefaultAssetFiles)
	}
}

func TestNormalized(t *testing.T) {
	c := PluginConfig{
		Name:            " blocks ",
		AssetsDirectory: "js",
		AssetFiles:      []string{" a.js", "", "b.js "},
		ManifestFile:    "m.php",
		JSManifestFile:  "m.js",
	}
	want := PluginConfig{
		Name:            "blocks",
		AssetsDirectory: "js/",
		AssetFiles:      []string{"a.js", "b.js"},
		ManifestFile:    "m.php",
		JSManifestFile:  "m.js",
	}
	if diff := cmp.Diff(want, c.Normalized()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestError(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("running: %w", &Error{Kind: MissingAssets, Step: "Verifying editor assets", Missing: []string{"a.js", "b.js"}, Err: base})

	if got := KindOf(err); got != MissingAssets {
		t.Errorf("expected MissingAssets, got %v", got)
	}
	if !errors.Is(err, base) {
		t.Error("expected wrapped error to be reachable")
	}
	want := "running: Verifying editor assets: missing assets: a.js, b.js: boom"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("x"), true},
		{"activation", NewError(ActivationFailed, nil), false},
		{"wrapped activation", fmt.Errorf("w: %w", NewError(ActivationFailed, nil)), false},
		{"cancelled", NewError(Cancelled, nil), true},
		{"build", NewError(BuildFailed, errors.New("exit 1")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorKindString(t *testing.T) {
	if PermissionDenied.String() != "permission denied" {
		t.Errorf("unexpected name %q", PermissionDenied.String())
	}
	if ErrorKind(99).String() != "ErrorKind(99)" {
		t.Errorf("unexpected name %q", ErrorKind(99).String())
	}
}
