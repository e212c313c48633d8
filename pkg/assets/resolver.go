// Package assets maps logical asset names to the files produced by the theme build.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ManifestFilename is the build manifest written by bud, webpack or Laravel Mix.
const ManifestFilename = "manifest.json"

// Resolver resolves asset names below a public directory.
type Resolver struct {
	publicDir string
	manifest  map[string]string
}

// NewResolver creates a Resolver for publicDir, reading its build manifest if present.
func NewResolver(publicDir string) (*Resolver, error) {
	abs, err := filepath.Abs(publicDir)
	if err != nil {
		return nil, fmt.Errorf("resolving public directory: %w", err)
	}

	manifest, err := loadManifest(filepath.Join(abs, ManifestFilename))
	if err != nil {
		return nil, err
	}

	slog.Debug("asset resolver ready", "publicDir", abs, "manifestEntries", len(manifest))
	return &Resolver{publicDir: abs, manifest: manifest}, nil
}

// Path returns the absolute path of the built file for name.
func (r *Resolver) Path(name string) string {
	key := normalizeKey(name)
	if mapped, ok := r.manifest[key]; ok {
		key = mapped
	}
	return filepath.Join(r.publicDir, filepath.FromSlash(key))
}

// Exists reports whether the built file for name is a regular file.
func (r *Resolver) Exists(name string) bool {
	info, err := os.Stat(r.Path(name))
	return err == nil && info.Mode().IsRegular()
}

func loadManifest(filename string) (map[string]string, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading asset manifest: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing asset manifest %s: %w", filename, err)
	}

	manifest := make(map[string]string, len(raw))
	for k, v := range raw {
		manifest[normalizeKey(k)] = normalizeKey(v)
	}
	return manifest, nil
}

// normalizeKey strips the leading slash and the cache-busting query string
// Laravel Mix adds to manifest entries.
func normalizeKey(s string) string {
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimLeft(filepath.ToSlash(s), "/")
}
