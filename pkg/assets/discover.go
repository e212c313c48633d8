package assets

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/systemstart/eject-blocks/pkg/api"
)

// FindDirectory returns the first of candidates that exists as a directory
// below publicDir, with a trailing separator. It falls back to
// api.DefaultAssetsDirectory when none exists.
func FindDirectory(publicDir string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return api.DefaultAssetsDirectory, nil
	}

	trimmed := make([]string, len(candidates))
	for i, c := range candidates {
		trimmed[i] = strings.Trim(c, "/")
	}

	found, err := globDirs(os.DirFS(publicDir), "{"+strings.Join(trimmed, ",")+"}")
	if err != nil {
		return "", fmt.Errorf("searching asset directories: %w", err)
	}

	for _, c := range trimmed {
		if slices.Contains(found, c) {
			slog.Debug("found asset directory", "publicDir", publicDir, "directory", c)
			return api.NormalizeDirectory(c), nil
		}
	}

	slog.Debug("no asset directory found, using default", "publicDir", publicDir, "candidates", candidates)
	return api.DefaultAssetsDirectory, nil
}

func globDirs(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var dirs []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	return dirs, nil
}
