// Package theme reads the metadata a WordPress theme declares in style.css.
package theme

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	StylesheetFilename = "style.css"

	// WordPress only looks at the start of the file for headers.
	headerReadLimit = 8 * 1024
)

// Metadata holds the theme headers used by the plugin loader.
type Metadata struct {
	Name       string
	URI        string
	Author     string
	AuthorURI  string
	TextDomain string
}

var headerFields = []struct {
	key string
	set func(m *Metadata, v string)
}{
	{"Theme Name", func(m *Metadata, v string) { m.Name = v }},
	{"Theme URI", func(m *Metadata, v string) { m.URI = v }},
	{"Author", func(m *Metadata, v string) { m.Author = v }},
	{"Author URI", func(m *Metadata, v string) { m.AuthorURI = v }},
	{"Text Domain", func(m *Metadata, v string) { m.TextDomain = v }},
}

var headerPatterns = compileHeaderPatterns()

func compileHeaderPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(headerFields))
	for i, f := range headerFields {
		patterns[i] = regexp.MustCompile(`(?im)^[ \t/*#@]*` + regexp.QuoteMeta(f.key) + `:(.*)$`)
	}
	return patterns
}

var commentCloser = regexp.MustCompile(`\s*(?:\*/|\?>).*`)

// Load reads style.css from themeDir. A missing stylesheet is not an error:
// the directory name is used for the name and text domain instead.
func Load(themeDir string) (Metadata, error) {
	abs, err := filepath.Abs(themeDir)
	if err != nil {
		return Metadata{}, fmt.Errorf("resolving theme directory: %w", err)
	}

	f, err := os.Open(filepath.Join(abs, StylesheetFilename))
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("theme has no stylesheet, using directory name", "dir", abs)
		return withFallbacks(Metadata{}, filepath.Base(abs)), nil
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("opening theme stylesheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	head, err := io.ReadAll(io.LimitReader(f, headerReadLimit))
	if err != nil {
		return Metadata{}, fmt.Errorf("reading theme stylesheet: %w", err)
	}

	return withFallbacks(Parse(string(head)), filepath.Base(abs)), nil
}

// Parse extracts the theme headers from the start of a stylesheet.
func Parse(content string) Metadata {
	content = strings.ReplaceAll(content, "\r", "\n")

	var m Metadata
	for i, f := range headerFields {
		match := headerPatterns[i].FindStringSubmatch(content)
		if match == nil {
			continue
		}
		f.set(&m, cleanHeaderValue(match[1]))
	}
	return m
}

func cleanHeaderValue(v string) string {
	return strings.TrimSpace(commentCloser.ReplaceAllString(v, ""))
}

func withFallbacks(m Metadata, dirName string) Metadata {
	if m.Name == "" {
		m.Name = dirName
	}
	if m.TextDomain == "" {
		m.TextDomain = dirName
	}
	return m
}
