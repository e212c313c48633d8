package api

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProject reads the given configuration files in order on top of the
// defaults. Later files override keys set by earlier ones; files that do not
// exist are skipped.
func LoadProject(filenames ...string) (*Project, error) {
	p := DefaultProject()

	for _, filename := range filenames {
		if filename == "" {
			continue
		}
		if err := mergeProjectFile(&p, filename); err != nil {
			return nil, err
		}
	}

	p.Plugin = p.Plugin.Normalized()

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating project configuration: %w", err)
	}

	return &p, nil
}

func mergeProjectFile(p *Project, filename string) error {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading project file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return fmt.Errorf("parsing project file %s: %w", filename, err)
	}
	return nil
}
