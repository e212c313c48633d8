package api

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the project configuration for errors.
func (p *Project) Validate() error {
	if err := p.Plugin.ValidateFiles(); err != nil {
		return fmt.Errorf("plugin: %w", err)
	}
	if p.Plugin.Name != "" {
		if err := ValidatePluginName(p.Plugin.Name); err != nil {
			return fmt.Errorf("plugin: %w", err)
		}
	}
	if p.PublicDirectory == "" {
		return fmt.Errorf("publicDirectory is required")
	}
	if len(p.Build.Command) == 0 {
		return fmt.Errorf("build.command is required")
	}
	if len(p.Activate.Command) == 0 {
		return fmt.Errorf("activate.command is required")
	}
	return nil
}

// Validate checks that the plugin configuration can be ejected.
func (c PluginConfig) Validate() error {
	if err := ValidatePluginName(c.Name); err != nil {
		return err
	}
	if c.AssetsDirectory == "" {
		return fmt.Errorf("assetsDirectory is required")
	}
	if len(c.AssetFiles) == 0 {
		return fmt.Errorf("at least one asset file is required")
	}
	return c.ValidateFiles()
}

// ValidateFiles checks the file names without requiring a name or directory.
// Every ejected file lands in the plugin root by base name, so no two may
// share one and none may replace the loader.
func (c PluginConfig) ValidateFiles() error {
	if c.ManifestFile == "" {
		return fmt.Errorf("manifestFile is required")
	}
	if c.JSManifestFile == "" {
		return fmt.Errorf("jsManifestFile is required")
	}

	seen := make(map[string]string, len(c.AssetFiles)+2)
	claim := func(field, f string) error {
		base := filepath.Base(f)
		if base == LoaderFilename {
			return fmt.Errorf("%s: %q would overwrite the generated loader", field, f)
		}
		if prev, ok := seen[base]; ok {
			return fmt.Errorf("%s: %q has the same file name as %s", field, f, prev)
		}
		seen[base] = field
		return nil
	}

	for i, f := range c.AssetFiles {
		field := fmt.Sprintf("assetFiles[%d]", i)
		if f == "" {
			return fmt.Errorf("%s: name is required", field)
		}
		if err := claim(field, f); err != nil {
			return err
		}
	}
	if err := claim("manifestFile", c.ManifestFile); err != nil {
		return err
	}
	return claim("jsManifestFile", c.JSManifestFile)
}

// ValidatePluginName accepts a name that is usable as a single directory
// below the plugins root.
func ValidatePluginName(name string) error {
	if name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("plugin name %q must be a single directory name", name)
	}
	return nil
}
