package api

import (
	"slices"
	"strings"
)

const (
	DefaultPluginName      = "sage-blocks"
	DefaultAssetsDirectory = "scripts/"
	DefaultManifestFile    = "manifest.asset.php"
	DefaultJSManifestFile  = "manifest.js"
	DefaultPublicDirectory = "public"

	ProjectFilename = ".eject-blocks.yaml"
	LoaderFilename  = "plugin.php"
)

// DefaultAssetFiles are the editor bundles ejected when nothing else is configured.
var DefaultAssetFiles = []string{"editor.js"}

// DefaultAssetDirectories are searched, in order, below the public directory
// to find where the build puts its scripts.
var DefaultAssetDirectories = []string{"scripts", "js"}

var (
	DefaultBuildCommand    = []string{"yarn", "--cwd", "{{ .BasePath }}", "run", "build:production"}
	DefaultActivateCommand = []string{"wp", "plugin", "activate", "{{ .Name }}"}
)

// PluginConfig describes the plugin being ejected. It is built once per run
// and passed by value afterwards.
type PluginConfig struct {
	Name            string   `yaml:"name"`
	AssetsDirectory string   `yaml:"assetsDirectory"`
	AssetFiles      []string `yaml:"assetFiles"`
	ManifestFile    string   `yaml:"manifestFile"`
	JSManifestFile  string   `yaml:"jsManifestFile"`
}

// DefaultPluginConfig returns the built-in plugin configuration.
func DefaultPluginConfig() PluginConfig {
	return PluginConfig{
		Name:            DefaultPluginName,
		AssetsDirectory: DefaultAssetsDirectory,
		AssetFiles:      slices.Clone(DefaultAssetFiles),
		ManifestFile:    DefaultManifestFile,
		JSManifestFile:  DefaultJSManifestFile,
	}
}

// Normalized returns a copy with trimmed values and a directory that ends with a separator.
func (c PluginConfig) Normalized() PluginConfig {
	out := PluginConfig{
		Name:            strings.TrimSpace(c.Name),
		AssetsDirectory: NormalizeDirectory(c.AssetsDirectory),
		ManifestFile:    strings.TrimSpace(c.ManifestFile),
		JSManifestFile:  strings.TrimSpace(c.JSManifestFile),
	}
	for _, f := range c.AssetFiles {
		if f = strings.TrimSpace(f); f != "" {
			out.AssetFiles = append(out.AssetFiles, f)
		}
	}
	return out
}

// AssetPath is the path of an asset relative to the public directory.
func (c PluginConfig) AssetPath(name string) string {
	if strings.HasPrefix(name, c.AssetsDirectory) {
		return name
	}
	return c.AssetsDirectory + name
}

// NormalizeDirectory trims dir and makes sure it ends with exactly one "/".
// An empty dir stays empty.
func NormalizeDirectory(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	return strings.TrimRight(dir, "/") + "/"
}

// ParseAssetList splits a comma separated list of asset filenames.
func ParseAssetList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Project is the .eject-blocks.yaml configuration format.
type Project struct {
	Plugin           PluginConfig  `yaml:"plugin"`
	PublicDirectory  string        `yaml:"publicDirectory"`
	ContentDirectory string        `yaml:"contentDirectory"`
	Stub             string        `yaml:"stub"`
	Build            CommandConfig `yaml:"build"`
	Activate         CommandConfig `yaml:"activate"`
}

// CommandConfig holds an argv whose elements are text templates.
type CommandConfig struct {
	Command []string `yaml:"command"`
}

// DefaultProject returns the configuration used when no file overrides it.
// Plugin.AssetsDirectory is left empty so the caller can discover it.
func DefaultProject() Project {
	plugin := DefaultPluginConfig()
	plugin.AssetsDirectory = ""
	return Project{
		Plugin:          plugin,
		PublicDirectory: DefaultPublicDirectory,
		Build:           CommandConfig{Command: slices.Clone(DefaultBuildCommand)},
		Activate:        CommandConfig{Command: slices.Clone(DefaultActivateCommand)},
	}
}

// FileReport describes one file of the ejected plugin.
type FileReport struct {
	Name    string
	SizeKiB float64
	Type    string
}
