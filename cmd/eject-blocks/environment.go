package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/systemstart/eject-blocks/pkg/api"
	"github.com/systemstart/eject-blocks/pkg/assets"
	"github.com/systemstart/eject-blocks/pkg/logging"
	"github.com/systemstart/eject-blocks/pkg/theme"
)

const (
	userConfigPath   = "eject-blocks/config.yaml"
	contentDirEnv    = "WP_CONTENT_DIR"
	pluginsDirectory = "plugins"
	dotenvFilename   = ".env"
)

// environment is everything the pipeline needs that is read before it starts.
type environment struct {
	themeDir   string
	pluginsDir string
	stub       string
	project    *api.Project
	assets     *assets.Resolver
	theme      theme.Metadata
}

func initLogging(opts options) error {
	return logging.Initialize(os.Stderr, opts.loggingType, opts.logLevel)
}

func loadEnvironment(opts options) (*environment, error) {
	themeDir, err := checkThemeDirectory(opts.themeDir)
	if err != nil {
		return nil, fail(exitThemeDirectoryCheckFailed, "failed to check theme directory", err, "directory", opts.themeDir)
	}

	if err := includeEnv(themeDir); err != nil {
		return nil, fail(exitDotenvError, "failed to load .env", err)
	}

	project, err := loadProject(themeDir, opts.configFile)
	if err != nil {
		return nil, fail(exitLoadConfigurationFileFailed, "failed to load configuration", err)
	}

	publicDir := resolvePath(themeDir, project.PublicDirectory)
	if project.Plugin.AssetsDirectory == "" {
		dir, err := assets.FindDirectory(publicDir, api.DefaultAssetDirectories)
		if err != nil {
			return nil, fail(exitAssetsDiscoveryFailed, "failed to find assets directory", err, "directory", publicDir)
		}
		slog.Debug("discovered assets directory", "directory", dir)
		project.Plugin.AssetsDirectory = dir
	}

	resolver, err := assets.NewResolver(publicDir)
	if err != nil {
		return nil, fail(exitAssetsDiscoveryFailed, "failed to read asset manifest", err, "directory", publicDir)
	}

	meta, err := theme.Load(themeDir)
	if err != nil {
		return nil, fail(exitLoadThemeFailed, "failed to read theme metadata", err, "directory", themeDir)
	}

	stub, err := loadStub(themeDir, project.Stub)
	if err != nil {
		return nil, fail(exitLoadStubFailed, "failed to load loader stub", err, "filename", project.Stub)
	}

	contentDir := contentDirectory(themeDir, opts.contentDir, project.ContentDirectory)
	slog.Debug("using content directory", "directory", contentDir)

	return &environment{
		themeDir:   themeDir,
		pluginsDir: filepath.Join(contentDir, pluginsDirectory),
		stub:       stub,
		project:    project,
		assets:     resolver,
		theme:      meta,
	}, nil
}

func checkThemeDirectory(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	st, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func includeEnv(themeDir string) error {
	filename := filepath.Join(themeDir, dotenvFilename)
	err := godotenv.Load(filename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		slog.Debug("no .env file found", "filename", filename)
		return nil
	}
	slog.Info("using .env file", "filename", filename)
	return nil
}

// configSources lists the configuration files in the order they are applied.
// The explicit file must exist; the others are optional.
func configSources(themeDir, explicit string) ([]string, error) {
	var sources []string
	if user, err := xdg.SearchConfigFile(userConfigPath); err == nil {
		sources = append(sources, user)
	}
	sources = append(sources, filepath.Join(themeDir, api.ProjectFilename))

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("reading project file: %w", err)
		}
		sources = append(sources, explicit)
	}
	return sources, nil
}

func loadProject(themeDir, explicit string) (*api.Project, error) {
	sources, err := configSources(themeDir, explicit)
	if err != nil {
		return nil, err
	}
	slog.Debug("loading configuration", "sources", sources)
	return api.LoadProject(sources...)
}

func loadStub(themeDir, filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	data, err := os.ReadFile(resolvePath(themeDir, filename))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// contentDirectory picks the wp-content directory: the flag, then the
// environment, then the configuration, then two levels above the theme.
func contentDirectory(themeDir, flag, configured string) string {
	for _, dir := range []string{flag, os.Getenv(contentDirEnv), configured} {
		if dir != "" {
			return resolvePath(themeDir, dir)
		}
	}
	return filepath.Dir(filepath.Dir(themeDir))
}

// resolvePath makes p absolute relative to base.
func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
