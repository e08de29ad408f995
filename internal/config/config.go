// Package config loads genstage's CLI configuration: where to find
// the corpus directory and which map observer name to verify against,
// tolerant of JSONC comments the way the teacher's config loader is.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	CorpusDir    string `json:"corpus_dir"`
	ObserverName string `json:"observer_name,omitempty"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string
	Project string
}

// FileName is the default project config file name.
const FileName = ".genstage.json"

// Default returns the default configuration.
func Default() Config {
	return Config{
		CorpusDir:    ".corpus",
		ObserverName: "map",
	}
}

func globalConfigPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "genstage", "config.json")
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "genstage", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "genstage", "config.json")
	}

	return ""
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/genstage/config.json)
// 3. Project config: the file at configPath if non-empty (it must exist),
// otherwise .genstage.json in workDir if present
// 4. CLI overrides.
func Load(workDir, configPath string, cliOverrides Config, hasCorpusDirOverride bool, env []string) (Config, ConfigSources, error) {
	cfg := Default()

	var sources ConfigSources

	globalCfg, globalPath, err := loadGlobal(env)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProject(workDir, configPath)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	if hasCorpusDirOverride {
		cfg.CorpusDir = cliOverrides.CorpusDir
	}

	if cfg.CorpusDir == "" {
		return Config{}, ConfigSources{}, errCorpusDirEmpty
	}

	return cfg, sources, nil
}

func loadGlobal(env []string) (Config, string, error) {
	path := globalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProject(workDir, configPath string) (Config, string, error) {
	var file string

	var mustExist bool

	if configPath != "" {
		file = configPath
		if !filepath.IsAbs(file) {
			file = filepath.Join(workDir, file)
		}

		mustExist = true

		if _, err := os.Stat(file); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
		}
	} else {
		file = filepath.Join(workDir, FileName)
	}

	cfg, loaded, err := loadFile(file, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, file, nil
}

func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally caller-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.CorpusDir != "" {
		base.CorpusDir = overlay.CorpusDir
	}

	if overlay.ObserverName != "" {
		base.ObserverName = overlay.ObserverName
	}

	return base
}

// Format returns cfg as formatted JSON, for the CLI's print-config
// subcommand.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}
