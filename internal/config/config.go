package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CMDTREE_"

// Config is the host configuration.
type Config struct {
	// Prefix is prepended to prefixed replies.
	Prefix string `json:"prefix,omitempty" env:"PREFIX"`
	// CommandPrefix is the global token shown in usage lines.
	CommandPrefix string `json:"commandPrefix,omitempty" env:"COMMAND_PREFIX"`
	// LogLevel is DEBUG, INFO, WARN or ERROR.
	LogLevel string `json:"logLevel,omitempty" env:"LOG_LEVEL"`
	// PermissionsFile is the YAML permission document.
	PermissionsFile string `json:"permissionsFile,omitempty" env:"PERMISSIONS_FILE"`
	// PermissionNamespace prefixes displayed permission nodes.
	PermissionNamespace string `json:"permissionNamespace,omitempty" env:"PERMISSION_NAMESPACE"`
	// Operators are sender names treated as operators.
	Operators []string `json:"operators,omitempty" env:"OPERATORS" envSeparator:","`
	// NoColor disables ANSI rendering of markup.
	NoColor bool `json:"noColor,omitempty" env:"NO_COLOR"`
	// WatchPermissions reloads the permission file when it changes.
	WatchPermissions bool `json:"watchPermissions,omitempty" env:"WATCH_PERMISSIONS"`
	// HelpPageSize is the number of lines per help page.
	HelpPageSize int `json:"helpPageSize,omitempty" env:"HELP_PAGE_SIZE"`
	// Macros are user-defined commands expanding to other commands.
	Macros map[string]MacroConfig `json:"macros,omitempty"`
}

// MacroConfig defines a macro command in a config file.
type MacroConfig struct {
	Description string   `json:"description,omitempty"`
	Template    string   `json:"template"`
	Permission  string   `json:"permission,omitempty"`
	Args        []string `json:"args,omitempty"`
}

// Default returns the built-in configuration.
func Default(paths *Paths) *Config {
	return &Config{
		Prefix:              "&6[cmdtree] ",
		LogLevel:            "INFO",
		PermissionsFile:     paths.PermissionsPath(),
		PermissionNamespace: "cmdtree",
		HelpPageSize:        8,
	}
}

// Load loads configuration for dir from the OS environment and fsys.
func Load(fsys afero.Fs, dir string) (*Config, error) {
	return load(fsys, dir, environ())
}

func load(fsys afero.Fs, dir string, envVars map[string]string) (*Config, error) {
	if dir != "" {
		dotenv, err := readDotEnv(fsys, filepath.Join(dir, ".env"))
		if err != nil {
			return nil, err
		}
		// Real environment wins over .env.
		for k, v := range dotenv {
			if _, ok := envVars[k]; !ok {
				envVars[k] = v
			}
		}
	}

	paths := resolvePaths(func(k string) string { return envVars[k] })
	cfg := Default(paths)

	files := []string{
		filepath.Join(paths.Config, "cmdtree.json"),
		filepath.Join(paths.Config, "cmdtree.jsonc"),
	}
	if dir != "" {
		files = append(files,
			filepath.Join(dir, "cmdtree.json"),
			filepath.Join(dir, "cmdtree.jsonc"),
			filepath.Join(dir, ".cmdtree", "cmdtree.json"),
			filepath.Join(dir, ".cmdtree", "cmdtree.jsonc"),
		)
	}
	if override := envVars[EnvPrefix+"CONFIG"]; override != "" {
		files = append(files, override)
	}

	loaded := make(map[string]bool)
	for _, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil || loaded[abs] {
			continue
		}
		ok, err := loadConfigFile(fsys, path, cfg)
		if err != nil {
			return nil, err
		}
		loaded[abs] = ok
	}

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: envVars,
	}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// loadConfigFile merges one JSONC file into cfg. A missing file is skipped.
func loadConfigFile(fsys afero.Fs, path string, cfg *Config) (bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config %s: %w", path, err)
	}

	var fileConfig Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &fileConfig); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Relative permission files are relative to the config file.
	if p := fileConfig.PermissionsFile; p != "" && !filepath.IsAbs(p) {
		fileConfig.PermissionsFile = filepath.Join(filepath.Dir(path), p)
	}

	mergeConfig(cfg, &fileConfig)
	return true, nil
}

// mergeConfig copies the non-zero fields of source into target.
func mergeConfig(target, source *Config) {
	if source.Prefix != "" {
		target.Prefix = source.Prefix
	}
	if source.CommandPrefix != "" {
		target.CommandPrefix = source.CommandPrefix
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
	}
	if source.PermissionsFile != "" {
		target.PermissionsFile = source.PermissionsFile
	}
	if source.PermissionNamespace != "" {
		target.PermissionNamespace = source.PermissionNamespace
	}
	if len(source.Operators) > 0 {
		target.Operators = append(target.Operators, source.Operators...)
	}
	if source.NoColor {
		target.NoColor = true
	}
	if source.WatchPermissions {
		target.WatchPermissions = true
	}
	if source.HelpPageSize > 0 {
		target.HelpPageSize = source.HelpPageSize
	}
	for name, m := range source.Macros {
		if target.Macros == nil {
			target.Macros = make(map[string]MacroConfig)
		}
		target.Macros[name] = m
	}
}

func readDotEnv(fsys afero.Fs, path string) (map[string]string, error) {
	f, err := fsys.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vars, nil
}

func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
