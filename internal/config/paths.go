package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths contains the standard paths for cmdtree data.
type Paths struct {
	Data   string // ~/.local/share/cmdtree
	Config string // ~/.config/cmdtree
	State  string // ~/.local/state/cmdtree
}

// GetPaths returns the standard paths for cmdtree data.
func GetPaths() *Paths {
	return resolvePaths(os.Getenv)
}

func resolvePaths(getenv func(string) string) *Paths {
	home := getenv("HOME")
	orDefault := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	dataHome := filepath.Join(home, ".local", "share")
	configHome := filepath.Join(home, ".config")
	stateHome := filepath.Join(home, ".local", "state")
	if runtime.GOOS == "windows" {
		dataHome, configHome, stateHome = getenv("APPDATA"), getenv("APPDATA"), getenv("APPDATA")
	}

	return &Paths{
		Data:   filepath.Join(orDefault("XDG_DATA_HOME", dataHome), "cmdtree"),
		Config: filepath.Join(orDefault("XDG_CONFIG_HOME", configHome), "cmdtree"),
		State:  filepath.Join(orDefault("XDG_STATE_HOME", stateHome), "cmdtree"),
	}
}

// EnsurePaths creates all required directories.
func (p *Paths) EnsurePaths() error {
	for _, dir := range []string{p.Data, p.Config, p.State} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// PermissionsPath returns the default permission file.
func (p *Paths) PermissionsPath() string {
	return filepath.Join(p.Config, "permissions.yaml")
}

// MacroDirs returns the directories macro files are loaded from, global
// first.
func (p *Paths) MacroDirs(dir string) []string {
	dirs := []string{filepath.Join(p.Config, "commands")}
	if dir != "" {
		dirs = append(dirs, filepath.Join(dir, ".cmdtree", "commands"))
	}
	return dirs
}

// LogDir returns the directory for log files.
func (p *Paths) LogDir() string {
	return filepath.Join(p.State, "log")
}
