package appdirs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	AppName       = "nmenu"
	ConfigFile    = "config.toml"
	RulesFile     = "rules.lisp"
	LogFile       = "nmenu.log"
	dirPermission = 0o700
)

// baseDir resolves the per-user base directory. xdgVar and fallback are used on
// Linux and the BSDs; winVar on Windows.
func baseDir(xdgVar, winVar string, fallback ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv(winVar); dir != "" {
			return dir, nil
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	default:
		if dir := os.Getenv(xdgVar); dir != "" {
			return dir, nil
		}
		return filepath.Join(append([]string{home}, fallback...)...), nil
	}
}

// ConfigDir holds config.toml and the default rules file.
func ConfigDir() (string, error) {
	base, err := baseDir("XDG_CONFIG_HOME", "APPDATA", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// StateDir holds the log file.
func StateDir() (string, error) {
	base, err := baseDir("XDG_STATE_HOME", "LOCALAPPDATA", ".local", "state")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName, "state"), nil
}

func ConfigFilePath() (string, error) {
	return inDir(ConfigDir, ConfigFile)
}

// RulesFilePath is the rules file used when the config does not name one.
func RulesFilePath() (string, error) {
	return inDir(ConfigDir, RulesFile)
}

// LogFilePath is the log file used when the config does not name one.
func LogFilePath() (string, error) {
	return inDir(StateDir, LogFile)
}

func EnsureConfigDir() (string, error) {
	return ensure(ConfigDir, "config")
}

func EnsureStateDir() (string, error) {
	return ensure(StateDir, "state")
}

func inDir(dirFn func() (string, error), name string) (string, error) {
	dir, err := dirFn()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func ensure(dirFn func() (string, error), label string) (string, error) {
	dir, err := dirFn()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return "", fmt.Errorf("could not create %s dir: %w", label, err)
	}
	if err := os.Chmod(dir, dirPermission); err != nil {
		return "", fmt.Errorf("could not secure %s dir permissions: %w", label, err)
	}
	return dir, nil
}
