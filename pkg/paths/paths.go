package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for chartify
	EnvConfigDir = "CHARTIFY_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for chartify
	EnvStateDir = "CHARTIFY_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for chartify-specific files
	AppDirName = "chartify"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "chartify.log"

	// EnvFileName is the dotenv file read from the working directory
	EnvFileName = ".env"
)

// ConfigDir returns the directory holding the user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	// xdg caches its values at init; honour later changes to the environment
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding runtime state such as logs.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigFile returns the path of the user configuration file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFile returns the path of the log file
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
