// Package paths provides centralized path handling for chartify.
//
// It follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/chartify/config.toml (user configuration)
//   - State: $XDG_STATE_HOME/chartify/chartify.log (log file)
//
// # Environment Variables
//
//   - CHARTIFY_CONFIG_DIR: Override the config directory
//   - CHARTIFY_STATE_DIR: Override the state directory
package paths
