// Package config handles configuration management for chartify.
//
// Configuration is layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file ($XDG_CONFIG_HOME/chartify/config.toml, or an explicit path)
//  3. CHARTIFY_ variables from a .env file
//  4. CHARTIFY_ variables from the environment
//  5. explicit overrides (command-line flags)
//
// Environment keys use a double underscore between section and key:
// CHARTIFY_LIFECYCLE__CREATE_ON_EXISTING=ignore.
package config
