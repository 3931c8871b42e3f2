package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/chartify/pkg/controller"
	"github.com/arthur-debert/chartify/pkg/engine"
	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/logging"
	"github.com/arthur-debert/chartify/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every chartify environment variable
const EnvPrefix = "CHARTIFY_"

// Config is the effective chartify configuration
type Config struct {
	Identity  IdentityConfig  `koanf:"identity" toml:"identity"`
	Lifecycle LifecycleConfig `koanf:"lifecycle" toml:"lifecycle"`
	Engine    EngineConfig    `koanf:"engine" toml:"engine"`
	Logging   LoggingConfig   `koanf:"logging" toml:"logging"`
}

// IdentityConfig controls how elements are keyed
type IdentityConfig struct {
	Attribute string `koanf:"attribute" toml:"attribute"`
	Prefix    string `koanf:"prefix" toml:"prefix"`
}

// LifecycleConfig controls lifecycle policies
type LifecycleConfig struct {
	CreateOnExisting string `koanf:"create_on_existing" toml:"create_on_existing"`
}

// EngineConfig holds the terminal engine defaults
type EngineConfig struct {
	Width   int      `koanf:"width" toml:"width"`
	Height  int      `koanf:"height" toml:"height"`
	Colours []string `koanf:"colours" toml:"colours"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// ConfigFile is an explicit user file, TOML or YAML by extension.
	// It must exist when set.
	// When empty, the XDG config file is used if present.
	ConfigFile string

	// EnvFile is a dotenv file. When empty, .env in the working directory
	// is used if present.
	EnvFile string

	// Overrides win over every other source, keyed "section.key"
	Overrides map[string]interface{}

	// DefaultsOnly skips every source but the embedded defaults
	DefaultsOnly bool
}

// Default returns the embedded defaults
func Default() *Config {
	cfg, err := Load(LoadOptions{DefaultsOnly: true})
	if err != nil {
		// the embedded defaults are always valid
		panic(err)
	}
	return cfg
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	if !opts.DefaultsOnly {
		if err := loadUserSources(k, opts); err != nil {
			return nil, err
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadUserSources layers the user file, dotenv, environment and overrides
func loadUserSources(k *koanf.Koanf, opts LoadOptions) error {
	logger := logging.GetLogger("config")

	// 2. User file
	userFile := opts.ConfigFile
	if userFile == "" {
		if candidate := paths.ConfigFile(); fileExists(candidate) {
			userFile = candidate
		}
	} else if !fileExists(userFile) {
		return errors.Newf(errors.ErrConfigLoad, "config file %s does not exist", userFile)
	}
	if userFile != "" {
		if err := k.Load(file.Provider(userFile), parserFor(userFile)); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userFile)
		}
		logger.Debug().Str("path", userFile).Msg("Loaded user config")
	}

	// 3. Dotenv file
	envFile := opts.EnvFile
	if envFile == "" && fileExists(paths.EnvFileName) {
		envFile = paths.EnvFileName
	}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to read env file %s", envFile)
		}
		dotenv := make(map[string]interface{})
		for key, value := range values {
			if strings.HasPrefix(key, EnvPrefix) {
				dotenv[envKey(key)] = value
			}
		}
		if err := k.Load(confmap.Provider(dotenv, "."), nil); err != nil {
			return errors.Wrap(err, errors.ErrConfigLoad, "failed to load env file values")
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}
	return nil
}

// parserFor picks the koanf parser by extension. TOML is the default.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps CHARTIFY_ENGINE__WIDTH to engine.width
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Validate checks the configuration for values nothing downstream can use
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Identity.Attribute) == "" {
		return errors.New(errors.ErrConfigValid, "identity.attribute cannot be empty")
	}
	if strings.TrimSpace(c.Identity.Prefix) == "" {
		return errors.New(errors.ErrConfigValid, "identity.prefix cannot be empty")
	}
	if _, err := controller.ParseCreatePolicy(c.Lifecycle.CreateOnExisting); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid lifecycle.create_on_existing")
	}
	if c.Engine.Width <= 0 || c.Engine.Height <= 0 {
		return errors.Newf(errors.ErrConfigValid, "engine width and height must be positive (got %d x %d)", c.Engine.Width, c.Engine.Height)
	}
	if c.Logging.Verbosity < 0 {
		return errors.New(errors.ErrConfigValid, "logging.verbosity cannot be negative")
	}
	return nil
}

// CreatePolicy returns the parsed create-on-existing policy
func (c *Config) CreatePolicy() controller.CreatePolicy {
	policy, err := controller.ParseCreatePolicy(c.Lifecycle.CreateOnExisting)
	if err != nil {
		return controller.CreateUpdates
	}
	return policy
}

// EngineSettings returns the engine defaults
func (c *Config) EngineSettings() engine.Settings {
	return engine.Settings{
		Width:   c.Engine.Width,
		Height:  c.Engine.Height,
		Colours: c.Engine.Colours,
	}
}

// TOML renders the effective configuration
func (c *Config) TOML() (string, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return string(out), nil
}
