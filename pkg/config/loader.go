package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/logging"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks environment variables read as configuration
	EnvPrefix = "SPECULATE_"
	// FileName is the config file name in both the user and project locations
	FileName = "config.toml"
	// ProjectDir holds project-local speculate state
	ProjectDir = ".speculate"
)

// refPattern rejects whitespace, which copier would split into extra arguments
var refPattern = regexp.MustCompile(`^\S*$`)

// Config is the resolved speculate configuration
type Config struct {
	Template Template `koanf:"template"`
	Install  Install  `koanf:"install"`
}

// Template selects the project template and the engine that renders it
type Template struct {
	Source  string `koanf:"source"`
	Ref     string `koanf:"ref"`
	Command string `koanf:"command"`
}

// Install holds default rule filters for the install command
type Install struct {
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`
}

// Validate checks the resolved configuration
func (c *Config) Validate() error {
	return c.Template.Validate()
}

// Validate checks the template settings
func (t *Template) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Source, validation.Required),
		validation.Field(&t.Ref, validation.Match(refPattern)),
		validation.Field(&t.Command, validation.Required),
	)
}

// UserConfigPath returns the per-user config file location
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, logging.AppName, FileName)
}

// ProjectConfigPath returns the project config file location under root
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ProjectDir, FileName)
}

// Load resolves configuration for the project at root. Keys in overrides use
// the dotted form ("install.include") and win over every other source.
func Load(root string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2-3. User and project files
	paths := []string{UserConfigPath()}
	if root != "" {
		paths = append(paths, ProjectConfigPath(root))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	cfg.Install.Include = compact(cfg.Install.Include)
	cfg.Install.Exclude = compact(cfg.Install.Exclude)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "invalid configuration")
	}

	logger.Debug().
		Str("template", cfg.Template.Source).
		Str("ref", cfg.Template.Ref).
		Strs("include", cfg.Install.Include).
		Strs("exclude", cfg.Install.Exclude).
		Msg("Configuration resolved")
	return &cfg, nil
}

// compact trims patterns and drops empty ones, so SPECULATE_INSTALL_INCLUDE=""
// means no filter rather than a pattern matching nothing.
func compact(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
