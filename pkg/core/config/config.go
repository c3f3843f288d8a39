package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/precision"
)

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig      `toml:"general" yaml:"general"`
	Profiles map[string]Profile `toml:"profiles" yaml:"profiles"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel       string `toml:"log_level" yaml:"log_level"`
	LogFormat      string `toml:"log_format" yaml:"log_format"`
	LogOutput      string `toml:"log_output" yaml:"log_output"`
	DefaultProfile string `toml:"default_profile" yaml:"default_profile"`
	HistoryFile    string `toml:"history_file" yaml:"history_file"`
}

// Profile describes a named precision context. Unset fields keep the
// defaults of precision.New, or of the IEEE base when ieee is set.
type Profile struct {
	IEEE             int      `toml:"ieee" yaml:"ieee"`
	Precision        *int     `toml:"precision" yaml:"precision"`
	RealPrec         *int     `toml:"real_prec" yaml:"real_prec"`
	ImagPrec         *int     `toml:"imag_prec" yaml:"imag_prec"`
	Round            string   `toml:"round" yaml:"round"`
	RealRound        string   `toml:"real_round" yaml:"real_round"`
	ImagRound        string   `toml:"imag_round" yaml:"imag_round"`
	Emin             *int     `toml:"emin" yaml:"emin"`
	Emax             *int     `toml:"emax" yaml:"emax"`
	Subnormalize     *bool    `toml:"subnormalize" yaml:"subnormalize"`
	AllowComplex     *bool    `toml:"allow_complex" yaml:"allow_complex"`
	RationalDivision *bool    `toml:"rational_division" yaml:"rational_division"`
	Traps            []string `toml:"traps" yaml:"traps"`
}

// Built-in profile names
const (
	ProfileDefault = "default"
	ProfileSingle  = "single"
	ProfileDouble  = "double"
	ProfileQuad    = "quad"
)

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg, err := Parse(content, Format(path))
	if err != nil {
		if e, ok := err.(*mdwerror.Error); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Format returns "yaml" for .yaml and .yml files and "toml" otherwise
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// Parse decodes configuration content in the given format and applies
// defaults. Unknown keys are rejected.
func Parse(content []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "toml":
		md, err := toml.Decode(string(content), &cfg)
		if err != nil {
			return nil, parseError(err, format)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, mdwerror.New(fmt.Sprintf("unknown config key: %s", undecoded[0])).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Parse").
				WithDetail("format", format)
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, parseError(err, format)
		}
	default:
		return nil, mdwerror.New(fmt.Sprintf("unsupported format: %s", format)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.Parse").
			WithDetail("format", format)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	return &cfg, nil
}

func parseError(err error, format string) *mdwerror.Error {
	return mdwerror.Wrap(err, "failed to parse config").
		WithCode(mdwerror.CodeConfigError).
		WithOperation("config.Parse").
		WithDetail("format", format)
}

// LoadFromEnv loads configuration from the MPNUM_CONFIG environment variable
// or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("MPNUM_CONFIG")
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./mpnum.toml",
			"./mpnum.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/mpnum/config.toml"),
			filepath.Join(os.Getenv("HOME"), ".config/mpnum/config.yaml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, mdwerror.New("no configuration file found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}
	if c.General.LogOutput == "" {
		c.General.LogOutput = "stderr"
	}
	if c.General.DefaultProfile == "" {
		c.General.DefaultProfile = ProfileDefault
	}
	if c.General.HistoryFile == "" {
		c.General.HistoryFile = filepath.Join(os.Getenv("HOME"), ".mpcalc_history")
	}

	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	builtin := map[string]Profile{
		ProfileDefault: {},
		ProfileSingle:  {IEEE: 32},
		ProfileDouble:  {IEEE: 64},
		ProfileQuad:    {IEEE: 128},
	}
	for name, p := range builtin {
		if _, ok := c.Profiles[name]; !ok {
			c.Profiles[name] = p
		}
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.LogOutput = os.ExpandEnv(c.General.LogOutput)
	c.General.HistoryFile = os.ExpandEnv(c.General.HistoryFile)
}

// ProfileNames returns the configured profile names in sorted order
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Context builds a writable context from the named profile. An empty name
// selects the default profile.
func (c *Config) Context(name string) (*precision.Context, error) {
	if name == "" {
		name = c.General.DefaultProfile
	}
	p, ok := c.Profiles[name]
	if !ok {
		return nil, mdwerror.New(fmt.Sprintf("unknown profile: %s", name)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Context").
			WithDetail("profile", name).
			WithDetail("available", c.ProfileNames())
	}
	ctx, err := p.Context()
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("invalid profile %s", name)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Context").
			WithDetail("profile", name)
	}
	return ctx, nil
}

// Validate checks that every profile describes a valid context and that the
// default profile exists
func (c *Config) Validate() error {
	if _, ok := c.Profiles[c.General.DefaultProfile]; !ok {
		return mdwerror.New(fmt.Sprintf("default profile %s is not defined", c.General.DefaultProfile)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("profile", c.General.DefaultProfile)
	}
	for _, name := range c.ProfileNames() {
		if _, err := c.Context(name); err != nil {
			return err
		}
	}
	return nil
}

// Context builds a writable context from the profile
func (p Profile) Context() (*precision.Context, error) {
	opts, err := p.Options()
	if err != nil {
		return nil, err
	}
	return precision.New(opts...)
}

// Options converts the profile into context options. The IEEE base, when
// set, is applied first so that the remaining fields override it.
func (p Profile) Options() ([]precision.Option, error) {
	var opts []precision.Option

	if p.IEEE != 0 {
		base, err := precision.IEEE(p.IEEE)
		if err != nil {
			return nil, err
		}
		opts = append(opts, precision.WithContext(base))
	}
	if p.Precision != nil {
		opts = append(opts, precision.WithPrecision(*p.Precision))
	}
	if p.RealPrec != nil {
		opts = append(opts, precision.WithRealPrecision(*p.RealPrec))
	}
	if p.ImagPrec != nil {
		opts = append(opts, precision.WithImagPrecision(*p.ImagPrec))
	}

	rounds := []struct {
		field string
		value string
		opt   func(precision.Rounding) precision.Option
	}{
		{"round", p.Round, precision.WithRound},
		{"real_round", p.RealRound, precision.WithRealRound},
		{"imag_round", p.ImagRound, precision.WithImagRound},
	}
	for _, r := range rounds {
		if r.value == "" {
			continue
		}
		mode, ok := kernel.ParseRounding(r.value)
		if !ok {
			return nil, invalidValue(r.field, r.value, "a rounding mode name")
		}
		opts = append(opts, r.opt(mode))
	}

	if p.Emin != nil {
		opts = append(opts, precision.WithEmin(*p.Emin))
	}
	if p.Emax != nil {
		opts = append(opts, precision.WithEmax(*p.Emax))
	}
	if p.Subnormalize != nil {
		opts = append(opts, precision.WithSubnormalize(*p.Subnormalize))
	}
	if p.AllowComplex != nil {
		opts = append(opts, precision.WithAllowComplex(*p.AllowComplex))
	}
	if p.RationalDivision != nil {
		opts = append(opts, precision.WithRationalDivision(*p.RationalDivision))
	}

	if p.Traps != nil {
		var traps precision.Condition
		for _, name := range p.Traps {
			cond, ok := kernel.ParseCondition(name)
			if !ok {
				return nil, invalidValue("traps", name, "a condition name")
			}
			traps |= cond
		}
		opts = append(opts, precision.WithTraps(traps))
	}

	return opts, nil
}

func invalidValue(field, value, expected string) *mdwerror.Error {
	return mdwerror.New(fmt.Sprintf("invalid %s: %q, expected %s", field, value, expected)).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Options").
		WithDetail("field", field).
		WithDetail("value", value)
}
