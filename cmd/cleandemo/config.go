package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	configpkg "github.com/idudko/go-autoclean/internal/config"
	"github.com/idudko/go-autoclean/pkg/autoclean"
)

const (
	defaultScenario   = "hierarchy"
	defaultHierarchy  = "All"
	defaultVisibility = "All"
	defaultOptions    = "None"
	defaultFormat     = "text"
	defaultLogLevel   = "info"
)

// FileConfig represents configuration from a JSON, YAML or TOML file
type FileConfig struct {
	Scenario   string `json:"scenario" yaml:"scenario" toml:"scenario"`
	Hierarchy  string `json:"hierarchy" yaml:"hierarchy" toml:"hierarchy"`
	Visibility string `json:"visibility" yaml:"visibility" toml:"visibility"`
	Options    string `json:"options" yaml:"options" toml:"options"`
	Format     string `json:"format" yaml:"format" toml:"format"`
	Dump       bool   `json:"dump" yaml:"dump" toml:"dump"`
	AuditFile  string `json:"audit_file" yaml:"audit_file" toml:"audit_file"`
	AuditURL   string `json:"audit_url" yaml:"audit_url" toml:"audit_url"`
	AuditKey   string `json:"audit_key" yaml:"audit_key" toml:"audit_key"`
	LogLevel   string `json:"log_level" yaml:"log_level" toml:"log_level"`
	DSN        string `json:"database_dsn" yaml:"database_dsn" toml:"database_dsn"`
}

// Config represents the full configuration
type Config struct {
	Scenario   string `env:"SCENARIO"`
	Hierarchy  string `env:"HIERARCHY"`
	Visibility string `env:"VISIBILITY"`
	Options    string `env:"RESET_OPTIONS"`
	Format     string `env:"FORMAT"`
	Dump       bool   `env:"DUMP"`
	AuditFile  string `env:"AUDIT_FILE"`
	AuditURL   string `env:"AUDIT_URL"`
	AuditKey   string `env:"AUDIT_KEY"`
	LogLevel   string `env:"LOG_LEVEL"`
	DSN        string `env:"DATABASE_DSN"`

	configFile string
}

// Selectors are the parsed cleaner settings.
type Selectors struct {
	Hierarchy  autoclean.Hierarchy
	Visibility autoclean.Visibility
	Options    autoclean.ResetOptions
}

// loadConfig initializes the configuration from all sources.
// Priority order (lowest to highest):
// 1. Default values
// 2. Config file (if specified via -c/-config or CONFIG env var)
// 3. Environment variables
// 4. Command line flags
func loadConfig(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("cleandemo", flag.ContinueOnError)
	fs.StringVar(&cfg.Scenario, "scenario", defaultScenario, "Scenario to run: hierarchy, plan or feature")
	fs.StringVar(&cfg.Hierarchy, "hierarchy", defaultHierarchy, "Hierarchy partitions, e.g. declared|inherited")
	fs.StringVar(&cfg.Visibility, "visibility", defaultVisibility, "Access levels, e.g. public|private or nonpublic")
	fs.StringVar(&cfg.Options, "options", defaultOptions, "Reset options, e.g. includereadonly|donotdispose")
	fs.StringVar(&cfg.Format, "format", defaultFormat, "Plan output format: text or json")
	fs.BoolVar(&cfg.Dump, "dump", false, "Dump instances before and after reset")
	fs.StringVar(&cfg.AuditFile, "audit-file", "", "Path to audit log file")
	fs.StringVar(&cfg.AuditURL, "audit-url", "", "URL for audit server")
	fs.StringVar(&cfg.AuditKey, "audit-key", "", "Key for signing audit requests")
	fs.StringVar(&cfg.LogLevel, "log-level", defaultLogLevel, "Log level")
	fs.StringVar(&cfg.DSN, "d", "", "PostgreSQL DSN for the feature scenario")
	fs.StringVar(&cfg.configFile, "c", "", "Path to config file")
	fs.StringVar(&cfg.configFile, "config", "", "Path to config file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	explicit := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	if configFile := configpkg.GetConfigFilePath(cfg.configFile); configFile != "" {
		cfg.configFile = configFile
		var fileCfg FileConfig
		if err := configpkg.LoadConfigFile(configFile, &fileCfg); err != nil {
			return Config{}, err
		}
		applyConfig(&cfg, &fileCfg)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	// Flags set on the command line win over the environment
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return Config{}, err
		}
	}

	return cfg, cfg.validate()
}

// applyConfig applies config from file with lower priority than env/flags.
// Only applies values if the current value is still the default.
func applyConfig(cfg *Config, fileCfg *FileConfig) {
	configpkg.ApplyStringIfDefault(&cfg.Scenario, defaultScenario, fileCfg.Scenario)
	configpkg.ApplyStringIfDefault(&cfg.Hierarchy, defaultHierarchy, fileCfg.Hierarchy)
	configpkg.ApplyStringIfDefault(&cfg.Visibility, defaultVisibility, fileCfg.Visibility)
	configpkg.ApplyStringIfDefault(&cfg.Options, defaultOptions, fileCfg.Options)
	configpkg.ApplyStringIfDefault(&cfg.Format, defaultFormat, fileCfg.Format)
	configpkg.ApplyStringIfDefault(&cfg.AuditFile, "", fileCfg.AuditFile)
	configpkg.ApplyStringIfDefault(&cfg.AuditURL, "", fileCfg.AuditURL)
	configpkg.ApplyStringIfDefault(&cfg.AuditKey, "", fileCfg.AuditKey)
	configpkg.ApplyStringIfDefault(&cfg.LogLevel, defaultLogLevel, fileCfg.LogLevel)
	configpkg.ApplyStringIfDefault(&cfg.DSN, "", fileCfg.DSN)
	configpkg.ApplyBoolIfDefault(&cfg.Dump, fileCfg.Dump)
}

func (c Config) validate() error {
	switch c.Scenario {
	case "hierarchy", "plan", "feature":
	default:
		return fmt.Errorf("unknown scenario %q", c.Scenario)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	_, err := c.Selectors()
	return err
}

// Selectors parses the hierarchy, visibility and reset options.
func (c Config) Selectors() (Selectors, error) {
	h, errH := autoclean.ParseHierarchy(c.Hierarchy)
	v, errV := autoclean.ParseVisibility(c.Visibility)
	o, errO := autoclean.ParseResetOptions(c.Options)
	if err := errors.Join(errH, errV, errO); err != nil {
		return Selectors{}, err
	}
	return Selectors{Hierarchy: h, Visibility: v, Options: o}, nil
}

// ConfigFile returns the path to config file if specified
func (c Config) ConfigFile() string {
	return c.configFile
}
