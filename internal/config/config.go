package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadConfigFile loads configuration from a JSON, YAML or TOML file into cfg.
//
// The format is chosen by the file extension: .json, .yaml/.yml or .toml.
// Struct fields are matched through the json, yaml and toml tags respectively.
//
// Example:
//
//	var fileCfg FileConfig
//	if err := config.LoadConfigFile("cleandemo.yaml", &fileCfg); err != nil {
//	    log.Fatal().Err(err).Send()
//	}
func LoadConfigFile(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(strings.ToLower(filepath.Ext(path)), data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func decode(ext string, data []byte, cfg any) error {
	switch ext {
	case ".json":
		return json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys %v", undecoded)
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// GetConfigFilePath returns the path to the configuration file from the flag or
// the CONFIG environment variable.
//
// Example:
//
//	configFile := config.GetConfigFilePath("")
//	if configFile != "" {
//	    // load from file
//	}
func GetConfigFilePath(configFlag string) string {
	if configFlag != "" {
		return configFlag
	}
	return os.Getenv("CONFIG")
}

// ApplyStringIfDefault applies a value from the config file only if the current
// value still equals its default.
//
// Example:
//
//	ApplyStringIfDefault(&cfg.Hierarchy, "All", fileCfg.Hierarchy)
func ApplyStringIfDefault(current *string, defaultValue, fileValue string) {
	if fileValue != "" && *current == defaultValue {
		*current = fileValue
	}
}

// ApplyBoolIfDefault applies a boolean from the config file only if the current
// value is false and the file value is true.
func ApplyBoolIfDefault(current *bool, fileValue bool) {
	if fileValue && !*current {
		*current = fileValue
	}
}
