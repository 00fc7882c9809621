package run

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/secmon/alertfwd/services/httppost"
	"github.com/secmon/alertfwd/services/jira"
	"github.com/secmon/alertfwd/services/logging"
	"github.com/secmon/alertfwd/services/teams"
)

const (
	envPrefix     = "ALERTFWD"
	envConfigPath = "ALERTFWD_CONFIG_PATH"
)

// Config represents the configuration format shared by every integration.
type Config struct {
	Logging  logging.Config  `toml:"logging" json:"logging"`
	HTTPPost httppost.Config `toml:"httppost" json:"httppost"`
	Teams    teams.Config    `toml:"teams" json:"teams"`
	Jira     jira.Config     `toml:"jira" json:"jira"`
}

// NewConfig returns an instance of Config with reasonable defaults.
func NewConfig() *Config {
	return &Config{
		Logging:  logging.NewConfig(),
		HTTPPost: httppost.NewConfig(),
		Teams:    teams.NewConfig(),
		Jira:     jira.NewConfig(),
	}
}

// Validate returns an error if the config is invalid.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return errors.Wrap(err, "logging")
	}
	if err := c.HTTPPost.Validate(); err != nil {
		return errors.Wrap(err, "httppost")
	}
	if err := c.Teams.Validate(); err != nil {
		return errors.Wrap(err, "teams")
	}
	if err := c.Jira.Validate(); err != nil {
		return errors.Wrap(err, "jira")
	}
	return nil
}

// FindConfigPath returns the config path specified or searches for a valid config path.
// It will return a path by searching in this order:
//   1. The given configPath
//   2. The environment variable ALERTFWD_CONFIG_PATH
//   3. The first non empty alertfwd.conf file in the path:
//        - /var/ossec/etc/
//        - /etc/alertfwd/
func FindConfigPath(configPath string) string {
	if configPath != "" {
		if configPath == os.DevNull {
			return ""
		}
		return configPath
	} else if envVar := os.Getenv(envConfigPath); envVar != "" {
		return envVar
	}

	for _, path := range []string{
		"/var/ossec/etc/alertfwd.conf",
		"/etc/alertfwd/alertfwd.conf",
	} {
		if fi, err := os.Stat(path); err == nil && fi.Size() != 0 {
			return path
		}
	}
	return ""
}

// ParseConfig parses the config at path on top of the defaults.
// Files ending in .yaml or .yml are read as YAML, anything else as TOML.
// A blank path returns the defaults.
func ParseConfig(path string) (*Config, error) {
	config := NewConfig()
	if path == "" {
		return config, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %q", path)
		}
	default:
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %q", path)
		}
	}
	return config, nil
}

// LoadConfig finds, parses, overrides from the environment and validates
// the configuration.
func LoadConfig(configPath string) (*Config, error) {
	config, err := ParseConfig(FindConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("parse config: %s", err)
	}

	// Apply any environment variables on top of the parsed config
	if err := config.ApplyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("apply env config: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}
	return config, nil
}

func (c *Config) ApplyEnvOverrides() error {
	return c.applyEnvOverrides(envPrefix, "", reflect.ValueOf(c))
}

func (c *Config) applyEnvOverrides(prefix string, fieldDesc string, v reflect.Value) error {
	// If we have a pointer, dereference it
	s := v
	if v.Kind() == reflect.Ptr {
		s = v.Elem()
	}

	var value string

	if s.Kind() != reflect.Struct {
		value = os.Getenv(prefix)
		// Skip any fields we don't have a value to set
		if value == "" {
			return nil
		}

		if fieldDesc != "" {
			fieldDesc = " to " + fieldDesc
		}
	}

	switch s.Kind() {
	case reflect.String:
		s.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:

		var intValue int64

		// Handle toml.Duration
		if s.Type().Name() == "Duration" {
			dur, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("failed to apply %v%v using type %v and value '%v'", prefix, fieldDesc, s.Type().String(), value)
			}
			intValue = dur.Nanoseconds()
		} else {
			var err error
			intValue, err = strconv.ParseInt(value, 0, s.Type().Bits())
			if err != nil {
				return fmt.Errorf("failed to apply %v%v using type %v and value '%v'", prefix, fieldDesc, s.Type().String(), value)
			}
		}

		s.SetInt(intValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to apply %v%v using type %v and value '%v'", prefix, fieldDesc, s.Type().String(), value)
		}
		s.SetBool(boolValue)
	case reflect.Slice:
		// Only string lists can be overridden, as a comma separated value.
		if s.Type().Elem().Kind() != reflect.String {
			return nil
		}
		parts := strings.Split(value, ",")
		list := reflect.MakeSlice(s.Type(), len(parts), len(parts))
		for i, p := range parts {
			list.Index(i).SetString(strings.TrimSpace(p))
		}
		s.Set(list)
	case reflect.Struct:
		return c.applyEnvOverridesToStruct(prefix, s)
	}
	return nil
}

func (c *Config) applyEnvOverridesToStruct(prefix string, s reflect.Value) error {
	typ := s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		// Get the toml tag to determine what env var name to use
		configName := typ.Field(i).Tag.Get("toml")
		// Replace hyphens with underscores to avoid issues with shells
		configName = strings.Replace(configName, "-", "_", -1)
		fieldName := typ.Field(i).Name

		// Skip any fields that we cannot set
		if !f.CanSet() || configName == "" {
			continue
		}

		// Use the upper-case prefix and toml name for the env var
		key := strings.ToUpper(configName)
		if prefix != "" {
			key = strings.ToUpper(fmt.Sprintf("%s_%s", prefix, configName))
		}

		if err := c.applyEnvOverrides(key, fieldName, f); err != nil {
			return err
		}
	}
	return nil
}
