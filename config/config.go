// Package config registers the settings of playcheck and loads them through viper.
// Values come from, in order of precedence, flags, PLAYCHECK_* environment variables,
// the TOML config file and the registered defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer turns config keys into environment variable suffixes.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and env bindings, then reads the config file if there is one.
func Setup() error {
	viper.SetConfigName(constant.Playcheck)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Playcheck)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for _, field := range Default {
		viper.MustBindEnv(field.Key)
		viper.SetDefault(field.Key, field.Value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Path returns where the config file lives.
func Path() string {
	return filepath.Join(where.Config(), constant.Playcheck+".toml")
}

// Save writes the current settings, creating the config file when missing.
func Save() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

// Set parses raw into the type of the key's default, validates it and applies it.
// The parsed value is returned.
func Set(key string, raw []string) (any, error) {
	field, ok := Default[key]
	if !ok {
		return nil, fmt.Errorf("unknown key %s", key)
	}

	value, err := field.Parse(raw)
	if err != nil {
		return nil, err
	}

	viper.Set(key, value)
	return value, nil
}

// ResetKey restores the default of key.
func ResetKey(key string) error {
	field, ok := Default[key]
	if !ok {
		return fmt.Errorf("unknown key %s", key)
	}

	viper.Set(key, field.Value)
	return nil
}
