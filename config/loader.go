package config

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"kochsnowflake/koch"
)

//go:embed application.yml
var defaultFile []byte

// DefaultPath names the embedded file in error messages.
const DefaultPath = "embedded:application.yml"

// Default returns the configuration compiled into the binary.
func Default() (Config, error) {
	return parse(DefaultPath, defaultFile, Config{})
}

// Load reads path and applies its values on top of the defaults. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	base, err := Default()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return base, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &koch.OpError{
			Op:   "config.load",
			Kind: koch.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return parse(path, b, base)
}

func parse(path string, b []byte, base Config) (Config, error) {
	var dto YAMLFile
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return Config{}, &koch.OpError{
			Op:   "config.load",
			Kind: koch.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	cfg := Map(dto, base)
	if err := cfg.Validate(); err != nil {
		return Config{}, &koch.OpError{
			Op:   "config.validate",
			Kind: koch.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

// Map overlays the values present in dto onto base.
func Map(dto YAMLFile, base Config) Config {
	cfg := base
	v := dto.Kochsnowflake.View
	c := dto.Kochsnowflake.Control

	if v.Title != "" {
		cfg.Title = v.Title
	}
	if v.Subtitle != "" {
		cfg.Subtitle = v.Subtitle
	}
	setInt(&cfg.Width, v.Width)
	setInt(&cfg.Height, v.Height)
	setInt(&cfg.Padding, v.Padding)
	setInt(&cfg.Scale, v.Scale)
	setInt(&cfg.ThreadSleepTime, c.ThreadSleepTime)
	setInt(&cfg.MaxIterations, c.MaxIterations)
	return cfg
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
