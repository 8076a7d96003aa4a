package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Option customizes config loading.
type Option func(*loadOptions)

type loadOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path instead of searching the
// standard locations.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file to load before reading config.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// Configurable is implemented by config structs that carry their own defaults
// and validation.
type Configurable interface {
	ApplyDefaults()
	Validate() error
}

// LoadConfig loads configuration for the named service into cfg.
//
// Sources, in order of precedence (highest wins):
//  1. Environment variables prefixed with LUCIDSCRIPT_
//  2. The config file (explicit via WithConfigFile, or searched in
//     ./cmd/<service>/config.yml, ./config/config.yml, ./config.yml)
//  3. Defaults applied by cfg.ApplyDefaults
//
// A .env file, if present in the working directory (or given via
// WithEnvFile), is loaded into the process environment first.
func LoadConfig(serviceName string, cfg Configurable, opts ...Option) error {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	loadEnvFile(o.envFile)

	v := viper.New()
	v.AutomaticEnv()

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", o.configFile, err)
		}
	} else {
		if path := findConfigFile(serviceName); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config file %s: %w", path, err)
			}
		}
	}

	bindEnvVars(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func loadEnvFile(explicit string) {
	if explicit != "" {
		_ = godotenv.Load(explicit)
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

func findConfigFile(serviceName string) string {
	candidates := []string{
		filepath.Join("cmd", serviceName, "config.yml"),
		filepath.Join("config", "config.yml"),
		"config.yml",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// bindEnvVars sets every LUCIDSCRIPT_-prefixed environment variable under all
// plausible nested key spellings. An underscore in the variable name may mean
// a key separator or part of a key (LUCIDSCRIPT_DOCUMENT_LINE_WIDTH is
// document.line_width), so each variant is set and the one matching a real
// key wins during unmarshal.
func bindEnvVars(v *viper.Viper) {
	const prefix = "LUCIDSCRIPT_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		key := strings.TrimPrefix(pair[0], prefix)
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants generates the nested key spellings an environment variable
// could refer to.
//
//	DOCUMENT_LINE_WIDTH -> [document_line_width, document.line.width, document.line_width, document.line.width]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, variant := range variants {
		if !seen[variant] {
			seen[variant] = true
			out = append(out, variant)
		}
	}
	return out
}
