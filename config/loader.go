package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultEnvPrefix = "AGROVIA"

// loaderConfig holds loader options.
type loaderConfig struct {
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
}

// Option configures Load.
type Option func(*loaderConfig)

// WithConfigFile sets an explicit YAML config file path.
// Load fails if the file cannot be read.
func WithConfigFile(path string) Option {
	return func(lc *loaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(lc *loaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix overrides the AGROVIA environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(lc *loaderConfig) { lc.EnvPrefix = prefix }
}

// Load fills cfg from, in increasing precedence: a YAML config file, a .env
// file, and prefixed environment variables. Missing default files are not
// an error; an explicitly configured file that cannot be read is.
func Load(cfg any, opts ...Option) error {
	lc := loaderConfig{EnvPrefix: defaultEnvPrefix}
	for _, opt := range opts {
		opt(&lc)
	}

	if err := loadEnvFile(lc); err != nil {
		return err
	}

	v := viper.New()

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", lc.ConfigFile, err)
		}
	} else {
		for _, path := range []string{"./agrovia.yml", "./config/agrovia.yml"} {
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				_ = v.ReadInConfig()
				break
			}
		}
	}

	bindEnv(v, lc.EnvPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	return nil
}

func loadEnvFile(lc loaderConfig) error {
	if lc.EnvFile != "" {
		if err := godotenv.Load(lc.EnvFile); err != nil {
			return fmt.Errorf("config: load %s: %w", lc.EnvFile, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
	return nil
}

// bindEnv maps AGROVIA_BASE_URL-style variables onto viper keys, both flat
// (base_url) and nested (base.url), so either config shape picks them up.
func bindEnv(v *viper.Viper, prefix string) {
	p := prefix + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], p) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], p))
		v.Set(key, pair[1])
		v.Set(strings.ReplaceAll(key, "_", "."), pair[1])
	}
}
