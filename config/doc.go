// Package config loads SDK configuration from YAML files, .env files, and
// AGROVIA_* environment variables, in increasing order of precedence.
//
//	var cfg agrovia.Config
//	err := config.Load(&cfg, config.WithConfigFile("agrovia.yml"))
package config
