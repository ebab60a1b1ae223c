// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct-tag driven parsing. Every
// configuration type is parsed once and cached for the lifetime of the
// process:
//
//	var cfg deviceatlas.Config
//	config.MustLoad(&cfg)
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer. Tests that change the environment
// between loads call Reset.
package config
