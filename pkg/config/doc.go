// Package config loads process configuration from environment variables.
//
// It combines github.com/joho/godotenv for reading dotenv files with
// github.com/caarlos0/env/v11 for parsing the environment into tagged
// structs. Each configuration type is parsed once and cached by type.
//
// # Usage
//
//	type CLIConfig struct {
//		Model    string `env:"SCHEMAKIT_MODEL" envDefault:"Patient"`
//		Lang     string `env:"SCHEMAKIT_LANG" envDefault:"en"`
//		LogLevel string `env:"SCHEMAKIT_LOG_LEVEL" envDefault:"info"`
//	}
//
//	if err := config.LoadEnv("./deploy/.env"); err != nil {
//		return err
//	}
//	var cfg CLIConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadEnv overrides variables already present in the environment, with
// later files taking precedence. The implicit .env read performed by the
// first Load call never overrides existing variables.
//
// # Errors
//
//   - ErrParsingConfig: the environment could not be parsed into the struct.
//   - ErrEnvFile: a dotenv file passed to LoadEnv could not be read.
//   - ErrNilPointer: a nil pointer was passed to Load or ForceReloadConfig.
//
// ResetCache and ForceReloadConfig exist for tests and long-running
// processes whose environment changes.
package config
