// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads optional .env files, with
// github.com/caarlos0/env/v11, which parses the environment into structs using
// `env` and `envDefault` field tags. Parsed values are cached per type, so
// components can call Load wherever they need their settings.
//
// # Usage
//
//	type Config struct {
//		Root      string        `env:"UPLOAD_ROOT" envDefault:"./uploads"`
//		RateLimit int           `env:"UPLOAD_RATE_LIMIT" envDefault:"10"`
//		Window    time.Duration `env:"UPLOAD_RATE_WINDOW" envDefault:"60s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// LoadEnv reads additional .env files explicitly. Reset clears the cache so a
// test can change the environment and load again.
package config
