// Package config loads typed configuration structs from environment variables.
//
// A .env file in the working directory is read once on first use (via
// joho/godotenv), then the target struct is parsed with caarlos0/env. Every
// struct type is parsed only once per process; later calls receive a copy of
// the cached value.
//
//	type ResponseConfig struct {
//		CompressOutput bool   `env:"RESPONSE_COMPRESS_OUTPUT" envDefault:"false"`
//		Charset        string `env:"RESPONSE_CHARSET" envDefault:"utf-8"`
//	}
//
//	var cfg ResponseConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// MustLoad panics instead of returning an error and is meant for startup code.
// Reset clears the cache, which tests use after changing the environment.
package config
