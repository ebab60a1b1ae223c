package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu      sync.Mutex
	loaded  = make(map[reflect.Type]any)
	dotenvs sync.Once
)

// LoadEnv loads the given .env files into the process environment without
// overriding variables that are already set. With no arguments the .env file
// in the working directory is used.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v using its `env` struct tags.
// Each configuration type is parsed once per process; later calls for the
// same type receive the cached copy.
//
// The default .env file is read once before the first parse if it exists.
//
//	type Config struct {
//		Dataset string `env:"DEVICEATLAS_DATASET,required"`
//		Addr    string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvs.Do(func() {
		// A missing .env file is fine.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := loaded[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded[key] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration so the next Load parses the
// environment again. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(loaded)
}
