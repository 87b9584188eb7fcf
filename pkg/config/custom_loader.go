package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the provided .env files.
// When called without arguments it falls back to the default `.env` file in
// the current working directory. When several files are provided they are
// applied in order and later files override values from earlier ones.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		if err := godotenv.Load(); err != nil {
			return errors.Join(ErrParsingConfig, err)
		}
		return nil
	}
	if err := godotenv.Overload(filenames...); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics if any file cannot be loaded.
func MustLoadEnv(filenames ...string) {
	if err := LoadEnv(filenames...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// ResetCache clears all cached configurations, forcing subsequent Load calls
// to re-parse the environment. Primarily useful in tests.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
	globalCache.mu.Unlock()
}

// ForceReloadConfig drops the cached copy of the given configuration type and
// parses it again from the current process environment. Use it after the
// environment changed at runtime, e.g. via t.Setenv in tests.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.Lock()
	delete(globalCache.values, typeName)
	delete(globalCache.onces, typeName)
	globalCache.mu.Unlock()

	return Load(v)
}
