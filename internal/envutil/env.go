// Package envutil loads .env files and reads typed environment values
// for the CLI.
package envutil

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the given .env file into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// String returns the environment value for key, or fallback when unset
// or empty.
func String(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Int returns the integer environment value for key, or fallback when
// unset or unparseable.
func Int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
