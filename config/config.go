package config

import (
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config returns the value for key from .env, falling back to the
// process environment when no .env file is present.
func Config(key string) string {
	if !loaded {
		godotenv.Load(".env")
		loaded = true
	}
	return os.Getenv(key)
}
