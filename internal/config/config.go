package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or the
// parent directory, once per process. Variables already set are not
// overridden. It returns the file that was loaded, or "" when none exists.
func LoadEnv() (string, error) {
	var (
		loaded  string
		loadErr error
	)
	once.Do(func() {
		loaded, loadErr = loadEnvFile(".env", filepath.Join("..", ".env"))
	})
	return loaded, loadErr
}

func loadEnvFile(candidates ...string) (string, error) {
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", err
		}
		return envFile, nil
	}
	return "", nil
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
