// Package env loads process configuration from dotenv files.
package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the dotenv file at ENV_PATH, or at defaultPath when
// ENV_PATH is unset. Variables already present in the process environment
// win over the file. A missing file is an error only for local runs
// (appEnv "local" or empty).
func LoadDotEnv(appEnv string, defaultPath string) error {
	path := resolvePath(defaultPath)

	if err := godotenv.Load(path); err != nil {
		if isLocal(appEnv) {
			slog.Warn("Failed to load .env file", "path", path, "error", err)
			return err
		}
		slog.Debug("No .env file, using process environment", "app_env", appEnv, "path", path)
		return nil
	}

	slog.Debug("Loaded .env file", "path", path)
	return nil
}

func resolvePath(defaultPath string) string {
	if p := os.Getenv("ENV_PATH"); p != "" {
		return p
	}
	return defaultPath
}

func isLocal(appEnv string) bool {
	return appEnv == "" || appEnv == "local"
}
