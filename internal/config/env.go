package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// loadEnvFile applies the first of .env / .env.local found in dir.
// Variables already present in the process environment win.
func loadEnvFile(dir string) error {
	for _, name := range []string{".env", ".env.local"} {
		envPath := filepath.Join(dir, name)
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("parse %s: %w", envPath, err)
		}
		slog.Debug("Loaded environment variables", logfields.Path(envPath))
		return nil
	}
	return fmt.Errorf("no .env file found")
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references with their environment value. Bare
// $VAR and other dollar signs are left as written.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})
}
