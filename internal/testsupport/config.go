package testsupport

import (
	"path/filepath"
	"testing"

	"longbox/internal/config"
)

// NewConfig produces a validated config seeded with unique temp directories
// per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.ComicDB.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
