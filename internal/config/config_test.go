package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"FOUNDRY_STORE", "FOUNDRY_DATA_DIR", "FOUNDRY_REDIS_ADDR", "FOUNDRY_REDIS_PASSWORD", "FOUNDRY_REDIS_DB", "FOUNDRY_USER", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true); err == nil {
		t.Fatalf("expected error for required missing file")
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foundry.yaml")
	content := `
store:
  backend: redis
  redis:
    addr: cache:6379
    db: 2
log:
  level: debug
user: Sam
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	clearEnv(t)
	t.Setenv("FOUNDRY_REDIS_ADDR", "override:6380")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.Store.Backend = BackendRedis
	want.Store.Redis.Addr = "override:6380"
	want.Store.Redis.DB = 2
	want.Log = LogConfig{Level: "debug", Format: "json"}
	want.User = "Sam"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnv_InvalidDB(t *testing.T) {
	cfg := Default()
	lookup := func(key string) (string, bool) {
		if key == "FOUNDRY_REDIS_DB" {
			return "two", true
		}
		return "", false
	}
	if err := applyEnv(&cfg, lookup); err == nil {
		t.Fatalf("expected error for non-numeric db")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "s3"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown backend error")
	}
	cfg.Store.Backend = BackendFile
	cfg.Store.DataDir = " "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected data dir error")
	}
	cfg.Store.Backend = BackendMemory
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory backend should validate: %v", err)
	}
}
