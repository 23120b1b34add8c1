package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Server.Port != 20318 {
		t.Fatalf("unexpected default port: %d", cfg.Server.Port)
	}
	if cfg.Data.DataDir != "data" {
		t.Fatalf("unexpected default data dir: %s", cfg.Data.DataDir)
	}
	if cfg.Server.DevMode {
		t.Fatalf("dev mode must default to off")
	}
}

func TestEnsureDataDir_Absolute(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")

	dir, err := EnsureDataDir(cfg)
	if err != nil {
		t.Fatalf("ensure data dir: %v", err)
	}
	if dir != cfg.Data.DataDir {
		t.Fatalf("unexpected dir: %s", dir)
	}
	for _, sub := range []string{"uploads", "reference"} {
		if st, err := os.Stat(filepath.Join(dir, sub)); err != nil || !st.IsDir() {
			t.Fatalf("subdirectory %s missing: %v", sub, err)
		}
	}
}

func TestCalendarPath(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	dataDir := filepath.Join("some", "data")

	if got := CalendarPath(cfg, dataDir); got != filepath.Join(dataDir, "calendario_leitura.xlsx") {
		t.Fatalf("unexpected default calendar path: %s", got)
	}

	cfg.Reference.Calendario = "/tmp/custom.xlsx"
	if got := CalendarPath(cfg, dataDir); got != "/tmp/custom.xlsx" {
		t.Fatalf("explicit setting not honored: %s", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RELEITURA_REF_XLSX", "/tmp/ref.xlsx")
	t.Setenv("VIGILA_CALENDARIO_XLSX", "/tmp/cal.xlsx")

	cfg := DefaultConfig()
	applyEnv(cfg)
	if cfg.Reference.Localidade != "/tmp/ref.xlsx" {
		t.Fatalf("localidade override not applied: %s", cfg.Reference.Localidade)
	}
	if cfg.Reference.Calendario != "/tmp/cal.xlsx" {
		t.Fatalf("calendario override not applied: %s", cfg.Reference.Calendario)
	}
}
