package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig application configuration, loaded from config.toml next to
// the executable.
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Reference ReferenceConfig `toml:"reference"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig data directory settings.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ReferenceConfig paths of the auxiliary lookup workbooks. Both are
// optional; missing files degrade to fallback tables or empty lookups.
type ReferenceConfig struct {
	Localidade string `toml:"localidade"` // locality reference workbook override
	Calendario string `toml:"calendario"` // reading calendar workbook
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20318,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml from the executable directory, falling
// back to defaults when the file does not exist. Environment variables
// override the reference paths for local runs and tests.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := os.ReadFile(filepath.Join(exeDir, "config.toml"))
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("RELEITURA_REF_XLSX"); v != "" {
		cfg.Reference.Localidade = v
	}
	if v := os.Getenv("VIGILA_CALENDARIO_XLSX"); v != "" {
		cfg.Reference.Calendario = v
	}
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

// EnsureDataDir creates the data directory (with upload and reference
// subdirectories) and returns its absolute path.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	dataDir := cfg.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	for _, sub := range []string{"uploads", "reference"} {
		if err := os.MkdirAll(filepath.Join(dataDir, sub), 0755); err != nil {
			return "", err
		}
	}
	return dataDir, nil
}

// CalendarPath resolves the calendar workbook path: explicit setting
// first, else data/calendario_leitura.xlsx under the data directory.
func CalendarPath(cfg *AppConfig, dataDir string) string {
	if cfg.Reference.Calendario != "" {
		return cfg.Reference.Calendario
	}
	return filepath.Join(dataDir, "calendario_leitura.xlsx")
}
