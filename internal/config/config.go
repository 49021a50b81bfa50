package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"xlcompare/internal/logger"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the tool looks for its configuration when no
// explicit path is given.
const DefaultPath = "configs/config.json"

type Config struct {
	NumericTolerance float64 `json:"numeric_tolerance" toml:"numeric_tolerance"`
	ReportDir        string  `json:"report_dir" toml:"report_dir"`
	Theme            string  `json:"theme" toml:"theme"`
	InputDirectory   string  `json:"input_directory" toml:"input_directory"`
	MappingFile      string  `json:"mapping_file" toml:"mapping_file"`
	RowsPerPage      int     `json:"rows_per_page" toml:"rows_per_page"`
}

func defaultConfig() *Config {
	return &Config{
		NumericTolerance: 1e-9,
		ReportDir:        "Documents/Excel_Comparisons",
		Theme:            "dark",
		InputDirectory:   ".",
		MappingFile:      "configs/column_mapping.json",
		RowsPerPage:      15,
	}
}

// Load loads configuration from the specified config file path. The format
// is chosen by extension: .toml files are decoded with TOML, everything
// else as JSON.
func Load(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create configs directory if it doesn't exist
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %v", err)
		}

		// Create default config file
		cfg := defaultConfig()
		if err := Save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return cfg, nil
	}

	// Load existing config into a pre-filled struct, so missing fields keep
	// their defaults while explicit values, including zero, are honored.
	cfg := defaultConfig()
	if isTOML(configPath) {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %v", configPath, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
		}
	}

	logger.Info("Loaded configuration", "path", configPath)
	return cfg, nil
}

// Save saves configuration to the specified config file path, using the
// same extension rule as Load.
func Save(configPath string, cfg *Config) error {
	if isTOML(configPath) {
		file, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %v", err)
		}
		defer file.Close()

		if err := toml.NewEncoder(file).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %v", err)
		}
	} else {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config: %v", err)
		}
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return fmt.Errorf("failed to create config file: %v", err)
		}
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}

func isTOML(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".toml"
}

// ReportPath resolves the output path for a report name inside the
// configured report directory (relative to the user's home directory).
// A missing .xlsx extension is appended; an empty name gets a timestamped
// default.
func (c *Config) ReportPath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Comparison_%s.xlsx", time.Now().Format("20060102_150405"))
	}
	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		name += ".xlsx"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %v", err)
	}

	dir := filepath.Join(home, filepath.FromSlash(c.ReportDir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %v", err)
	}

	return filepath.Join(dir, name), nil
}
