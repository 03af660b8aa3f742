package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root   string   `yaml:"root"`
		Ignore []string `yaml:"ignore"`
	} `yaml:"project"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Jobs int `yaml:"jobs"` // concurrent file extractions; 0 = one per CPU
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Output.Dir = "docs"
	cfg.Database.Path = "docdecl.db"
	return &cfg
}

// LoadConfig reads the YAML config at path, falling back to defaults when
// the file is absent, then applies .env and environment overrides.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("DOCDECL_PROJECT_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if dir := os.Getenv("DOCDECL_OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
	if db := os.Getenv("DOCDECL_DB_PATH"); db != "" {
		cfg.Database.Path = db
	}
	if jobs := os.Getenv("DOCDECL_JOBS"); jobs != "" {
		if n, err := strconv.Atoi(jobs); err == nil {
			cfg.Jobs = n
		}
	}

	return cfg, nil
}
