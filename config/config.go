package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StateDirName is the per-root directory holding the catalog and optional config.
const StateDirName = ".daidelog"

// Config holds all configuration for the log tool.
type Config struct {
	Games   GamesConfig   `yaml:"games"`
	Results ResultsConfig `yaml:"results"`
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// GamesConfig describes where raw server logs are read from.
type GamesConfig struct {
	Dir       string   `yaml:"dir"`
	Includes  []string `yaml:"includes"`
	Excludes  []string `yaml:"excludes"`
	Recursive bool     `yaml:"recursive"`
}

// ResultsConfig describes where game records are written.
type ResultsConfig struct {
	Dir    string `yaml:"dir"`
	Clean  bool   `yaml:"clean"` // Remove existing results before converting
	Indent string `yaml:"indent"`
}

// ConvertConfig holds log conversion settings.
type ConvertConfig struct {
	Workers        int      `yaml:"workers"`
	Powers         int      `yaml:"powers"` // Number of HLO lines mapping client ids to powers
	FilterKeywords []string `yaml:"filter_keywords"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text", "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Games: GamesConfig{
			Dir:      "games",
			Includes: []string{"**/*"},
			Excludes: []string{"**/.*"},
		},
		Results: ResultsConfig{
			Dir:    "results",
			Clean:  true,
			Indent: "  ",
		},
		Convert: ConvertConfig{
			Workers: 1,
			Powers:  7,
			// "==" server syntax checks, "ADM" admin, "NME" names, "MDF" map
			// definition, "8 >>"/"8 <<" observer, "GOF" go-flag.
			FilterKeywords: []string{"==", "ADM", "NME", "MDF", "8 >>", "8 <<", "GOF"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for daidelog.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "daidelog.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, StateDirName, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GamesDir returns the games directory resolved against root.
func (c *Config) GamesDir(root string) string {
	return resolve(root, c.Games.Dir)
}

// ResultsDir returns the results directory resolved against root.
func (c *Config) ResultsDir(root string) string {
	return resolve(root, c.Results.Dir)
}

func resolve(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// CatalogDBPath returns the path to the catalog database.
func CatalogDBPath(dir string) string {
	return filepath.Join(dir, StateDirName, "catalog.db")
}

// EnsureStateDir ensures the .daidelog directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, StateDirName), 0755)
}
