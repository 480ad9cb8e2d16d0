// Package config loads and validates the ragdex YAML configuration file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration for an indexing run.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Qdrant     QdrantConfig     `yaml:"qdrant"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// InputConfig selects what to scan.
type InputConfig struct {
	SourceDir  string `yaml:"source_dir"`
	IgnoreFile string `yaml:"ignore_file"`
}

// QdrantConfig describes the downstream vector store. ragdex only validates
// and forwards these values; the export consumer talks to Qdrant.
type QdrantConfig struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	CollectionName string `yaml:"collection_name"`
}

// EmbeddingConfig describes the embedding model the exported chunks target.
type EmbeddingConfig struct {
	ModelName string `yaml:"model_name"`
	Dimension int    `yaml:"dimension"`
	MaxLength int    `yaml:"max_length"`
	BatchSize int    `yaml:"batch_size"`
}

// ProcessingConfig tunes the indexing pipeline.
type ProcessingConfig struct {
	ParallelWorkers int      `yaml:"parallel_workers"`
	Languages       []string `yaml:"languages"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// envVarRe matches ${VAR} placeholders in config values.
var envVarRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads, expands, and validates a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := expandEnvVars(string(raw))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandEnvVars replaces ${VAR} with the environment value. Unset variables
// are left verbatim so the error surfaces downstream instead of silently
// becoming an empty string.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}

func (c *Config) applyDefaults() {
	if c.Input.IgnoreFile == "" {
		c.Input.IgnoreFile = ".ragignore"
	}
	if c.Embedding.BatchSize == 0 {
		c.Embedding.BatchSize = 8
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Input.SourceDir != "" {
		if _, err := os.Stat(c.Input.SourceDir); err != nil {
			return fmt.Errorf("source_dir does not exist: %s", c.Input.SourceDir)
		}
	}
	if c.Qdrant.URL != "" &&
		!strings.HasPrefix(c.Qdrant.URL, "http://") &&
		!strings.HasPrefix(c.Qdrant.URL, "https://") {
		return fmt.Errorf("invalid qdrant url: %s", c.Qdrant.URL)
	}
	if _, err := zapcore.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	if c.Processing.ParallelWorkers < 0 {
		return fmt.Errorf("parallel_workers must be >= 0, got %d", c.Processing.ParallelWorkers)
	}
	return nil
}
