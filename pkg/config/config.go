// Package config provides layered configuration for srlflow.
// Priority: defaults < user file < project file < env < flags
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/srlflow/srlflow/pkg/vocab"
)

// Config holds all srlflow settings.
type Config struct {
	Columns ColumnsConfig `yaml:"columns"`
	Codes   CodesConfig   `yaml:"codes"`
	Groups  GroupsConfig  `yaml:"groups"`
}

// ColumnsConfig names the input sheet columns.
type ColumnsConfig struct {
	Case  string `yaml:"case"`
	Code  string `yaml:"code"`
	Phase string `yaml:"phase"`
}

// CodesConfig controls the vocabulary and exclusion.
type CodesConfig struct {
	// Vocabulary overrides the built-in SRL code ordering when set.
	Vocabulary []string `yaml:"vocabulary"`

	// ExcludePattern is the glob for codes dropped before analysis.
	ExcludePattern string `yaml:"exclude_pattern"`
}

// GroupsConfig names the two comparison datasets.
type GroupsConfig struct {
	First  string `yaml:"first"`
	Second string `yaml:"second"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Columns: ColumnsConfig{
			Case:  "case_id",
			Code:  "SRL_code",
			Phase: "SRL_Phase",
		},
		Codes: CodesConfig{
			Vocabulary:     vocab.DefaultCodes,
			ExcludePattern: vocab.DefaultExcludePattern,
		},
		Groups: GroupsConfig{
			First:  "stugptviz",
			Second: "recipe4u",
		},
	}
}

// Load builds the configuration from all sources in priority order.
// Missing files are ignored.
func Load() (*Config, error) {
	cfg := Default()

	for _, path := range configPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var partial Config
		if err := yaml.Unmarshal(data, &partial); err != nil {
			return nil, err
		}
		cfg.merge(&partial)
	}

	cfg.loadEnv()
	return cfg, nil
}

// configPaths returns config file paths in priority order, later
// overriding earlier.
func configPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".srlflow", "config.yaml"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".srlflow.yaml"))
	}
	return paths
}

// merge copies non-zero values from src.
func (c *Config) merge(src *Config) {
	if src.Columns.Case != "" {
		c.Columns.Case = src.Columns.Case
	}
	if src.Columns.Code != "" {
		c.Columns.Code = src.Columns.Code
	}
	if src.Columns.Phase != "" {
		c.Columns.Phase = src.Columns.Phase
	}
	if len(src.Codes.Vocabulary) > 0 {
		c.Codes.Vocabulary = src.Codes.Vocabulary
	}
	if src.Codes.ExcludePattern != "" {
		c.Codes.ExcludePattern = src.Codes.ExcludePattern
	}
	if src.Groups.First != "" {
		c.Groups.First = src.Groups.First
	}
	if src.Groups.Second != "" {
		c.Groups.Second = src.Groups.Second
	}
}

// loadEnv applies environment overrides.
func (c *Config) loadEnv() {
	if v := os.Getenv("SRLFLOW_CASE_COLUMN"); v != "" {
		c.Columns.Case = v
	}
	if v := os.Getenv("SRLFLOW_CODE_COLUMN"); v != "" {
		c.Columns.Code = v
	}
	if v := os.Getenv("SRLFLOW_PHASE_COLUMN"); v != "" {
		c.Columns.Phase = v
	}
	if v := os.Getenv("SRLFLOW_EXCLUDE_PATTERN"); v != "" {
		c.Codes.ExcludePattern = v
	}
}

// Vocabulary returns the configured code vocabulary.
func (c *Config) Vocabulary() vocab.Vocabulary {
	return vocab.New(c.Codes.Vocabulary)
}

// Exclusion returns the configured exclusion matcher.
func (c *Config) Exclusion() vocab.Exclusion {
	return vocab.NewExclusion(c.Codes.ExcludePattern)
}
