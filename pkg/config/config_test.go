package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Columns.Case != "case_id" || cfg.Columns.Code != "SRL_code" {
		t.Errorf("default columns = %+v", cfg.Columns)
	}
	if cfg.Codes.ExcludePattern != "R.SL *" {
		t.Errorf("default exclude pattern = %q", cfg.Codes.ExcludePattern)
	}
	if cfg.Vocabulary().Len() != 15 {
		t.Errorf("default vocabulary has %d codes, want 15", cfg.Vocabulary().Len())
	}
}

func TestMerge(t *testing.T) {
	cfg := Default()

	var partial Config
	data := []byte("columns:\n  case: conversation\ncodes:\n  exclude_pattern: \"X.*\"\n")
	if err := yaml.Unmarshal(data, &partial); err != nil {
		t.Fatal(err)
	}
	cfg.merge(&partial)

	if cfg.Columns.Case != "conversation" {
		t.Errorf("Case = %q, want conversation", cfg.Columns.Case)
	}
	if cfg.Codes.ExcludePattern != "X.*" {
		t.Errorf("ExcludePattern = %q, want X.*", cfg.Codes.ExcludePattern)
	}
	// Untouched fields keep their defaults.
	if cfg.Columns.Code != "SRL_code" {
		t.Errorf("Code = %q, want SRL_code", cfg.Columns.Code)
	}
	if len(cfg.Codes.Vocabulary) != 15 {
		t.Errorf("vocabulary was overwritten: %v", cfg.Codes.Vocabulary)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SRLFLOW_CASE_COLUMN", "student")
	t.Setenv("SRLFLOW_EXCLUDE_PATTERN", "R.SL*")

	cfg := Default()
	cfg.loadEnv()

	if cfg.Columns.Case != "student" {
		t.Errorf("Case = %q, want student", cfg.Columns.Case)
	}
	if cfg.Codes.ExcludePattern != "R.SL*" {
		t.Errorf("ExcludePattern = %q, want R.SL*", cfg.Codes.ExcludePattern)
	}
}
