package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{URL: "postgres://localhost/jurisearch"},
	}
}

func TestValidate_RequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.Database.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing database.url")
	}
}

func TestValidate_RejectsBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}
}

func TestValidate_RejectsUnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.Retrieval.DefaultProvider = "quantum"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown default provider")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Retrieval.DefaultProvider != "simple" {
		t.Errorf("default provider = %q, want simple", cfg.Retrieval.DefaultProvider)
	}
	if cfg.Retrieval.DefaultTopK != 8 {
		t.Errorf("default topk = %d, want 8", cfg.Retrieval.DefaultTopK)
	}
	if cfg.Retrieval.CandidateCap != 300 {
		t.Errorf("candidate cap = %d, want 300", cfg.Retrieval.CandidateCap)
	}
	if cfg.Graph.TimeoutMS != 2000 {
		t.Errorf("graph timeout = %d, want 2000", cfg.Graph.TimeoutMS)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("embedding model = %q", cfg.Embedding.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("JURISEARCH_TEST_DB", "postgres://db/main")

	out := string(expandEnvVars([]byte("url: ${JURISEARCH_TEST_DB}")))
	if out != "url: postgres://db/main" {
		t.Errorf("expandEnvVars = %q", out)
	}

	out = string(expandEnvVars([]byte("model: ${JURISEARCH_TEST_UNSET:-fallback}")))
	if out != "model: fallback" {
		t.Errorf("expandEnvVars with default = %q", out)
	}
}
