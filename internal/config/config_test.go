package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("TIMEGRID_TEST_KEY", "secret-value")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"env reference", "${TIMEGRID_TEST_KEY}", "secret-value"},
		{"embedded reference", "prefix-${TIMEGRID_TEST_KEY}-suffix", "prefix-secret-value-suffix"},
		{"unset variable", "${TIMEGRID_UNSET_VAR_XYZ}", ""},
		{"no reference", "plain-key", "plain-key"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveEnvVars(tt.input); got != tt.want {
				t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.LLMClients) == 0 {
		t.Fatal("DefaultConfig has no LLM clients")
	}
	for name, llm := range cfg.LLMClients {
		if llm.APIKey == "" {
			t.Errorf("client %q has no api key reference", name)
		}
		// Keys must be env references, never literal secrets.
		if llm.APIKey[0] != '$' {
			t.Errorf("client %q api key %q is not an ${ENV_VAR} reference", name, llm.APIKey)
		}
	}

	if _, ok := cfg.LLMClients[cfg.Defaults.LLMClient]; !ok {
		t.Errorf("default llm client %q is not configured", cfg.Defaults.LLMClient)
	}
	if cfg.Defaults.PromptThreshold != 1000 {
		t.Errorf("PromptThreshold = %d, want 1000", cfg.Defaults.PromptThreshold)
	}
	if cfg.Defaults.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d, want 45", cfg.Defaults.TimeoutSeconds)
	}
}

func TestManagerHotReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  prompt_threshold: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cm, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if got := cm.Get().Defaults.PromptThreshold; got != 500 {
		t.Fatalf("initial PromptThreshold = %d, want 500", got)
	}

	reloaded := make(chan *Config, 1)
	cm.OnChange(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	cm.WatchConfig()

	if err := os.WriteFile(path, []byte("defaults:\n  prompt_threshold: 750\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Defaults.PromptThreshold != 750 {
			t.Errorf("reloaded PromptThreshold = %d, want 750", cfg.Defaults.PromptThreshold)
		}
		if got := cm.Get().Defaults.PromptThreshold; got != 750 {
			t.Errorf("Get() after reload = %d, want 750", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config change callback never fired")
	}
}

func TestToRegistryConfig(t *testing.T) {
	t.Setenv("TIMEGRID_TEST_API_KEY", "resolved-key")

	cfg := &Config{
		LLMClients: map[string]LLMClientCfg{
			"primary": {
				Type:           "openrouter",
				Model:          "some/model",
				APIKey:         "${TIMEGRID_TEST_API_KEY}",
				TimeoutSeconds: 30,
				Enabled:        true,
			},
		},
	}

	rc := cfg.ToRegistryConfig()

	got, ok := rc.LLMClients["primary"]
	if !ok {
		t.Fatal("primary client missing from registry config")
	}
	if got.APIKey != "resolved-key" {
		t.Errorf("APIKey = %q, want resolved env value", got.APIKey)
	}
	if got.Type != "openrouter" || got.Model != "some/model" || got.TimeoutSeconds != 30 || !got.Enabled {
		t.Errorf("fields not carried over: %+v", got)
	}
}
