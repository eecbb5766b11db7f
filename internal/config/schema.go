package config

// Config holds timegrid configuration.
type Config struct {
	LLMClients map[string]LLMClientCfg `mapstructure:"llm_clients" yaml:"llm_clients"`
	Defaults   DefaultsCfg             `mapstructure:"defaults" yaml:"defaults"`
}

// LLMClientCfg configures an LLM client.
type LLMClientCfg struct {
	Type           string `mapstructure:"type" yaml:"type"`                       // "openrouter", "openai"
	Model          string `mapstructure:"model" yaml:"model"`                     // Model name
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`                 // API key (supports ${ENV_VAR} syntax)
	BaseURL        string `mapstructure:"base_url" yaml:"base_url,omitempty"`     // Optional endpoint override
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // HTTP timeout
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default selections for ingestion.
type DefaultsCfg struct {
	LLMClient       string `mapstructure:"llm_client" yaml:"llm_client"`             // Default LLM client name
	Model           string `mapstructure:"model" yaml:"model"`                       // Model override passed to ingestion
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`   // AI call timeout
	PromptThreshold int    `mapstructure:"prompt_threshold" yaml:"prompt_threshold"` // Min input length for the AI strategy
}

// DefaultConfig returns configuration with sensible defaults. API keys use
// ${ENV_VAR} references; keys are never embedded in source or config files.
func DefaultConfig() *Config {
	return &Config{
		LLMClients: map[string]LLMClientCfg{
			"openrouter": {
				Type:           "openrouter",
				Model:          "anthropic/claude-3.5-sonnet",
				APIKey:         "${OPENROUTER_API_KEY}",
				TimeoutSeconds: 45,
				Enabled:        true,
			},
			"openai": {
				Type:           "openai",
				Model:          "gpt-4o-mini",
				APIKey:         "${OPENAI_API_KEY}",
				TimeoutSeconds: 45,
				Enabled:        false,
			},
		},
		Defaults: DefaultsCfg{
			LLMClient:       "openrouter",
			TimeoutSeconds:  45,
			PromptThreshold: 1000,
		},
	}
}
