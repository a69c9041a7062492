// Package config loads and validates the application configuration. API
// keys never appear in the file; they are read from the environment by the
// provider client.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LLM selects and tunes the generation provider. The provider is fixed for
// the life of the process.
type LLM struct {
	Provider    string  `yaml:"provider" validate:"required,oneof=openai groq anthropic"`
	Model       string  `yaml:"model" validate:"required"`
	BaseURL     string  `yaml:"base_url" validate:"omitempty,url"`
	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gt=0"`
}

// Data points at the seed files loaded at startup.
type Data struct {
	Ledger   string `yaml:"ledger" validate:"required"`
	Products string `yaml:"products" validate:"required"`
	Profiles string `yaml:"profiles" validate:"required"`
}

// Duration parses Go duration strings ("30m") from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Sessions bounds the in-memory session registry.
type Sessions struct {
	MaxSessions int      `yaml:"max_sessions" validate:"gte=0"`
	MaxAge      Duration `yaml:"max_age" validate:"gte=0"`
}

// Config is the full application configuration.
type Config struct {
	LLM             LLM      `yaml:"llm" validate:"required"`
	Data            Data     `yaml:"data" validate:"required"`
	Sessions        Sessions `yaml:"sessions"`
	DefaultCustomer string   `yaml:"default_customer" validate:"required"`
	RetrievalTopK   int      `yaml:"retrieval_top_k" validate:"gte=0"`
}

// Default returns the configuration used when a field is left unset.
func Default() Config {
	return Config{
		LLM: LLM{
			Provider:    "groq",
			Model:       "llama-3.1-8b-instant",
			Temperature: 0.7,
			MaxTokens:   512,
		},
		Data: Data{
			Ledger:   "data/banking.json",
			Products: "data/products.yaml",
			Profiles: "data/customers.yaml",
		},
		Sessions: Sessions{
			MaxSessions: 1000,
			MaxAge:      Duration(30 * time.Minute),
		},
		DefaultCustomer: "cust_001",
		RetrievalTopK:   3,
	}
}

// Load reads, merges and validates the configuration file. Unset fields keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	bs, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
