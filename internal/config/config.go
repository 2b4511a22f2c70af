package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnsupportedProvider is returned for an unknown [llm] provider.
var ErrUnsupportedProvider = errors.New("unsupported llm provider")

var supportedProviders = []string{"openai", "ollama", "claude", "gemini"}

type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// GraphConfig tunes the merge engine.
type GraphConfig struct {
	ThoughtContentLimit int `toml:"thought_content_limit"`
	MaxTags             int `toml:"max_tags"`
}

type PathsConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
}

type ExtractionConfig struct {
	Concepts     string   `toml:"concepts"`
	ContentLimit int      `toml:"content_limit"`
	Extensions   []string `toml:"extensions"`
}

type AnalysisConfig struct {
	Category            string `toml:"category"`
	ConceptDuplicate    string `toml:"concept_duplicate"`
	CrossRelations      string `toml:"cross_relations"`
	InternalRelations   string `toml:"internal_relations"`
	MaxNewConcepts      int    `toml:"max_new_concepts"`
	MaxExistingConcepts int    `toml:"max_existing_concepts"`
	ResolveDuplicates   bool   `toml:"resolve_duplicates"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type ConcurrencyConfig struct {
	Research int `toml:"research"`
}

type Config struct {
	LLM         LLMConfig         `toml:"llm"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Graph       GraphConfig       `toml:"graph"`
	Paths       PathsConfig       `toml:"paths"`
	Extraction  ExtractionConfig  `toml:"extraction"`
	Analysis    AnalysisConfig    `toml:"analysis"`
	Logging     LoggingConfig     `toml:"logging"`
	Server      ServerConfig      `toml:"server"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
}

// Default returns a complete configuration; Load decodes on top of it.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "llama3.1",
			BaseURL:   "http://localhost:11434",
			MaxTokens: 2000,
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Graph: GraphConfig{
			ThoughtContentLimit: 500,
			MaxTags:             5,
		},
		Paths: PathsConfig{
			Input:  "./input",
			Output: "./output/knowledge_graph.cypher",
		},
		Extraction: ExtractionConfig{
			Concepts:     DefaultConceptsPrompt,
			ContentLimit: 3000,
			Extensions:   []string{".md", ".txt", ".csv", ".json", ".docx"},
		},
		Analysis: AnalysisConfig{
			Category:            DefaultCategoryPrompt,
			ConceptDuplicate:    DefaultConceptDuplicatePrompt,
			CrossRelations:      DefaultCrossRelationsPrompt,
			InternalRelations:   DefaultInternalRelationsPrompt,
			MaxNewConcepts:      20,
			MaxExistingConcepts: 30,
			ResolveDuplicates:   true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Concurrency: ConcurrencyConfig{
			Research: 4,
		},
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with any set environment variables.
func (c *Config) ApplyEnv() {
	envOverride(&c.LLM.Provider, "LLM_PROVIDER")
	envOverride(&c.LLM.Model, "LLM_MODEL")
	envOverride(&c.LLM.APIKey, "LLM_API_KEY")
	envOverride(&c.LLM.BaseURL, "LLM_BASE_URL")
	envOverride(&c.Memgraph.URI, "MEMGRAPH_URI")
	envOverride(&c.Memgraph.User, "MEMGRAPH_USER")
	envOverride(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	envOverride(&c.Paths.Output, "KGRAPH_OUTPUT")
	envOverride(&c.Paths.Input, "KGRAPH_INPUT")
	envOverride(&c.Logging.Level, "LOG_LEVEL")
	envOverride(&c.Server.Port, "PORT")
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the values the pipeline cannot run without.
func (c *Config) Validate() error {
	provider := strings.ToLower(c.LLM.Provider)
	known := false
	for _, p := range supportedProviders {
		if p == provider {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, c.LLM.Provider)
	}
	if c.Paths.Output == "" {
		return errors.New("paths.output must not be empty")
	}
	return nil
}
