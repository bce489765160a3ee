package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the recall pipeline.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Split     SplitConfig     `yaml:"split"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	LLM       LLMConfig       `yaml:"llm"`
	Watch     WatchConfig     `yaml:"watch"`
}

// PathsConfig holds the on-disk locations the pipeline works with. Relative
// paths are resolved against the root directory passed on the command line.
type PathsConfig struct {
	DocsDir     string `yaml:"docs_dir"`     // source PDFs
	MarkdownDir string `yaml:"markdown_dir"` // converted markdown, one file per document
	ParentStore string `yaml:"parent_store"` // one JSON file per parent chunk
	IndexDB     string `yaml:"index_db"`     // bbolt child index
	SpeakerDB   string `yaml:"speaker_db"`   // enrolled voice profiles
}

// SplitConfig holds the parent/child chunking bounds.
type SplitConfig struct {
	MinParentSize int `yaml:"min_parent_size"`
	MaxParentSize int `yaml:"max_parent_size"`
	ChildSize     int `yaml:"child_size"`
	ChildOverlap  int `yaml:"child_overlap"`
}

// EmbeddingConfig holds dense embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "ollama", "mock"
	Model     string `yaml:"model"`       // e.g. "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // environment variable holding the API key
	BaseURL   string `yaml:"base_url"`    // override for OpenAI-compatible endpoints
	Dimension int    `yaml:"dimension"`   // used by the mock provider only
	BatchSize int    `yaml:"batch_size"`
}

// SearchConfig holds query-time configuration.
type SearchConfig struct {
	TopK           int     `yaml:"top_k"`
	ScoreThreshold float64 `yaml:"score_threshold"` // minimum fused score for a hit
	DenseWeight    float64 `yaml:"dense_weight"`    // dense share of the fused score (0-1)
}

// LLMConfig holds the chat model used by the ask command.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "deepseek", "local"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
}

// WatchConfig holds the file-watch trigger configuration.
type WatchConfig struct {
	DebounceSeconds int `yaml:"debounce_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DocsDir:     "docs",
			MarkdownDir: "markdown",
			ParentStore: "parent_store",
			IndexDB:     filepath.Join(".recall", "index.db"),
			SpeakerDB:   filepath.Join(".recall", "speakers.json"),
		},
		Split: SplitConfig{
			MinParentSize: 2000,
			MaxParentSize: 10000,
			ChildSize:     500,
			ChildOverlap:  100,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		Search: SearchConfig{
			TopK:           5,
			ScoreThreshold: 0.7,
			DenseWeight:    0.5,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Watch: WatchConfig{
			DebounceSeconds: 2,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for recall.yaml,
// then .recall/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "recall.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".recall", "config.yaml")
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
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns path joined onto root unless it is already absolute.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
