// Package config loads and validates application configuration from a YAML
// file with environment-variable overrides. It provides typed structs for the
// build pipeline (corpus, tokenizer, similarity, authority) and the serving
// layer (ranking, search, server).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Tokenizer  TokenizerConfig  `yaml:"tokenizer"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Authority  AuthorityConfig  `yaml:"authority"`
	Ranking    RankingConfig    `yaml:"ranking"`
	Search     SearchConfig     `yaml:"search"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// CorpusConfig points the build at the corpus directory.
type CorpusConfig struct {
	Dir string `yaml:"dir"`
}

// TokenizerConfig controls normalization.
type TokenizerConfig struct {
	MinTokenLength int      `yaml:"minTokenLength"`
	ExtraStopwords []string `yaml:"extraStopwords"`
}

// SimilarityConfig controls the pairwise graph build.
type SimilarityConfig struct {
	JaccardThreshold float64 `yaml:"jaccardThreshold"`
	MaxTokensPerDoc  int     `yaml:"maxTokensPerDoc"`
	Workers          int     `yaml:"workers"`
}

// AuthorityConfig controls the iterative authority computation.
type AuthorityConfig struct {
	Damping       float64 `yaml:"damping"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"maxIterations"`
}

// RankingConfig controls result scoring.
type RankingConfig struct {
	AuthorityBoost float64 `yaml:"authorityBoost"`
	DefaultMode    string  `yaml:"defaultMode"`
}

// SearchConfig controls query-time limits.
type SearchConfig struct {
	PatternBudget     time.Duration `yaml:"patternBudget"`
	MatchedTermsLimit int           `yaml:"matchedTermsLimit"`
	SuggestionSeeds   int           `yaml:"suggestionSeeds"`
	DefaultTopN       int           `yaml:"defaultTopN"`
	TopAuthorityCount int           `yaml:"topAuthorityCount"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// StorageConfig points at the artifact directory shared by the build and the server.
type StorageConfig struct {
	DataDir string `yaml:"dataDir"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Tokenizer.MinTokenLength < 1 {
		return fmt.Errorf("tokenizer.minTokenLength must be >= 1, got %d", c.Tokenizer.MinTokenLength)
	}
	if c.Similarity.JaccardThreshold < 0 || c.Similarity.JaccardThreshold > 1 {
		return fmt.Errorf("similarity.jaccardThreshold must be in [0,1], got %g", c.Similarity.JaccardThreshold)
	}
	if c.Authority.Damping <= 0 || c.Authority.Damping >= 1 {
		return fmt.Errorf("authority.damping must be in (0,1), got %g", c.Authority.Damping)
	}
	if c.Authority.MaxIterations < 1 {
		return fmt.Errorf("authority.maxIterations must be >= 1, got %d", c.Authority.MaxIterations)
	}
	switch c.Ranking.DefaultMode {
	case "occurrences", "authority", "hybrid":
	default:
		return fmt.Errorf("ranking.defaultMode must be one of occurrences, authority, hybrid; got %q", c.Ranking.DefaultMode)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Dir: "./corpus",
		},
		Tokenizer: TokenizerConfig{
			MinTokenLength: 3,
		},
		Similarity: SimilarityConfig{
			JaccardThreshold: 0.1,
			MaxTokensPerDoc:  50000,
			Workers:          0, // 0 means GOMAXPROCS
		},
		Authority: AuthorityConfig{
			Damping:       0.85,
			Tolerance:     1e-6,
			MaxIterations: 100,
		},
		Ranking: RankingConfig{
			AuthorityBoost: 10,
			DefaultMode:    "hybrid",
		},
		Search: SearchConfig{
			PatternBudget:     2 * time.Second,
			MatchedTermsLimit: 20,
			SuggestionSeeds:   3,
			DefaultTopN:       5,
			TopAuthorityCount: 10,
		},
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			DataDir: "./search_data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// applyEnvOverrides reads GS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GS_CORPUS_DIR"); v != "" {
		cfg.Corpus.Dir = v
	}
	if v := os.Getenv("GS_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("GS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GS_MIN_TOKEN_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Tokenizer.MinTokenLength = n
		}
	}
	if v := os.Getenv("GS_EXTRA_STOPWORDS"); v != "" {
		cfg.Tokenizer.ExtraStopwords = strings.Split(v, ",")
	}
	if v := os.Getenv("GS_JACCARD_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Similarity.JaccardThreshold = f
		}
	}
	if v := os.Getenv("GS_SIMILARITY_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Similarity.Workers = n
		}
	}
	if v := os.Getenv("GS_AUTHORITY_BOOST"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Ranking.AuthorityBoost = f
		}
	}
	if v := os.Getenv("GS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
