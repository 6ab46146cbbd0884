package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/spf13/viper"
)

// Config contains runtime settings for the matching service
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`

	AWS struct {
		Region string `mapstructure:"region"`
		Bucket string `mapstructure:"bucket"`
	} `mapstructure:"aws"`

	OpenAI struct {
		APIKey              string  `mapstructure:"api_key"`
		SemanticSkills      bool    `mapstructure:"semantic_skills"`
		SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	} `mapstructure:"openai"`

	Analysis struct {
		Workers        int                   `mapstructure:"workers"`
		QueueWorkers   int                   `mapstructure:"queue_workers"`
		CvTimeout      time.Duration         `mapstructure:"cv_timeout"`
		DurationPolicy string                `mapstructure:"duration_policy"`
		Weights        engine.ScoringWeights `mapstructure:"weights"`
		VocabularyFile string                `mapstructure:"vocabulary_file"`
	} `mapstructure:"analysis"`
}

// Load populates config from an optional YAML file (SIFT_CONFIG) and
// environment variables prefixed with SIFT_
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "sift")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("analysis.workers", 4)
	v.SetDefault("analysis.queue_workers", 2)
	v.SetDefault("analysis.cv_timeout", 30*time.Second)
	v.SetDefault("analysis.duration_policy", string(engine.DurationSum))
	v.SetDefault("openai.similarity_threshold", 0.55)

	v.SetEnvPrefix("SIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DSN builds the Postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// DurationPolicy returns the configured duration policy, defaulting to Sum
// for any unknown value
func (c *Config) DurationPolicy() engine.DurationPolicy {
	switch engine.DurationPolicy(c.Analysis.DurationPolicy) {
	case engine.DurationMax:
		return engine.DurationMax
	case engine.DurationLast:
		return engine.DurationLast
	default:
		return engine.DurationSum
	}
}

// Vocabulary loads the keyword tables: the built-in defaults, overridden by
// the configured vocabulary file when one is set
func (c *Config) Vocabulary() (engine.Vocabulary, error) {
	if c.Analysis.VocabularyFile == "" {
		return engine.DefaultVocabulary(), nil
	}

	v := viper.New()
	v.SetConfigFile(c.Analysis.VocabularyFile)
	if err := v.ReadInConfig(); err != nil {
		return engine.Vocabulary{}, fmt.Errorf("read vocabulary file %s: %w", c.Analysis.VocabularyFile, err)
	}

	var vocab engine.Vocabulary
	if err := v.Unmarshal(&vocab); err != nil {
		return engine.Vocabulary{}, fmt.Errorf("unmarshal vocabulary: %w", err)
	}
	return vocab, nil
}

// Weights returns the configured default weights, falling back to the
// engine's standard distribution
func (c *Config) Weights() engine.ScoringWeights {
	if c.Analysis.Weights.IsZero() {
		return engine.DefaultWeights()
	}
	return c.Analysis.Weights
}
