//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads evaluator configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"trpc.group/trpc-go/trpc-response-eval-go/log"
	"trpc.group/trpc-go/trpc-response-eval-go/record"
)

// Backend names.
const (
	BackendNone     = "none"
	BackendInMemory = "inmemory"
	BackendRedis    = "redis"
	BackendMySQL    = "mysql"
)

// Ethical scorer variants.
const (
	EthicalRuleBased  = "rule"
	EthicalClassifier = "classifier"
)

// Config holds all evaluator configuration.
type Config struct {
	// HumanTag is the platform of the reference record.
	HumanTag string `envconfig:"RESPEVAL_HUMAN_TAG" yaml:"human_tag"`
	// Parallelism is the number of candidates scored concurrently.
	Parallelism          int  `envconfig:"RESPEVAL_PARALLELISM" yaml:"parallelism"`
	SkipFailedCandidates bool `envconfig:"RESPEVAL_SKIP_FAILED" yaml:"skip_failed_candidates"`
	// RegistryFile is an optional YAML lexicon override.
	RegistryFile string `envconfig:"RESPEVAL_REGISTRY_FILE" yaml:"registry_file"`
	// SyllableDictFile is an optional CMU pronouncing dictionary, plain or
	// gzipped, replacing the embedded common-word subset.
	SyllableDictFile string `envconfig:"RESPEVAL_CMUDICT_FILE" yaml:"cmudict_file"`

	Classifier ClassifierConfig `yaml:"classifier"`
	Cache      CacheConfig      `yaml:"cache"`
	Result     ResultConfig     `yaml:"result"`
	Log        LogConfig        `yaml:"log"`
}

// ClassifierConfig holds the local model settings.
type ClassifierConfig struct {
	// EmotionModelDir holds the emotion model. Empty disables the built-in
	// sentiment scorer.
	EmotionModelDir string `envconfig:"RESPEVAL_EMOTION_MODEL_DIR" yaml:"emotion_model_dir"`

	// Ethical selects the ethical scorer: "rule" or "classifier".
	Ethical         string `envconfig:"RESPEVAL_ETHICAL_SCORER" yaml:"ethical"`
	EthicalModelDir string `envconfig:"RESPEVAL_ETHICAL_MODEL_DIR" yaml:"ethical_model_dir"`
	EthicalPositive string `envconfig:"RESPEVAL_ETHICAL_POSITIVE_LABEL" yaml:"ethical_positive_label"`

	LibraryPath string        `envconfig:"RESPEVAL_ONNX_LIBRARY" yaml:"onnx_library"`
	MaxLength   int           `envconfig:"RESPEVAL_MAX_SEQ_LENGTH" yaml:"max_seq_length"`
	Timeout     time.Duration `envconfig:"RESPEVAL_CLASSIFIER_TIMEOUT" yaml:"timeout"`
}

// CacheConfig holds the ethical alignment cache settings.
type CacheConfig struct {
	// Type is "inmemory" or "redis".
	Type        string        `envconfig:"RESPEVAL_CACHE_TYPE" yaml:"type"`
	RedisURL    string        `envconfig:"RESPEVAL_REDIS_URL" yaml:"redis_url"`
	RedisPrefix string        `envconfig:"RESPEVAL_REDIS_PREFIX" yaml:"redis_prefix"`
	TTL         time.Duration `envconfig:"RESPEVAL_CACHE_TTL" yaml:"ttl"`
}

// ResultConfig holds the result set storage settings.
type ResultConfig struct {
	// Type is "none", "inmemory" or "mysql".
	Type          string `envconfig:"RESPEVAL_RESULT_TYPE" yaml:"type"`
	MySQLDSN      string `envconfig:"RESPEVAL_MYSQL_DSN" yaml:"mysql_dsn"`
	MySQLInstance string `envconfig:"RESPEVAL_MYSQL_INSTANCE" yaml:"mysql_instance"`
	TablePrefix   string `envconfig:"RESPEVAL_MYSQL_TABLE_PREFIX" yaml:"table_prefix"`
	SkipDBInit    bool   `envconfig:"RESPEVAL_MYSQL_SKIP_DB_INIT" yaml:"skip_db_init"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"RESPEVAL_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"RESPEVAL_LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from defaults, an optional YAML file and the
// environment, in increasing priority.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the environment only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		HumanTag:    record.DefaultHumanTag,
		Parallelism: 1,
		Classifier: ClassifierConfig{
			Ethical:         EthicalRuleBased,
			EthicalPositive: "ethical",
			MaxLength:       512,
			Timeout:         30 * time.Second,
		},
		Cache: CacheConfig{Type: BackendInMemory},
		Result: ResultConfig{
			Type: BackendNone,
		},
		Log: LogConfig{
			Level:  log.LevelInfo,
			Format: log.EncodingConsole,
		},
	}
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []string
	if c.HumanTag == "" {
		errs = append(errs, "human_tag must not be empty")
	}
	if c.Parallelism < 1 {
		errs = append(errs, "parallelism must be positive")
	}
	switch c.Classifier.Ethical {
	case EthicalRuleBased:
	case EthicalClassifier:
		if c.Classifier.EthicalModelDir == "" {
			errs = append(errs, "classifier.ethical_model_dir is required for the classifier ethical scorer")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid ethical scorer: %s (must be rule or classifier)", c.Classifier.Ethical))
	}
	if c.Classifier.Timeout < 0 {
		errs = append(errs, "classifier.timeout must not be negative")
	}
	switch c.Cache.Type {
	case BackendInMemory:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			errs = append(errs, "cache.redis_url is required for the redis cache")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid cache type: %s (must be inmemory or redis)", c.Cache.Type))
	}
	switch c.Result.Type {
	case BackendNone, BackendInMemory:
	case BackendMySQL:
		if c.Result.MySQLDSN == "" && c.Result.MySQLInstance == "" {
			errs = append(errs, "result.mysql_dsn or result.mysql_instance is required for mysql storage")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid result type: %s (must be none, inmemory or mysql)", c.Result.Type))
	}
	switch c.Log.Level {
	case log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError:
	default:
		errs = append(errs, fmt.Sprintf("invalid log level: %s", c.Log.Level))
	}
	switch c.Log.Format {
	case log.EncodingConsole, log.EncodingJSON:
	default:
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be console or json)", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
