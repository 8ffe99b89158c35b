package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	DBPath        string           `json:"db_path"`
	Port          int              `json:"port"`
	LogConfig     logger.LogConfig `json:"log_config"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	Assistant     AssistantConfig  `json:"assistant"`
	Citation      CitationConfig   `json:"citation"`
	Corpus        CorpusConfig     `json:"corpus"`
	FileStore     FileStoreConfig  `json:"file_store"`
	Jobs          JobsConfig       `json:"jobs"`
}

type AssistantConfig struct {
	Provider       string      `json:"provider"`
	TimeoutSeconds int         `json:"timeout_seconds"`
	Data           interface{} `json:"data"`
}

type CitationConfig struct {
	Source          string      `json:"source"`
	SuggestLimit    int         `json:"suggest_limit"`
	CacheSize       int         `json:"cache_size"`
	CacheTTLMinutes int         `json:"cache_ttl_minutes"`
	Data            interface{} `json:"data"`
}

type CorpusConfig struct {
	Provider    string      `json:"provider"`
	MinRunWords int         `json:"min_run_words"`
	Data        interface{} `json:"data"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type JobsConfig struct {
	SessionCleanupCron   string `json:"session_cleanup_cron"`
	SessionRetentionDays int    `json:"session_retention_days"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Assistant.Provider == "" {
		cfg.Assistant.Provider = "rules"
	}
	if cfg.Assistant.TimeoutSeconds <= 0 {
		cfg.Assistant.TimeoutSeconds = 30
	}
	if cfg.Citation.Source == "" {
		cfg.Citation.Source = "builtin"
	}
	if cfg.Citation.SuggestLimit <= 0 {
		cfg.Citation.SuggestLimit = 5
	}
	if cfg.Citation.CacheSize <= 0 {
		cfg.Citation.CacheSize = 1024
	}
	if cfg.Citation.CacheTTLMinutes <= 0 {
		cfg.Citation.CacheTTLMinutes = 30
	}
	if cfg.Corpus.Provider == "" {
		cfg.Corpus.Provider = "local"
	}
	if cfg.Corpus.MinRunWords <= 0 {
		cfg.Corpus.MinRunWords = 6
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
		cfg.FileStore.Data = map[string]interface{}{"dir": "artifacts"}
	}
	if cfg.Jobs.SessionCleanupCron == "" {
		cfg.Jobs.SessionCleanupCron = "0 3 * * *"
	}
	if cfg.Jobs.SessionRetentionDays <= 0 {
		cfg.Jobs.SessionRetentionDays = 30
	}
	return &cfg, nil
}
