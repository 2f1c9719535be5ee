package config

import (
	"fmt"
	"os"

	"vibewiki_backend/internal/util"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig
	Content        ContentConfig
	Storage        StorageConfig
	Search         SearchConfig
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Chatbot        ChatbotConfig        `mapstructure:"chatbot"`
}

type ServerConfig struct {
	Mode string
}

type ContentConfig struct {
	Dir string
	// BCP 47 tag used for locale-aware title collation. The wiki is
	// Arabic-first, so "ar" is the default.
	Language string
}

type StorageConfig struct {
	Dir         string `mapstructure:"dir"`
	ProgressKey string `mapstructure:"progress_key"`
}

type SearchConfig struct {
	// Normalized fuzzy threshold in (0,1]; lower is stricter.
	Threshold float64 `mapstructure:"threshold"`
}

type RecommendationConfig struct {
	MaxResults      int     `mapstructure:"max_results"`
	MinConfidence   float64 `mapstructure:"min_confidence"`
	DiversityFactor float64 `mapstructure:"diversity_factor"`
}

type ChatbotConfig struct {
	// Fallback reply language when a message matches no rule: "ar" or "en".
	FallbackLanguage string `mapstructure:"fallback_language"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("VIBEWIKI")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Content
	viper.BindEnv("content.dir", "CONTENT_DIR")
	viper.BindEnv("content.language", "CONTENT_LANGUAGE")

	// Storage
	viper.BindEnv("storage.dir", "STORAGE_DIR")
	viper.BindEnv("storage.progress_key", "STORAGE_PROGRESS_KEY")

	viper.SetDefault("server.mode", "release")
	viper.SetDefault("content.language", "ar")
	viper.SetDefault("storage.progress_key", "vibewiki_user_progress")
	viper.SetDefault("search.threshold", 0.4)
	viper.SetDefault("recommendation.max_results", 5)
	viper.SetDefault("recommendation.min_confidence", 0.3)
	viper.SetDefault("recommendation.diversity_factor", 0.3)
	viper.SetDefault("chatbot.fallback_language", "ar")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Content.Dir == "" {
		return nil, fmt.Errorf("content.dir is required")
	}
	if _, err := os.Stat(cfg.Content.Dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("content directory %q: %w", cfg.Content.Dir, util.ErrCorpusDirMissing)
	}
	if cfg.Storage.Dir != "" {
		if _, err := os.Stat(cfg.Storage.Dir); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.Dir, 0755)
		}
	}
	if cfg.Search.Threshold <= 0 || cfg.Search.Threshold > 1 {
		return nil, fmt.Errorf("search.threshold must be in (0,1], got %v", cfg.Search.Threshold)
	}

	return &cfg, nil
}
