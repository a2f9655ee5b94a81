package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr        string
	DBPath            string
	PhotoPath         string
	LogLevel          string
	LogFile           string
	AIProvider        string
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	ClaudeAPIKey      string
	ClaudeModel       string
	USDAAPIKey        string
	USDABaseURL       string
	OFFBaseURL        string
	FoodSearchEnabled bool
}

// setting ties a config key to its environment variable and default.
type setting struct {
	key string
	env string
	def any
}

var settings = []setting{
	{"listen_addr", "LISTEN_ADDR", ":8080"},
	{"db_path", "DB_PATH", "/data/mealai.db"},
	{"photo_path", "PHOTO_LOCAL_PATH", "/data/photos"},
	{"log_level", "LOG_LEVEL", "info"},
	{"log_file", "LOG_FILE", ""},
	{"ai_provider", "AI_PROVIDER", "openai"},
	{"openai_api_key", "OPENAI_API_KEY", ""},
	{"openai_model", "OPENAI_MODEL", "gpt-4o-mini"},
	{"openai_base_url", "OPENAI_BASE_URL", "https://api.openai.com/v1"},
	{"claude_api_key", "CLAUDE_API_KEY", ""},
	{"claude_model", "CLAUDE_MODEL", "claude-sonnet-4-5"},
	{"usda_api_key", "USDA_API_KEY", ""},
	{"usda_base_url", "USDA_BASE_URL", "https://api.nal.usda.gov/fdc/v1"},
	{"off_base_url", "OFF_BASE_URL", "https://world.openfoodfacts.org/api/v2"},
	{"food_search_enabled", "FOOD_SEARCH_ENABLED", true},
}

// Load reads defaults, then an optional YAML file, then the environment, each
// overriding the last. An explicit path must exist; without one ./mealai.yaml
// is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		if err := v.BindEnv(s.key, s.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", s.env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mealai")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &Config{
		ListenAddr:        v.GetString("listen_addr"),
		DBPath:            v.GetString("db_path"),
		PhotoPath:         v.GetString("photo_path"),
		LogLevel:          v.GetString("log_level"),
		LogFile:           v.GetString("log_file"),
		AIProvider:        v.GetString("ai_provider"),
		OpenAIAPIKey:      v.GetString("openai_api_key"),
		OpenAIModel:       v.GetString("openai_model"),
		OpenAIBaseURL:     v.GetString("openai_base_url"),
		ClaudeAPIKey:      v.GetString("claude_api_key"),
		ClaudeModel:       v.GetString("claude_model"),
		USDAAPIKey:        v.GetString("usda_api_key"),
		USDABaseURL:       v.GetString("usda_base_url"),
		OFFBaseURL:        v.GetString("off_base_url"),
		FoodSearchEnabled: v.GetBool("food_search_enabled"),
	}, nil
}
