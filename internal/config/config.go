package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	LogFormat     string        `yaml:"log_format"`
	Scorer        ScorerConfig  `yaml:"scorer"`
}

// ScorerConfig configures the outbound chat-completion call used to grade
// answers. The API key is never read from YAML, only from the environment.
type ScorerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
	APIKey  string        `yaml:"-"`
}

func LoadConfig(path string) (*Config, error) {
	// must leave headroom for the scoring call on the submit path
	apiTimeout := 45 * time.Second
	tokenDuration := 1 * time.Hour

	cfg := &Config{
		Addr:          getEnv("MOCKVIEW_ADDR", ":5020"),
		JWTSecret:     getEnv("MOCKVIEW_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("MOCKVIEW_DATABASE_PATH", "mockview.db"),
		TokenDuration: tokenDuration,
		LogFormat:     getEnv("MOCKVIEW_LOG_FORMAT", "json"),
		Scorer: ScorerConfig{
			BaseURL: getEnv("MOCKVIEW_SCORER_URL", "https://api.perplexity.ai/chat/completions"),
			Model:   getEnv("MOCKVIEW_SCORER_MODEL", "sonar-pro"),
			Timeout: 30 * time.Second,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	// key stays out of config files
	cfg.Scorer.APIKey = getEnv("MOCKVIEW_SCORER_API_KEY", os.Getenv("PERPLEXITY_API_KEY"))

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
