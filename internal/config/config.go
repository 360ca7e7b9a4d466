package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Tesoreria"`
		Port int    `envconfig:"PORT" default:"8080"`
		Seed bool   `envconfig:"SEED" default:"true"`
	}

	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api/v1"`
		UserID  string        `envconfig:"API_USER_ID" default:""`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
	}

	List struct {
		PageSize int           `envconfig:"LIST_PAGE_SIZE" default:"12"`
		Debounce time.Duration `envconfig:"LIST_DEBOUNCE" default:"350ms"`
	}

	Log struct {
		File string `envconfig:"LOG_FILE" default:"tesoreria.log"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.List.PageSize <= 0 {
		return nil, fmt.Errorf("LIST_PAGE_SIZE must be positive, got %d", cfg.List.PageSize)
	}

	return &cfg, nil
}
