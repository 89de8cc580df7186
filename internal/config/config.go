package config

import (
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string        `env:"ZIFT_API_BASE_URL" env-default:"http://localhost:8080/api/v1"`
	ResumeParserURL string        `env:"ZIFT_RESUME_PARSER_URL" env-default:"https://resumeparser.api.thezift.com/upload-resume/"`
	DBPath          string        `env:"ZIFT_DB" env-default:"zift.sqlite"`
	HTTPTimeout     time.Duration `env:"ZIFT_HTTP_TIMEOUT" env-default:"20s"`
	SearchDebounce  time.Duration `env:"ZIFT_SEARCH_DEBOUNCE" env-default:"800ms"`
	DebugAddr       string        `env:"ZIFT_DEBUG_ADDR"`

	GoogleClientID     string `env:"ZIFT_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"ZIFT_GOOGLE_CLIENT_SECRET"`

	NotionToken string `env:"NOTION_TOKEN"`
	NotionDBID  string `env:"NOTION_DB_ID"`
}

// Load reads .env (if present) into the environment and binds it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.NotionDBID = normalizeNotionID(cfg.NotionDBID)
	return cfg, nil
}

// GoogleEnabled reports whether federated sign-in is configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != ""
}

func (c Config) NotionEnabled() bool {
	return c.NotionToken != "" && c.NotionDBID != ""
}

// normalizeNotionID removes dashes if present.
func normalizeNotionID(id string) string {
	id = strings.TrimSpace(id)
	return strings.ReplaceAll(id, "-", "")
}

// Mask hides all but the ends of a secret for startup logging.
func Mask(s string) string {
	if len(s) <= 10 {
		return "****"
	}
	return s[:4] + "…" + s[len(s)-4:]
}
