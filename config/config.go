package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	Timezone       string
	DBPath         string
	SeedDir        string
	MetricsEnabled bool

	// APIKey guards write endpoints when set.
	APIKey string
}

// Load reads .env when present; process environment wins over the file.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file loaded: %v", err)
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		Timezone:       get("TZ", "America/Argentina/Buenos_Aires"),
		DBPath:         get("DB_PATH", "fertiplan.db"),
		SeedDir:        get("SEED_DIR", "data"),
		MetricsEnabled: !strings.EqualFold(get("METRICS_ENABLED", "true"), "false"),
		APIKey:         get("API_KEY", ""),
	}
	shown := cfg
	if shown.APIKey != "" {
		shown.APIKey = "***"
	}
	log.Printf("[cfg] %+v", shown)
	return cfg
}
