package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"PORT"`
	Env     string `mapstructure:"APP_ENV"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	CatalogBaseURL      string        `mapstructure:"CATALOG_BASE_URL"`
	CatalogTimeout      time.Duration `mapstructure:"CATALOG_TIMEOUT"`
	CatalogRatePerSec   float64       `mapstructure:"CATALOG_RATE_PER_SEC"`
	CatalogBurst        int           `mapstructure:"CATALOG_BURST"`
	GenerationBaseURL   string        `mapstructure:"GENERATION_BASE_URL"`
	GenerationTimeout   time.Duration `mapstructure:"GENERATION_TIMEOUT"`
	DraftTTL            time.Duration `mapstructure:"DRAFT_TTL"`
	GapTightMinutes     int           `mapstructure:"GAP_TIGHT_MINUTES"`
	GapExcessiveMinutes int           `mapstructure:"GAP_EXCESSIVE_MINUTES"`

	AllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATALOG_CACHE_TTL", 10*time.Minute)
	v.SetDefault("CATALOG_BASE_URL", "http://localhost:9000")
	v.SetDefault("CATALOG_TIMEOUT", 10*time.Second)
	v.SetDefault("CATALOG_RATE_PER_SEC", 20.0)
	v.SetDefault("CATALOG_BURST", 5)
	v.SetDefault("GENERATION_BASE_URL", "http://localhost:9100")
	v.SetDefault("GENERATION_TIMEOUT", 60*time.Second)
	v.SetDefault("DRAFT_TTL", 24*time.Hour)
	v.SetDefault("GAP_TIGHT_MINUTES", 15)
	v.SetDefault("GAP_EXCESSIVE_MINUTES", 180)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// Load reads .env (if present), then an optional config.yaml, then the
// environment, which wins over both.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
