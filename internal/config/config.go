package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	RunMigrations  bool   `envconfig:"RUN_MIGRATIONS" default:"false"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"migrations"`

	// Secret shared with the external auth provider; owner routes verify
	// HS256 tokens signed with it.
	JWTSecret string `envconfig:"JWT_SECRET"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// When the mechanics/bookings lookup fails, list every template slot
	// instead of returning nothing.
	ShowSlotsOnDegradedStaffing bool          `envconfig:"SHOW_SLOTS_ON_DEGRADED_STAFFING" default:"true"`
	SlotCacheTTL                time.Duration `envconfig:"SLOT_CACHE_TTL" default:"30s"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	SendgridAPIKey    string `envconfig:"SENDGRID_API_KEY"`
	SendgridFromEmail string `envconfig:"SENDGRID_FROM_EMAIL"`
	SendgridFromName  string `envconfig:"SENDGRID_FROM_NAME" default:"Revonn"`

	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `envconfig:"TWILIO_FROM_NUMBER"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}
	return &cfg, nil
}
