package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"mathquest"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Bank  Bank
	Game  Game
	Redis Redis
	CORS  CORS
}

// Bank configures question pool generation.
type Bank struct {
	// Seed drives every generator and the sampler. Zero picks a random seed.
	Seed     uint64 `env:"BANK_SEED" envDefault:"0"`
	Target   int    `env:"BANK_TARGET_PER_CATEGORY" envDefault:"50"`
	Attempts int    `env:"BANK_MAX_ATTEMPTS" envDefault:"1000"`
	Strict   bool   `env:"BANK_STRICT" envDefault:"true"`
}

// Game groups gameplay defaults.
type Game struct {
	QuestionsPerRound int           `env:"QUESTIONS_PER_ROUND" envDefault:"10"`
	AutoAdvanceDelay  time.Duration `env:"AUTO_ADVANCE_DELAY" envDefault:"500ms"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	LockTimeout       time.Duration `env:"SESSION_LOCK_TIMEOUT" envDefault:"2s"`
	SweepInterval     time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	StarThresholds    []int         `env:"STAR_THRESHOLDS" envSeparator:"," envDefault:"90,70,50"`
}

// Redis holds the session store connection. An empty Addr keeps sessions in
// process memory.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: false}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *App) Validate() error {
	if c.Bank.Target <= 0 {
		return fmt.Errorf("BANK_TARGET_PER_CATEGORY must be positive, got %d", c.Bank.Target)
	}
	if c.Bank.Attempts <= 0 {
		return fmt.Errorf("BANK_MAX_ATTEMPTS must be positive, got %d", c.Bank.Attempts)
	}
	if c.Game.QuestionsPerRound <= 0 {
		return fmt.Errorf("QUESTIONS_PER_ROUND must be positive, got %d", c.Game.QuestionsPerRound)
	}
	if c.Game.AutoAdvanceDelay < 0 {
		return fmt.Errorf("AUTO_ADVANCE_DELAY must not be negative")
	}
	if t := c.Game.StarThresholds; len(t) != 3 || !(t[0] >= t[1] && t[1] >= t[2] && t[2] > 0 && t[0] <= 100) {
		return fmt.Errorf("STAR_THRESHOLDS must be three descending percentages, got %v", t)
	}
	return nil
}
