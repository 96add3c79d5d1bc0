// Package config loads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/bbyeodagung/web/pkg/db"
	"github.com/bbyeodagung/web/pkg/logger"
	"github.com/bbyeodagung/web/pkg/mailer"
	"github.com/bbyeodagung/web/pkg/mailer/resend"
	"github.com/bbyeodagung/web/pkg/redis"
	"github.com/bbyeodagung/web/pkg/storage"
)

// MinCookieSecretLen is the shortest COOKIE_SECRET accepted.
const MinCookieSecretLen = 32

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Port   string `env:"PORT" envDefault:"3000"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	CookieSecret  string        `env:"COOKIE_SECRET,required,notEmpty"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"4000s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"20s"`
	JobsEnabled     bool          `env:"JOBS_ENABLED" envDefault:"true"`
	JobWorkers      int           `env:"JOB_WORKERS" envDefault:"10"`
	EmailWorkers    int           `env:"JOB_EMAIL_WORKERS" envDefault:"2"`

	Log      logger.Config
	Database db.Config
	Redis    redis.Config
	Mailer   mailer.Config
	Resend   resend.Config
	Storage  storage.Config
}

// Load parses the environment and checks the values env tags cannot.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if len(c.CookieSecret) < MinCookieSecretLen {
		return fmt.Errorf("%w: COOKIE_SECRET must be at least %d bytes", ErrInvalidConfig, MinCookieSecretLen)
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("%w: SESSION_MAX_AGE must be positive", ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// IsProduction reports whether cookies should be Secure.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
