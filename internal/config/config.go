package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	JWTExpiryM  int    `env:"JWT_EXPIRY_MINUTES" envDefault:"60"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv      string `env:"APP_ENV" envDefault:"production"`

	MinimumDepositAmount    decimal.Decimal `env:"MINIMUM_DEPOSIT_AMOUNT" envDefault:"100"`
	MinimumWithdrawalAmount decimal.Decimal `env:"MINIMUM_WITHDRAWAL_AMOUNT" envDefault:"500"`
	AccountNumberStartFrom  int64           `env:"ACCOUNT_NUMBER_START_FROM" envDefault:"1000"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER" envDefault:""`
	SMTPPassword string `env:"SMTP_PASSWORD" envDefault:""`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"noreply@bankingapi.local"`
	FrontendURL  string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
