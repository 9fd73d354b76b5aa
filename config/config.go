package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Env      string `env:"APP_ENV" env-default:"local"`
	App      App
	Database Database
	Redis    Redis
	Auth     Auth
	Gateway  Gateway
	Cloud    Cloudinary
	SMTP     SMTP
}

type App struct {
	Port                    string        `env:"PORT" env-default:"8002"`
	AllowOrigins            string        `env:"ALLOW_ORIGINS" env-default:"http://localhost:5173"`
	BodyLimitMB             int           `env:"BODY_LIMIT_MB" env-default:"100"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"15s"`
	PaymentSweepCron        string        `env:"PAYMENT_SWEEP_CRON" env-default:"*/15 * * * *"`
	PaymentPendingTTL       time.Duration `env:"PAYMENT_PENDING_TTL" env-default:"2h"`
}

type Database struct {
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            uint          `env:"DB_PORT" env-default:"5432"`
	User            string        `env:"DB_USER" env-required:"true"`
	Password        string        `env:"DB_PASSWORD" env-required:"true"`
	Name            string        `env:"DB_NAME" env-required:"true"`
	SSLMode         string        `env:"DB_SSLMODE" env-default:"disable"`
	ConnectAttempts uint          `env:"DB_CONNECT_ATTEMPTS" env-default:"5"`
	ConnectDelay    time.Duration `env:"DB_CONNECT_DELAY" env-default:"1s"`
}

type Redis struct {
	Addr       string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB" env-default:"0"`
	ReceiptTTL time.Duration `env:"REDIS_RECEIPT_TTL" env-default:"24h"`
}

type Auth struct {
	JWTSecret     string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL      time.Duration `env:"JWT_TTL" env-default:"1h"`
	AdminUsername string        `env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
}

type Gateway struct {
	BaseURL   string        `env:"GATEWAY_URL" env-default:"https://api.razorpay.com/v1"`
	KeyID     string        `env:"GATEWAY_KEY_ID"`
	KeySecret string        `env:"GATEWAY_KEY_SECRET"`
	Timeout   time.Duration `env:"GATEWAY_TIMEOUT" env-default:"10s"`
}

type Cloudinary struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (g Gateway) Enabled() bool {
	return g.KeyID != "" && g.KeySecret != ""
}

func (s SMTP) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// Load reads an optional .env file and decodes the environment into Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := cron.ParseStandard(c.App.PaymentSweepCron); err != nil {
		return fmt.Errorf("PAYMENT_SWEEP_CRON: %w", err)
	}
	if c.App.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive, got %d", c.App.BodyLimitMB)
	}
	if c.App.PaymentPendingTTL <= 0 {
		return fmt.Errorf("PAYMENT_PENDING_TTL must be positive")
	}
	return nil
}
