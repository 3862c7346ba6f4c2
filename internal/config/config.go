package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string `env:"APP_ENV" env-default:"local"`
	HTTPAddr  string `env:"HTTP_ADDR" env-default:"0.0.0.0:8080"`
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`
	Postgres  Postgres
	S3        S3
}

type Postgres struct {
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `env:"POSTGRES_PORT" env-default:"5432"`
	User     string `env:"POSTGRES_USER" env-required:"true"`
	Password string `env:"POSTGRES_PASSWORD" env-required:"true"`
	DB       string `env:"POSTGRES_DB" env-required:"true"`
}

func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.DB)
}

type S3 struct {
	Endpoint      string `env:"S3_ENDPOINT"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	Bucket        string `env:"S3_BUCKET"`
	Region        string `env:"S3_REGION" env-default:"us-east-1"`
	UseSSL        bool   `env:"S3_USE_SSL" env-default:"true"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// MustLoad reads the configuration from the environment, loading a .env file
// first when one is present. It panics on a missing required variable.
func MustLoad() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}
	return &cfg
}
