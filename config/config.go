package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Screening ScreeningConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ScreeningConfig configures the mammogram analysis pipeline.
type ScreeningConfig struct {
	AnalyzerURL string
	UploadDir   string
	Workers     int
	JobTimeout  time.Duration
}

// SeedConfig holds the initial admin account created by cmd/seed.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	jobTimeout, err := time.ParseDuration(viper.GetString("SCREENING_JOB_TIMEOUT"))
	if err != nil {
		jobTimeout = 10 * time.Minute
	}

	workers := viper.GetInt("SCREENING_WORKERS")
	if workers <= 0 {
		workers = 2
	}

	uploadDir := viper.GetString("SCREENING_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads/screenings"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Screening: ScreeningConfig{
			AnalyzerURL: viper.GetString("SCREENING_ANALYZER_URL"),
			UploadDir:   uploadDir,
			Workers:     workers,
			JobTimeout:  jobTimeout,
		},
		Seed: SeedConfig{
			AdminEmail:    viper.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("SEED_ADMIN_PASSWORD"),
			AdminName:     viper.GetString("SEED_ADMIN_NAME"),
		},
	}

	return config, nil
}
