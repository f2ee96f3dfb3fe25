package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN               string
	Environment         string
	HTTPAddr            string
	JWTSecret           string
	MigrationsPath      string
	ScheduleConfigPath  string
	GenerationCron      string
	TelegramToken       string
	TelegramAdminChatID int64
	Timezone            string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set plain env vars
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:              os.Getenv("DB_DSN"),
		Environment:        os.Getenv("ENV"),
		HTTPAddr:           os.Getenv("HTTP_ADDR"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		MigrationsPath:     os.Getenv("MIGRATIONS_PATH"),
		ScheduleConfigPath: os.Getenv("SCHEDULE_CONFIG_PATH"),
		GenerationCron:     os.Getenv("GENERATION_CRON"),
		TelegramToken:      os.Getenv("TELEGRAM_TOKEN"),
		Timezone:           os.Getenv("TIMEZONE"),
	}

	if chatID := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
		cfg.TelegramAdminChatID = id
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.ScheduleConfigPath == "" {
		cfg.ScheduleConfigPath = "schedule_config.json"
	}
	if cfg.GenerationCron == "" {
		// nightly, after the platform's own maintenance window
		cfg.GenerationCron = "0 3 * * *"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Africa/Cairo"
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
