package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Store    StoreConfig
	DB       DBConfig
	Telegram TelegramConfig
}

type StoreConfig struct {
	UsersFile     string
	AdminPassword string
}

type DBConfig struct {
	Enabled     bool
	AutoMigrate bool
	Host        string
	Port        int
	User        string
	Password    string
	Database    string
}

type TelegramConfig struct {
	Token string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return &Config{
		Store: StoreConfig{
			UsersFile:     getEnv("USERS_FILE", "users.json"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "adminpass"),
		},
		DB: DBConfig{
			Enabled:     getBool("DB_ENABLED"),
			AutoMigrate: getBool("AUTO_MIGRATE"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        port,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Database:    getEnv("DB_NAME", "restaurant"),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getBool accepts "1" or "true" (any case).
func getBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return v == "1" || strings.EqualFold(v, "true")
}
