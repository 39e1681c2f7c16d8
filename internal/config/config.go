package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	ImagePath    string
	OutputPath   string
	DBPath       string
	LogDirectory string
	MirrorPort   int // 0 wyłącza serwer podglądu
}

// Load reads an optional .env file and builds the configuration from the environment.
func Load() *Config {
	// .env jest opcjonalny, brak pliku nie jest błędem
	_ = godotenv.Load()

	return &Config{
		WindowTitle:  getEnv("WINDOW_TITLE", "img"),
		WindowWidth:  getEnvAsInt("WINDOW_WIDTH", 320),
		WindowHeight: getEnvAsInt("WINDOW_HEIGHT", 240),
		ImagePath:    getEnv("IMAGE_PATH", filepath.Join(".", "images", "01.jpeg")),
		OutputPath:   getEnv("OUTPUT_PATH", filepath.Join(".", "images", "New.jpg")),
		DBPath:       getEnv("DB_PATH", filepath.Join(".", "data", "snapshots.db")),
		LogDirectory: getEnv("LOG_DIR", filepath.Join(".", "logs")),
		MirrorPort:   getEnvAsInt("MIRROR_PORT", 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
