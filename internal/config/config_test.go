package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ========================================
// Config Tests
// ========================================

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"WINDOW_TITLE", "WINDOW_WIDTH", "WINDOW_HEIGHT", "IMAGE_PATH", "OUTPUT_PATH", "MIRROR_PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.WindowTitle != "img" {
		t.Errorf("Expected window title 'img', got %s", cfg.WindowTitle)
	}
	if cfg.WindowWidth != 320 || cfg.WindowHeight != 240 {
		t.Errorf("Expected 320x240, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.ImagePath != filepath.Join(".", "images", "01.jpeg") {
		t.Errorf("Unexpected image path: %s", cfg.ImagePath)
	}
	if cfg.OutputPath != filepath.Join(".", "images", "New.jpg") {
		t.Errorf("Unexpected output path: %s", cfg.OutputPath)
	}
	if cfg.MirrorPort != 0 {
		t.Errorf("Expected mirror disabled by default, got port %d", cfg.MirrorPort)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("WINDOW_TITLE", "preview")
	t.Setenv("WINDOW_WIDTH", "640")
	t.Setenv("WINDOW_HEIGHT", "480")
	t.Setenv("OUTPUT_PATH", "/tmp/out.jpg")
	t.Setenv("MIRROR_PORT", "9090")

	cfg := Load()

	if cfg.WindowTitle != "preview" {
		t.Errorf("Expected window title 'preview', got %s", cfg.WindowTitle)
	}
	if cfg.WindowWidth != 640 || cfg.WindowHeight != 480 {
		t.Errorf("Expected 640x480, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.OutputPath != "/tmp/out.jpg" {
		t.Errorf("Expected output path /tmp/out.jpg, got %s", cfg.OutputPath)
	}
	if cfg.MirrorPort != 9090 {
		t.Errorf("Expected mirror port 9090, got %d", cfg.MirrorPort)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer os.Chdir(wd)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("IMAGE_PATH=from_dotenv.png\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}

	// godotenv nie nadpisuje istniejących zmiennych, więc usuwamy ją całkowicie
	t.Setenv("IMAGE_PATH", "")
	os.Unsetenv("IMAGE_PATH")

	cfg := Load()
	if cfg.ImagePath != "from_dotenv.png" {
		t.Errorf("Expected image path from .env, got %s", cfg.ImagePath)
	}
	os.Unsetenv("IMAGE_PATH")
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	tests := []struct {
		value    string
		def      int
		expected int
	}{
		{"", 5, 5},
		{"abc", 10, 10},
		{"12.5", 7, 7},
		{"42", 1, 42},
	}

	for _, tt := range tests {
		t.Setenv("TEST_INT_VALUE", tt.value)
		result := getEnvAsInt("TEST_INT_VALUE", tt.def)
		if result != tt.expected {
			t.Errorf("getEnvAsInt(%q, %d) = %d, expected %d", tt.value, tt.def, result, tt.expected)
		}
	}
}
