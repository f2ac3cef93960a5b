package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvKey, EnvLampID, EnvProject, EnvBaseURL} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.EnvFile != "" {
		t.Fatalf("EnvFile = %q, want empty", cfg.EnvFile)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("Validate = %v, want ErrMissingCredentials", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
base_url = "  https://sandbox.lamplight.online/api/  "
key = "  abc123  "
lampid = 12
project = 3
timeout_seconds = 7
log_level = "debug"
log_file = "~/lamplight.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://sandbox.lamplight.online/api/" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Key != "abc123" || cfg.LampID != 12 || cfg.Project != 3 {
		t.Fatalf("credentials = %q/%d/%d, want abc123/12/3", cfg.Key, cfg.LampID, cfg.Project)
	}
	if cfg.Timeout != 7*time.Second {
		t.Fatalf("Timeout = %v, want 7s", cfg.Timeout)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoad_EnvFileAndEnvironmentOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `
key = "from-file"
lampid = 1
project = 1
`)
	writeFile(t, filepath.Join(dir, ".env"), "LAMPLIGHT_KEY=from-dotenv\nLAMPLIGHT_ID=44\n")
	t.Setenv(EnvProject, "9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Key != "from-dotenv" {
		t.Fatalf("Key = %q, want from-dotenv", cfg.Key)
	}
	if cfg.LampID != 44 {
		t.Fatalf("LampID = %d, want 44", cfg.LampID)
	}
	if cfg.Project != 9 {
		t.Fatalf("Project = %d, want 9", cfg.Project)
	}
	if cfg.EnvFile != filepath.Join(dir, ".env") {
		t.Fatalf("EnvFile = %q", cfg.EnvFile)
	}
	if got := os.Getenv(EnvKey); got != "" {
		t.Fatalf("Load leaked %s=%q into the environment", EnvKey, got)
	}
}

func TestLoad_ProcessEnvBeatsDotenv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "LAMPLIGHT_KEY=from-dotenv\n")
	t.Setenv(EnvKey, "from-env")

	cfg, err := Load(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Key != "from-env" {
		t.Fatalf("Key = %q, want from-env", cfg.Key)
	}
}

func TestLoad_BadNumericEnvFails(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLampID, "twelve")
	_, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err == nil || !strings.Contains(err.Error(), EnvLampID) {
		t.Fatalf("Load error = %v, want it to mention %s", err, EnvLampID)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `key = [`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestValidate_ListsMissingFields(t *testing.T) {
	err := Config{Key: "k"}.Validate()
	if err == nil {
		t.Fatalf("Validate returned nil error")
	}
	if !strings.Contains(err.Error(), "lampid, project") {
		t.Fatalf("Validate error = %q, want it to list lampid, project", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
