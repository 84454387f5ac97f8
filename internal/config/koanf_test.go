// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/affinity/internal/validation"
)

// isolate runs the test in an empty directory with no config-related
// environment variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, "")
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Data.UsersPath != "users.csv" || cfg.Data.PostsPath != "posts.csv" {
		t.Errorf("Data paths = %q, %q", cfg.Data.UsersPath, cfg.Data.PostsPath)
	}
	if !cfg.Data.StrictIDs {
		t.Error("Data.StrictIDs should be true by default")
	}
	if cfg.Report.Subjects != 15 {
		t.Errorf("Report.Subjects = %d, want 15", cfg.Report.Subjects)
	}
	if cfg.Report.Format != "text" {
		t.Errorf("Report.Format = %q, want text", cfg.Report.Format)
	}
	if cfg.Recommend.UserLimit != 5 || cfg.Recommend.PostLimit != 5 {
		t.Errorf("Recommend limits = %d, %d, want 5, 5", cfg.Recommend.UserLimit, cfg.Recommend.PostLimit)
	}
	if cfg.Recommend.TieBreak != "stable" {
		t.Errorf("Recommend.TieBreak = %q, want stable", cfg.Recommend.TieBreak)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"AFFINITY_USERS_PATH", "data.users_path"},
		{"AFFINITY_POSTS_PATH", "data.posts_path"},
		{"AFFINITY_STRICT_IDS", "data.strict_ids"},
		{"AFFINITY_SUBJECTS", "report.subjects"},
		{"AFFINITY_REPORT_FORMAT", "report.format"},
		{"AFFINITY_WORKERS", "report.workers"},
		{"AFFINITY_TIE_BREAK", "recommend.tie_break"},
		{"AFFINITY_LOG_LEVEL", "logging.level"},
		{"AFFINITY_METRICS_TEXTFILE", "metrics.textfile_path"},
		{"AFFINITY_METRICS_TEXTFILE_INTERVAL", "metrics.textfile_interval"},
		{"AFFINITY_SERVER_ADDR", "server.addr"},

		// Unknown (should return empty)
		{"AFFINITY_RANDOM", ""},
		{"PATH", ""},
		{"LOG_LEVEL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	dir := isolate(t)

	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty string", got)
	}

	writeFile(t, filepath.Join(dir, "config.yaml"), "report:\n  subjects: 2\n")
	if got := findConfigFile(); got != "config.yaml" {
		t.Errorf("findConfigFile() = %q, want config.yaml", got)
	}

	writeFile(t, filepath.Join(dir, "affinity.yaml"), "report:\n  subjects: 3\n")
	if got := findConfigFile(); got != "affinity.yaml" {
		t.Errorf("findConfigFile() = %q, want affinity.yaml", got)
	}

	custom := filepath.Join(dir, "custom.yaml")
	writeFile(t, custom, "report:\n  subjects: 4\n")
	t.Setenv(ConfigPathEnvVar, custom)
	if got := findConfigFile(); got != custom {
		t.Errorf("findConfigFile() = %q, want %q", got, custom)
	}

	// A missing CONFIG_PATH falls back to the default paths.
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got != "affinity.yaml" {
		t.Errorf("findConfigFile() = %q, want affinity.yaml", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Report.Subjects != 15 || cfg.Data.UsersPath != "users.csv" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_EnvVars(t *testing.T) {
	isolate(t)

	t.Setenv("AFFINITY_USERS_PATH", "/data/u.csv")
	t.Setenv("AFFINITY_SUBJECTS", "3")
	t.Setenv("AFFINITY_STRICT_IDS", "false")
	t.Setenv("AFFINITY_TIE_BREAK", "id")
	t.Setenv("AFFINITY_LOG_LEVEL", "debug")

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.UsersPath != "/data/u.csv" {
		t.Errorf("Data.UsersPath = %q", cfg.Data.UsersPath)
	}
	if cfg.Report.Subjects != 3 {
		t.Errorf("Report.Subjects = %d, want 3", cfg.Report.Subjects)
	}
	if cfg.Data.StrictIDs {
		t.Error("Data.StrictIDs = true, want false")
	}
	if cfg.Recommend.TieBreak != "id" {
		t.Errorf("Recommend.TieBreak = %q, want id", cfg.Recommend.TieBreak)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Defaults are still applied for unset values
	if cfg.Data.PostsPath != "posts.csv" {
		t.Errorf("Data.PostsPath = %q, want posts.csv (default)", cfg.Data.PostsPath)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "affinity.yaml")
	writeFile(t, path, `
data:
  users_path: people.csv
report:
  subjects: 4
  format: json
recommend:
  post_limit: 10
logging:
  format: json
`)

	cfg, err := Load(LoadOptions{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.UsersPath != "people.csv" {
		t.Errorf("Data.UsersPath = %q", cfg.Data.UsersPath)
	}
	if cfg.Report.Subjects != 4 || cfg.Report.Format != "json" {
		t.Errorf("Report = %+v", cfg.Report)
	}
	if cfg.Recommend.PostLimit != 10 || cfg.Recommend.UserLimit != 5 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q", cfg.Logging.Format)
	}
}

func TestLoad_ServerSettings(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "affinity.yaml")
	writeFile(t, path, `
server:
  addr: 127.0.0.1:9090
  read_timeout: 2s
  cors_origins:
    - https://example.com
`)
	t.Setenv("AFFINITY_SERVER_RATE_LIMIT", "0")
	t.Setenv("AFFINITY_SERVER_SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 2*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 2s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 10s (default)", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("Server.RateLimit = %d, want 0", cfg.Server.RateLimit)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://example.com" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "report:\n  subjects: 4\n  workers: 2\n")
	t.Setenv("AFFINITY_SUBJECTS", "6")
	t.Setenv("AFFINITY_WORKERS", "3")

	cfg, err := Load(LoadOptions{
		Overrides: map[string]interface{}{"report.workers": 8},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Report.Subjects != 6 {
		t.Errorf("Report.Subjects = %d, want 6 (env over file)", cfg.Report.Subjects)
	}
	if cfg.Report.Workers != 8 {
		t.Errorf("Report.Workers = %d, want 8 (override over env)", cfg.Report.Workers)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) LoadOptions
		wantErr string
	}{
		{
			name: "explicit config file missing",
			setup: func(t *testing.T, dir string) LoadOptions {
				return LoadOptions{ConfigPath: filepath.Join(dir, "nope.yaml")}
			},
			wantErr: "nope.yaml",
		},
		{
			name: "malformed yaml",
			setup: func(t *testing.T, dir string) LoadOptions {
				path := filepath.Join(dir, "bad.yaml")
				writeFile(t, path, "report: [unclosed\n")
				return LoadOptions{ConfigPath: path}
			},
			wantErr: "failed to load config file",
		},
		{
			name: "unknown override key",
			setup: func(t *testing.T, dir string) LoadOptions {
				return LoadOptions{Overrides: map[string]interface{}{"report.colour": "red"}}
			},
			wantErr: `unknown configuration key "report.colour"`,
		},
		{
			name: "zero subjects",
			setup: func(t *testing.T, dir string) LoadOptions {
				return LoadOptions{Overrides: map[string]interface{}{"report.subjects": 0}}
			},
			wantErr: "report.subjects must be at least 1",
		},
		{
			name: "unknown format from env",
			setup: func(t *testing.T, dir string) LoadOptions {
				t.Setenv("AFFINITY_REPORT_FORMAT", "xml")
				return LoadOptions{}
			},
			wantErr: "report.format must be one of: text json",
		},
		{
			name: "non-numeric env value",
			setup: func(t *testing.T, dir string) LoadOptions {
				t.Setenv("AFFINITY_SUBJECTS", "lots")
				return LoadOptions{}
			},
			wantErr: "failed to unmarshal configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			_, err := Load(tt.setup(t, dir))
			if err == nil {
				t.Fatalf("Load() = nil error, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ValidationErrorIsStructError(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"recommend.user_limit": 500,
	}})

	var se *validation.StructError
	if !errors.As(err, &se) {
		t.Fatalf("error is %T (%v), want *validation.StructError in chain", err, err)
	}
	if got := se.Paths(); len(got) != 1 || got[0] != "recommend.user_limit" {
		t.Errorf("Paths() = %v", got)
	}
}
