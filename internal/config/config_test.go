package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	// Check defaults are applied
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.DatabasePath != "./data/arvelie.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "./data/arvelie.db")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.YearOffset != 0 {
		t.Errorf("YearOffset = %d, want 0", cfg.YearOffset)
	}
	if !cfg.TraditionalSeasons {
		t.Error("TraditionalSeasons = false, want true")
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "UTC")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	// Set custom values
	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DATABASE_PATH", "/data/test.db")
	os.Setenv("API_KEY", "secret-key-123")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("ARVELIE_YEAR_OFFSET", "2000")
	os.Setenv("SEASONS_TRADITIONAL", "false")
	os.Setenv("TZ_NAME", "Europe/Berlin")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.YearOffset != 2000 {
		t.Errorf("YearOffset = %d, want 2000", cfg.YearOffset)
	}
	if cfg.TraditionalSeasons {
		t.Error("TraditionalSeasons = true, want false")
	}
	if got := cfg.Location().String(); got != "Europe/Berlin" {
		t.Errorf("Location() = %q, want %q", got, "Europe/Berlin")
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv()
	os.Setenv("ARVELIE_YEAR_OFFSET", "99999")
	defer clearEnv()

	if _, err := Load(); err == nil {
		t.Error("Load() with oversized offset succeeded, want error")
	}

	os.Setenv("ARVELIE_YEAR_OFFSET", "1950")
	if _, err := Load(); err == nil {
		t.Error("Load() with mid-century offset succeeded, want error")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:         8080,
			Env:          EnvDevelopment,
			DatabasePath: "./data/test.db",
			LogLevel:     "info",
			LogFormat:    "text",
			Timezone:     "UTC",
		}
	}

	// Table-driven tests for validation
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid development config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid production config",
			modify: func(c *Config) {
				c.Env = EnvProduction
				c.APIKey = "required-in-prod"
				c.LogFormat = "json"
			},
			wantErr: false,
		},
		{
			name:    "production requires API key",
			modify:  func(c *Config) { c.Env = EnvProduction },
			wantErr: true,
		},
		{
			name:    "invalid port - too low",
			modify:  func(c *Config) { c.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port - too high",
			modify:  func(c *Config) { c.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid environment",
			modify:  func(c *Config) { c.Env = "invalid" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: true,
		},
		{
			name:    "empty database path",
			modify:  func(c *Config) { c.DatabasePath = "" },
			wantErr: true,
		},
		{
			name:    "negative year offset",
			modify:  func(c *Config) { c.YearOffset = -100 },
			wantErr: true,
		},
		{
			name:    "century year offset",
			modify:  func(c *Config) { c.YearOffset = 2000 },
			wantErr: false,
		},
		{
			name:    "mid-century year offset",
			modify:  func(c *Config) { c.YearOffset = 1950 },
			wantErr: true,
		},
		{
			name:    "single year offset",
			modify:  func(c *Config) { c.YearOffset = 5 },
			wantErr: true,
		},
		{
			name:    "unknown time zone",
			modify:  func(c *Config) { c.Timezone = "Mars/Olympus_Mons" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

func TestConfig_Location_Fallback(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Invalid"}
	if cfg.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY",
		"LOG_LEVEL", "LOG_FORMAT",
		"ARVELIE_YEAR_OFFSET", "SEASONS_TRADITIONAL", "TZ_NAME",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
