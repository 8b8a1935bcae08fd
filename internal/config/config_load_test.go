package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("PORT")
	os.Unsetenv("PDF2JSON_PORT")
	os.Unsetenv("PDF2JSON_HOST")
	os.Unsetenv("PDF2JSON_LOGLEVEL")
	os.Unsetenv("PDF2JSON_MAXUPLOADSIZE")
	os.Unsetenv("PDF2JSON_DEBUG")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	os.Args = []string{"pdf2json"}
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("LoadFromFlags() Host = %v, want %v", cfg.Host, "0.0.0.0")
	}
	if cfg.Port != 8000 {
		t.Errorf("LoadFromFlags() Port = %v, want %v", cfg.Port, 8000)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.MaxUploadSize != 10*1024*1024 {
		t.Errorf("LoadFromFlags() MaxUploadSize = %v, want %v", cfg.MaxUploadSize, 10*1024*1024)
	}
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantHost      string
		wantPort      int
		wantLogLevel  string
		wantDebug     bool
		wantMaxUpload int64
	}{
		{
			name:          "custom port",
			args:          []string{"pdf2json", "--port=9000"},
			wantHost:      "0.0.0.0",
			wantPort:      9000,
			wantLogLevel:  "info",
			wantDebug:     false,
			wantMaxUpload: 10 * 1024 * 1024,
		},
		{
			name:          "custom host and debug",
			args:          []string{"pdf2json", "--host=127.0.0.1", "--debug"},
			wantHost:      "127.0.0.1",
			wantPort:      8000,
			wantLogLevel:  "info",
			wantDebug:     true,
			wantMaxUpload: 10 * 1024 * 1024,
		},
		{
			name:          "custom upload limit and log level",
			args:          []string{"pdf2json", "--maxuploadsize=1048576", "--loglevel=warn"},
			wantHost:      "0.0.0.0",
			wantPort:      8000,
			wantLogLevel:  "warn",
			wantDebug:     false,
			wantMaxUpload: 1048576,
		},
	}

	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			resetFlags()
			clearEnvVars()

			cfg, err := LoadFromFlags()
			if err != nil {
				t.Fatalf("LoadFromFlags() unexpected error: %v", err)
			}

			if cfg.Host != tt.wantHost {
				t.Errorf("LoadFromFlags() Host = %v, want %v", cfg.Host, tt.wantHost)
			}
			if cfg.Port != tt.wantPort {
				t.Errorf("LoadFromFlags() Port = %v, want %v", cfg.Port, tt.wantPort)
			}
			if cfg.LogLevel != tt.wantLogLevel {
				t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, tt.wantLogLevel)
			}
			if cfg.Debug != tt.wantDebug {
				t.Errorf("LoadFromFlags() Debug = %v, want %v", cfg.Debug, tt.wantDebug)
			}
			if cfg.MaxUploadSize != tt.wantMaxUpload {
				t.Errorf("LoadFromFlags() MaxUploadSize = %v, want %v", cfg.MaxUploadSize, tt.wantMaxUpload)
			}
		})
	}
}

func TestLoadFromFlags_PortEnvironmentVariable(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	os.Args = []string{"pdf2json"}
	resetFlags()
	clearEnvVars()
	os.Setenv("PORT", "9090")

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("LoadFromFlags() Port = %v, want %v (from PORT env)", cfg.Port, 9090)
	}
}

func TestLoadFromFlags_InvalidPort(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	os.Args = []string{"pdf2json", "--port=70000"}
	resetFlags()
	clearEnvVars()

	if _, err := LoadFromFlags(); err == nil {
		t.Error("LoadFromFlags() expected error for out-of-range port, got nil")
	}
}
