package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultPort          = 8000
	DefaultHost          = "0.0.0.0"
	DefaultLogLevel      = "info"
	DefaultMaxUploadSize = 10 * 1024 * 1024 // 10MB cap for purchase-order uploads
)

// Config holds all configuration for the PDF conversion server
type Config struct {
	// Server configuration
	Host string
	Port int

	// Upload configuration
	MaxUploadSize int64 // Maximum purchase-order PDF upload size in bytes

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	Debug      bool // Debug exposes raw error detail in HTTP responses
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Host:          DefaultHost,
		Port:          DefaultPort,
		MaxUploadSize: DefaultMaxUploadSize,
		Version:       "1.0.0",
		ServerName:    "pdf2json",
		LogLevel:      DefaultLogLevel,
		Debug:         false,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	// A local .env file is optional; real env vars win either way.
	_ = godotenv.Load()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("PDF2JSON")
	viper.AutomaticEnv()

	// The bare PORT variable is the deployment contract; the prefixed
	// form is accepted as well.
	_ = viper.BindEnv("port", "PDF2JSON_PORT", "PORT")

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxuploadsize", cfg.MaxUploadSize)
	viper.SetDefault("debug", cfg.Debug)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxuploadsize", cfg.MaxUploadSize, "Maximum purchase-order upload size in bytes")
	pflag.Bool("debug", cfg.Debug, "Include raw error detail in HTTP error responses")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxuploadsize", pflag.Lookup("maxuploadsize"))
	_ = viper.BindPFlag("debug", pflag.Lookup("debug"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdf2json - HTTP API converting uploaded PDFs to structured JSON\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                             # listen on 0.0.0.0:8000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --port=9000 --debug         # custom port, verbose errors\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PORT                     Server port\n")
		fmt.Fprintf(os.Stderr, "  PDF2JSON_HOST            Server host\n")
		fmt.Fprintf(os.Stderr, "  PDF2JSON_LOGLEVEL        Log level\n")
		fmt.Fprintf(os.Stderr, "  PDF2JSON_MAXUPLOADSIZE   Maximum upload size\n")
		fmt.Fprintf(os.Stderr, "  PDF2JSON_DEBUG           Verbose HTTP error responses\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxUploadSize = viper.GetInt64("maxuploadsize")
	cfg.Debug = viper.GetBool("debug")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate max upload size
	if c.MaxUploadSize <= 0 {
		return errors.New("maximum upload size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug error responses or debug logging are enabled
func (c *Config) IsDebug() bool {
	return c.Debug || c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Host: %s, Port: %d, LogLevel: %s, MaxUploadSize: %d, Debug: %t}",
		c.Host, c.Port, c.LogLevel, c.MaxUploadSize, c.Debug)
}
