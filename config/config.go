package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultPort is the listening port used when neither -port nor PORT
// is set.
const DefaultPort = 5000

// Config is the process configuration. It is read-only once loaded.
type Config struct {
	// Server
	Port  int
	Debug bool

	// OpenAI
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIOrganization string

	// UpstreamTimeout bounds each upstream call. Zero means no timeout.
	UpstreamTimeout time.Duration

	// EnvFile is the dotenv file that was loaded, if any.
	EnvFile string
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load builds the configuration from command-line args, an optional
// dotenv file and the process environment. Flags win over the
// environment, which wins over defaults. Variables already present in
// the environment are not overwritten by the dotenv file.
//
// A missing OPENAI_API_KEY is not an error here. For -h or -help the
// usage is printed to stderr and flag.ErrHelp is returned.
func Load(args []string) (*Config, error) {
	return load(args, os.Stderr)
}

// load is Load with flag usage and parse errors written to output.
func load(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	fs.SetOutput(output)
	envFile := fs.String("env-file", ".env", "dotenv file to load if present")
	port := fs.Int("port", 0, "listening port (default $PORT or 5000)")
	debug := fs.Bool("debug", false, "enable debug logging and access logs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err == nil {
			cfg.EnvFile = *envFile
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", *envFile, err)
		}
	}

	var err error
	if cfg.Port, err = getEnvAsInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getEnvAsBool("DEBUG", false); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout, err = getEnvAsDuration("UPSTREAM_TIMEOUT", 0); err != nil {
		return nil, err
	}
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", "")
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", "https://api.openai.com")
	cfg.OpenAIOrganization = getEnv("OPENAI_ORGANIZATION", "")

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "debug":
			cfg.Debug = *debug
		}
	})

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config: invalid port %d", cfg.Port)
	}
	if cfg.UpstreamTimeout < 0 {
		return nil, fmt.Errorf("config: UPSTREAM_TIMEOUT must not be negative")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
