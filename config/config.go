package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultModel is the generator model used when the configuration file
// does not name one.
const DefaultModel = "gpt-4o"

// Config holds the settings read from the configuration file plus the
// API key taken from the environment.
type Config struct {
	Prompt            string
	SourceFolder      string
	DestinationFolder string
	AuthorName        string
	Model             string
	LogLevel          string
	LogFile           string
	APIKey            string
}

// Load reads a key=value configuration file and resolves the API key from
// the OPENAI_API_KEY environment variable. A .env file next to the working
// directory is honored when present. A missing configuration file is an
// error; the caller treats it as fatal.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open configuration file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := &Config{Model: DefaultModel}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%s:%d: expected key=value, got %q", path, lineNo, line)
		}
		cfg.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read configuration file: %w", err)
	}

	// Optional .env; variables already in the real environment win.
	_ = godotenv.Load()
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")

	return cfg, nil
}

func (c *Config) set(key, value string) {
	switch key {
	case "prompt":
		c.Prompt = value
	case "source_folder":
		c.SourceFolder = value
	case "destination_folder":
		c.DestinationFolder = value
	case "author_name":
		c.AuthorName = value
	case "model":
		if value != "" {
			c.Model = value
		}
	case "log_level":
		c.LogLevel = value
	case "log_file":
		c.LogFile = value
	}
}

// Validate checks the settings a pipeline run requires. The destination
// folder defaults to the source folder when unset, mirroring the original
// tool's behavior of writing enriched images back in place.
func (c *Config) Validate() error {
	if c.SourceFolder == "" {
		return fmt.Errorf("source_folder is not set")
	}
	if c.Prompt == "" {
		return fmt.Errorf("prompt is not set")
	}
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if c.DestinationFolder == "" {
		c.DestinationFolder = c.SourceFolder
	}
	return nil
}
