// Package cmd implements the CLI application around the agendah core.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Register registers every subcommand on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&dayCmd{}, "journal")
	c.Register(&saveCmd{}, "journal")
	c.Register(&taskCmd{}, "journal")
	c.Register(&cloneCmd{}, "journal")
	c.Register(&clearCmd{}, "journal")

	c.Register(&attachCmd{}, "files")
	c.Register(&openCmd{}, "files")

	c.Register(&cashCmd{}, "cashbook")

	c.Register(&monthCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")

	c.Register(&backupCmd{}, "backup")
	c.Register(&restoreCmd{}, "backup")
}

// Config are the optional file-level settings, read from the YAML file named
// by AGENDAH_CONFIG (if any).
type Config struct {
	// Title names the journal on report covers. Defaults to "Agenda AH".
	Title string `yaml:"title"`
	// DataFile overrides the database location.
	DataFile string `yaml:"data_file"`
}

// loadConfig resolves configuration: .env file, then environment, then the
// optional YAML config, then defaults.
func loadConfig() (Config, error) {
	// A .env next to the binary is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg := Config{Title: "Agenda AH"}
	if path := os.Getenv("AGENDAH_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
		if cfg.Title == "" {
			cfg.Title = "Agenda AH"
		}
	}
	if db := os.Getenv("AGENDAH_DB"); db != "" {
		cfg.DataFile = db
	}
	if cfg.DataFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataFile = filepath.Join(home, ".agendah", "agendah.db")
	}
	return cfg, nil
}

// logger builds the application logger. AGENDAH_LOG selects the level
// (debug, info, warn; default warn).
func logger() zerolog.Logger {
	level := zerolog.WarnLevel
	switch os.Getenv("AGENDAH_LOG") {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

// openStore resolves configuration and opens the journal database.
func openStore() (*agendah.Store, Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	store, err := agendah.Open(cfg.DataFile, logger())
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer is unavailable.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

func joinTags(tags []string) string { return strings.Join(tags, ", ") }

// parseDayFlag resolves the conventional -d flag: empty means today.
func parseDayFlag(value string) (agendah.Date, error) {
	if value == "" {
		return agendah.Today(), nil
	}
	return agendah.ParseDate(value)
}
