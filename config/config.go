package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries the settings shared by the recorder and the live viewer.
// The database path may also be given as the first CLI argument, which wins
// over the environment.
type Config struct {
	DBPath      string
	LiveAddr    string
	RaceTitle   string
	PollSeconds int
}

// FromEnv builds the configuration from environment variables, applying an
// optional CLI argument for the database path.
func FromEnv(args []string) (Config, error) {
	c := Config{
		DBPath:      strings.TrimSpace(os.Getenv("RACE_DB")),
		LiveAddr:    strings.TrimSpace(os.Getenv("LIVE_ADDR")),
		RaceTitle:   strings.TrimSpace(os.Getenv("RACE_TITLE")),
		PollSeconds: 5,
	}
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		c.DBPath = strings.TrimSpace(args[0])
	}
	if c.DBPath == "" {
		return c, fmt.Errorf("no database given: pass a path or set RACE_DB")
	}
	if c.LiveAddr == "" {
		c.LiveAddr = ":8000"
	}
	if c.RaceTitle == "" {
		c.RaceTitle = "Lenn Smith Race"
	}
	if v := strings.TrimSpace(os.Getenv("LIVE_POLL_SECONDS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c, fmt.Errorf("LIVE_POLL_SECONDS must be a positive integer, got %q", v)
		}
		c.PollSeconds = n
	}
	return c, nil
}
