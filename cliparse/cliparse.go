package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/zukunftstag/workshop-server/models"
)

type Config struct {
	Port          int
	DatabasePath  string
	DataDir       string
	AdminPassword string
	BaseURL       string
	TrialSeed     uint64
}

// ParseFlags validates flags and fills in env fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("workshop-server", flag.ContinueOnError)

	// Network and file config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabasePath, "d", "", "SQLite database file path")
	fs.StringVar(&cfg.DataDir, "data", "", "Directory with roster files")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used on team cards")
	fs.Uint64Var(&cfg.TrialSeed, "seed", 0, "Trial assignment seed")

	// Secret (prefer env variable, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Facilitator password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8517 // default
		}
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = os.Getenv("DATABASE_PATH")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "zukunftstag.db"
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("DATA_DIR")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8517"
	}

	if cfg.TrialSeed == 0 {
		if seedStr := os.Getenv("TRIAL_SEED"); seedStr != "" {
			seed, err := strconv.ParseUint(seedStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid TRIAL_SEED env variable")
			}
			cfg.TrialSeed = seed
		} else {
			cfg.TrialSeed = models.DefaultTrialSeed
		}
	}

	// Secret - MUST be provided
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	return cfg, nil
}
