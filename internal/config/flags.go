package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/pinauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-f string       path or DSN of the auth database (default from Config)
//	-driver string  database driver, sqlite or pgx (default from Config)
//	-delay int      simulated API delay in milliseconds (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-driver", "-delay"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "f", cfg.DatabaseDSN, "path or DSN of the auth database")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver (sqlite or pgx)")
	apiDelay := fs.Int("delay", int(cfg.APIDelay.Milliseconds()), "simulated API delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.APIDelay = time.Duration(*apiDelay) * time.Millisecond
}
