package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Dosada05/padel-tournament-api/config"
	"github.com/Dosada05/padel-tournament-api/db"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "padel-api",
		Usage:  "padel tournament REST backend",
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serveAction,
			},
			newMigrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if err := db.MigrateUp(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
						return err
					}
					fmt.Println("migrations applied")
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back, 0 for all"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					steps := c.Int("steps")
					if err := db.MigrateDown(cfg.DatabaseDriver, cfg.DatabaseURL, steps); err != nil {
						return err
					}
					fmt.Printf("rolled back (steps=%d)\n", steps)
					return nil
				},
			},
		},
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
