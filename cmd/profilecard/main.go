package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/bsj5/profilecard/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "profilecard: %v\n", err)
		return 1
	}
	return 0
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "profilecard",
		Usage:   "Live Discord presence card for the terminal",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default ~/.config/profilecard/config.toml)",
			},
			&cli.StringFlag{
				Name:  "prefs",
				Usage: "Path to preferences file (default ~/.config/profilecard/prefs.toml)",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Discord user id to follow, overrides user_id",
			},
			&cli.DurationFlag{
				Name:  "poll",
				Usage: "Presence poll interval, overrides poll_interval",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file, overrides log_file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runUI,
		Commands: []*cli.Command{
			{
				Name:  "once",
				Usage: "Fetch presence once and print the activity items",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the report as JSON",
					},
				},
				Action: runOnce,
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(context.Context, *cli.Command) error {
					_, err := fmt.Fprintf(os.Stdout, "profilecard %s\n", version)
					return err
				},
			},
		},
	}
}

func options(cmd *cli.Command) app.Options {
	return app.Options{
		ConfigPath: cmd.String("config"),
		PrefsPath:  cmd.String("prefs"),
		UserID:     cmd.String("user"),
		PollEvery:  cmd.Duration("poll"),
		LogFile:    cmd.String("log-file"),
		Debug:      cmd.Bool("debug"),
		Version:    version,
	}
}

func runUI(ctx context.Context, cmd *cli.Command) error {
	return app.Run(ctx, options(cmd))
}

func runOnce(ctx context.Context, cmd *cli.Command) error {
	return app.Once(ctx, options(cmd), os.Stdout, cmd.Bool("json"))
}
