package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "burnctl",
		Usage:   "Query the SOBA burn stats API",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			healthCommand(),
			tokenomicsCommand(),
			{
				Name:  "burns",
				Usage: "Burn wallet commands",
				Subcommands: []*cli.Command{
					burnStatsCommand(),
					burnHistoryCommand(),
					burnWalletCommand(),
					burnArchiveCommand(),
				},
			},
			roadmapCommand(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server-url",
				Usage:   "API server URL",
				EnvVars: []string{"SERVER_URL"},
				Value:   "http://localhost:3001",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: defaultTimeout,
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output in JSON format",
			},
		},
	}
}
