package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "rosterkit",
		Usage: "Inspect, validate, and repair transit driver and vehicle schedules",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Runtime environment (development, test, production)",
				Value: "development",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "timetable",
				Usage: "Path to a reference GTFS static feed (zip)",
			},
			&cli.StringFlag{
				Name:  "metrics-listen",
				Usage: "Address to serve Prometheus metrics on (e.g. :9090)",
			},
		},
		Commands: []*cli.Command{
			summaryCommand(),
			validateCommand(),
			inferCommand(),
			convertCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
