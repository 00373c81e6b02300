package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"rosterkit.transitops.org/internal/app"
	"rosterkit.transitops.org/internal/export"
	"rosterkit.transitops.org/internal/inference"
	"rosterkit.transitops.org/internal/models"
	"rosterkit.transitops.org/internal/reader"
	"rosterkit.transitops.org/internal/validation"
)

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "Path to the schedule file (CSV, optionally gzipped)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "delimiter",
			Usage: "Field separator",
			Value: ",",
		},
		&cli.BoolFlag{
			Name:  "no-header",
			Usage: "Treat the file as headerless, in canonical column order",
		},
	}
}

func readSchedule(c *cli.Context, application *app.Application) (*models.Schedule, error) {
	options := reader.NewOptions()
	if delim := c.String("delimiter"); delim != "" {
		options = options.WithDelimiter(rune(delim[0]))
	}
	if c.Bool("no-header") {
		options = options.WithoutHeaders()
	}

	schedule, err := reader.New(options).WithLogger(application.Logger).ReadFile(c.String("input"))
	if err != nil {
		return nil, err
	}
	application.Metrics.RecordImport(schedule.Len())
	return schedule, nil
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Print schedule statistics",
		Flags: inputFlags(),
		Action: func(c *cli.Context) error {
			application, err := BuildApplication(c)
			if err != nil {
				return err
			}
			schedule, err := readSchedule(c, application)
			if err != nil {
				return err
			}

			summary := schedule.Summary()
			fmt.Printf("rows:            %d\n", summary.TotalRows)
			fmt.Printf("revenue trips:   %d\n", summary.RevenueTrips)
			fmt.Printf("deadheads:       %d\n", summary.Deadheads)
			fmt.Printf("breaks/reliefs:  %d\n", summary.BreaksAndReliefs)
			fmt.Printf("blocks:          %d\n", summary.UniqueBlocks)
			fmt.Printf("runs:            %d\n", summary.UniqueRuns)
			fmt.Printf("depots:          %d\n", summary.UniqueDepots)

			if application.Config.Verbose {
				for _, blockID := range schedule.BlockIDs() {
					spew.Fdump(os.Stderr, schedule.Block(blockID).Summary())
				}
			}
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	flags := append(inputFlags(),
		&cli.StringFlag{
			Name:  "compliance",
			Usage: "Compliance level (standard, strict, lenient)",
			Value: "standard",
		},
		&cli.StringFlag{
			Name:  "rules",
			Usage: "Path to a validation rules YAML file",
		},
		&cli.IntFlag{
			Name:  "max-errors",
			Usage: "Stop after this many errors (0 = unlimited)",
		},
		&cli.BoolFlag{
			Name:  "no-warnings",
			Usage: "Suppress warnings",
		},
	)

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate a schedule against the reference timetable and business rules",
		Flags: flags,
		Action: func(c *cli.Context) error {
			application, err := BuildApplication(c)
			if err != nil {
				return err
			}
			schedule, err := readSchedule(c, application)
			if err != nil {
				return err
			}

			config, err := LoadValidationConfig(c)
			if err != nil {
				return err
			}

			validator := validation.NewValidator(config).WithLogger(application.Logger)
			started := time.Now()
			var result validation.Result
			if application.HasTimetable() {
				result = validator.Validate(schedule, application.Timetable, application.Spatial)
			} else {
				result = validator.ValidateStructure(schedule)
			}
			application.Metrics.RecordValidation(result, time.Since(started).Seconds())

			printFindings(result)
			if !result.IsValid() {
				return cli.Exit(fmt.Sprintf("validation failed with %d errors", result.ErrorCount()), 1)
			}
			return nil
		},
	}
}

func printFindings(result validation.Result) {
	for _, finding := range result.Errors {
		fmt.Printf("error [%s/%s] %s (%s)\n",
			finding.Category, finding.Kind, finding.Message, finding.Context)
	}
	for _, finding := range result.Warnings {
		fmt.Printf("warning [%s] %s (%s)\n",
			finding.Kind, finding.Message, finding.Context)
	}

	fmt.Printf("validated %d rows, %d blocks, %d duties: %d errors, %d warnings\n",
		result.RowsValidated, result.BlocksValidated, result.DutiesValidated,
		result.ErrorCount(), result.WarningCount())
	if result.Truncated {
		fmt.Println("error budget reached; remaining checks skipped")
	}
}

func inferCommand() *cli.Command {
	flags := append(inputFlags(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path for the inferred deadhead CSV (default stdout)",
		},
		&cli.StringFlag{
			Name:  "default-depot",
			Usage: "Depot code for blocks that specify none",
		},
		&cli.Float64Flag{
			Name:  "speed",
			Usage: "Average deadhead speed in m/s",
			Value: inference.DefaultAverageSpeedMps,
		},
		&cli.IntFlag{
			Name:  "min-gap",
			Usage: "Smallest inter-trip gap treated as a deadhead opportunity, in seconds",
			Value: inference.DefaultMinGapSeconds,
		},
		&cli.BoolFlag{
			Name:  "no-interlining",
			Usage: "Skip between-trip deadhead inference",
		},
		&cli.StringSliceFlag{
			Name:  "depot-stop",
			Usage: "Register a depot's host stop as STOP_ID=DEPOT_CODE (repeatable)",
		},
	)

	return &cli.Command{
		Name:  "infer",
		Usage: "Reconstruct missing pull-out, pull-in, and interlining deadheads",
		Flags: flags,
		Action: func(c *cli.Context) error {
			application, err := BuildApplication(c)
			if err != nil {
				return err
			}
			schedule, err := readSchedule(c, application)
			if err != nil {
				return err
			}

			config := inference.NewConfig().
				WithDefaultDepot(c.String("default-depot")).
				WithAverageSpeed(c.Float64("speed")).
				WithMinGap(c.Int("min-gap")).
				WithInterlining(!c.Bool("no-interlining"))
			depotStops, err := parseDepotStops(c.StringSlice("depot-stop"))
			if err != nil {
				return err
			}
			for stopID, depotCode := range depotStops {
				config = config.AddDepot(stopID, depotCode)
			}

			inferrer := inference.NewWithTimetable(config, application.Timetable).
				WithLogger(application.Logger)
			result := inferrer.Infer(schedule)
			application.Metrics.RecordInference(result)

			for _, blockID := range result.IncompleteBlocks {
				fmt.Fprintf(os.Stderr, "block %s skipped: no resolvable depot\n", blockID)
			}

			exporter := export.New(export.NewConfig()).WithLogger(application.Logger)
			if path := c.String("output"); path != "" {
				return exporter.WriteDeadheadsFile(result.AllDeadheads(), path)
			}
			return exporter.WriteDeadheads(result.AllDeadheads(), os.Stdout)
		},
	}
}

// parseDepotStops parses repeated STOP_ID=DEPOT_CODE flag values.
func parseDepotStops(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, value := range values {
		stopID, depotCode, ok := strings.Cut(value, "=")
		if !ok || stopID == "" || depotCode == "" {
			return nil, fmt.Errorf("invalid depot-stop %q, expected STOP_ID=DEPOT_CODE", value)
		}
		out[stopID] = depotCode
	}
	return out, nil
}

func convertCommand() *cli.Command {
	flags := append(inputFlags(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path for the converted file (default stdout)",
		},
		&cli.StringFlag{
			Name:  "preset",
			Usage: "Export layout (default, minimal, extended, optibus, hastus, gtfs_block)",
			Value: "default",
		},
		&cli.StringFlag{
			Name:  "null-value",
			Usage: "Placeholder written for absent fields",
		},
	)

	return &cli.Command{
		Name:  "convert",
		Usage: "Re-export a schedule in another layout",
		Flags: flags,
		Action: func(c *cli.Context) error {
			application, err := BuildApplication(c)
			if err != nil {
				return err
			}
			schedule, err := readSchedule(c, application)
			if err != nil {
				return err
			}

			config := export.ParsePreset(c.String("preset")).Config()
			if null := c.String("null-value"); null != "" {
				config = config.WithNullValue(null)
			}

			exporter := export.New(config).WithLogger(application.Logger)
			if path := c.String("output"); path != "" {
				err = exporter.WriteFile(schedule, path)
			} else {
				err = exporter.Write(schedule, os.Stdout)
			}
			if err != nil {
				return err
			}
			application.Metrics.RecordExport()
			return nil
		},
	}
}
