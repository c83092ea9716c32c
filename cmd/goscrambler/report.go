package main

import (
	"github.com/fernandosanchezjr/goscrambler/recovery"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"os"
)

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "report",
			Aliases: []string{"r"},
			Usage:   "measure matching candidates by observed bits",
			Description: `Pick a random scrambling identifier and count, for 1 to --max-bits observed
bits of its cached tail, how many identifiers contain them. With --resample a new
identifier is picked for every bit count.`,
			Action: Report,
			Flags: withFlags(cacheFlags, slotFlags, []cli.Flag{
				&cli.IntFlag{
					Name:  "max-bits",
					Usage: "largest observed bit count, at most 64",
				},
				&cli.Uint64Flag{
					Name:  "seed",
					Usage: "random seed, a random one when 0",
				},
				&cli.BoolFlag{
					Name:  "resample",
					Usage: "pick a new identifier for every bit count",
				},
				&cli.StringFlag{
					Name:  "output",
					Usage: "report file, stdout when empty",
				},
				&cli.StringFlag{
					Name:  "chart",
					Usage: "HTML chart file",
				},
			}),
		},
	)
}

func writeChart(report *recovery.Report, chartPath string) error {
	f, err := os.Create(chartPath)
	if err != nil {
		return err
	}
	if err = recovery.BuildChart(report).Render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeReport(report *recovery.Report, outputPath string) error {
	if outputPath == "" {
		_, err := report.WriteTo(os.Stdout)
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if _, err = report.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func Report(c *cli.Context) error {
	if c.IsSet("max-bits") {
		cfg.Report.MaxBits = c.Int("max-bits")
	}
	if c.IsSet("seed") {
		cfg.Report.Seed = c.Uint64("seed")
	}
	if c.IsSet("resample") {
		cfg.Report.Resample = c.Bool("resample")
	}
	if c.IsSet("output") {
		cfg.Report.Output = c.String("output")
	}
	if c.IsSet("chart") {
		cfg.Report.Chart = c.String("chart")
	}
	engine, err := loadEngine(c)
	if err != nil {
		return err
	}
	experiment := recovery.NewExperiment(engine, cfg.Report.MaxBits, cfg.Report.Resample, cfg.Report.Seed)
	report, err := experiment.Run()
	if err != nil {
		return err
	}
	if err = writeReport(report, cfg.Report.Output); err != nil {
		return err
	}
	if cfg.Report.Chart != "" {
		if err = writeChart(report, cfg.Report.Chart); err != nil {
			return err
		}
		log.WithField("path", cfg.Report.Chart).Info("Chart written")
	}
	return nil
}
