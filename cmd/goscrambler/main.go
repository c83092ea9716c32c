/*
goscrambler generates NR Gold scrambling sequences, computes their c_init
seeds and measures how many observed bits identify a scrambling identifier.
*/
package main

import (
	"github.com/fernandosanchezjr/goscrambler/config"
	"github.com/fernandosanchezjr/goscrambler/logging"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"os"
	"runtime/pprof"
	"runtime/trace"
)

var app = cli.NewApp()

var cfg *config.Config

var stopProfiling []func()

func startProfiling(c *cli.Context) error {
	if c.Bool("cpu-profile") {
		f, err := os.Create("goscrambler.prof")
		if err != nil {
			return err
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			return err
		}
		stopProfiling = append(stopProfiling, pprof.StopCPUProfile, func() { _ = f.Close() })
	}
	if c.Bool("trace") {
		f, err := os.Create("goscrambler.trace")
		if err != nil {
			return err
		}
		if err = trace.Start(f); err != nil {
			return err
		}
		stopProfiling = append(stopProfiling, trace.Stop, func() { _ = f.Close() })
	}
	return nil
}

func before(c *cli.Context) error {
	utils.HomeFolder = c.String("home")
	if err := logging.SetupLogger(c.String("log-level")); err != nil {
		return err
	}
	var err error
	if cfg, err = config.LoadConfig(c.String("config")); err != nil {
		return err
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	return startProfiling(c)
}

func after(*cli.Context) error {
	for _, stop := range stopProfiling {
		stop()
	}
	return nil
}

func main() {
	app.Name = "goscrambler"
	app.Usage = "Generate NR scrambling sequences and recover scrambling identifiers"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "home",
			Value: utils.HomeFolder,
			Usage: "home folder for config, logs and the seed cache",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "config file, <home>/config.yaml when empty",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "trace, debug, info, warn or error",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "worker goroutines, one per CPU when 0",
		},
		&cli.BoolFlag{
			Name:  "cpu-profile",
			Usage: "enable cpu profiling",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "enable tracing",
		},
	}
	app.Before = before
	app.After = after
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("goscrambler")
	}
}
