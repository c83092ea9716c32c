package main

import (
	"fmt"
	"github.com/epiclabs-io/elastic"
	"github.com/fernandosanchezjr/goscrambler/generators"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"time"
)

const repeatUsage = "goscrambler repeat [--limit N] [--count N] <c_init> <pattern>"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "repeat",
			Aliases: []string{"p"},
			Usage:   repeatUsage,
			Description: `Stream the Gold sequence for a c_init and print the index of every occurrence
of the pattern. The pattern may be as long as the output window.`,
			Action: Repeat,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Value: 1 << 24,
					Usage: "number of bits to generate",
				},
				&cli.IntFlag{
					Name:  "count",
					Usage: "stop after this many occurrences, never when 0",
				},
				&cli.IntFlag{
					Name:  "window",
					Usage: "output window capacity",
				},
			},
		},
	)
}

func Repeat(c *cli.Context) error {
	if err := argCount(c, 2, 2, repeatUsage); err != nil {
		return err
	}
	var cInit int64
	if err := elastic.Set(&cInit, c.Args().Get(0)); err != nil {
		return fmt.Errorf("invalid c_init %q: %w", c.Args().Get(0), err)
	}
	pattern, err := utils.ParseBits(c.Args().Get(1))
	if err != nil {
		return err
	}
	keep := cfg.Window
	if c.IsSet("window") {
		keep = c.Int("window")
	}
	maxCount := c.Int("count")
	count := 0
	start := time.Now()
	generated, err := generators.FindRepetitions(cInit, pattern, keep, c.Int("limit"), func(index int) bool {
		count++
		fmt.Println(index)
		return maxCount <= 0 || count < maxCount
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.WithFields(log.Fields{
		"generated":   utils.Count(generated),
		"occurrences": count,
		"rate":        utils.Rate(float64(generated) / elapsed.Seconds()),
	}).Info("Repetition search")
	return nil
}
