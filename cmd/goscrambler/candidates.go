package main

import (
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"time"
)

const candidatesUsage = "goscrambler candidates <observed bits>"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "candidates",
			Aliases: []string{"f"},
			Usage:   candidatesUsage,
			Description: `Print every scrambling identifier whose cached sequence contains the observed
bits, one "id position" line each, where position is the first occurrence.`,
			Action: Candidates,
			Flags:  withFlags(cacheFlags, slotFlags),
		},
	)
}

func Candidates(c *cli.Context) error {
	if err := argCount(c, 1, 1, candidatesUsage); err != nil {
		return err
	}
	tail, err := utils.ParseBits(c.Args().Get(0))
	if err != nil {
		return err
	}
	engine, err := loadEngine(c)
	if err != nil {
		return err
	}
	start := time.Now()
	matches, err := engine.FindMatches(tail)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"observedBits": len(tail),
		"matches":      utils.Count(len(matches)),
		"elapsed":      time.Since(start),
	}).Info("Candidate search")
	for _, m := range matches {
		fmt.Println(m.ScramblingId, m.Position)
	}
	return nil
}
