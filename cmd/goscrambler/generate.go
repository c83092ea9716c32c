package main

import (
	"fmt"
	"github.com/epiclabs-io/elastic"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/generators"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"time"
)

const generateUsage = "goscrambler generate [--length N] (<c_init> | --id <scrambling id>)"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   generateUsage,
			Description: `Print the first N bits of the Gold sequence for a c_init, or for the PDCCH DMRS
c_init of a scrambling identifier when --id is given.`,
			Action: Generate,
			Flags: withFlags([]cli.Flag{
				&cli.IntFlag{
					Name:  "length",
					Value: 64,
					Usage: "number of bits to generate",
				},
				&cli.IntFlag{
					Name:  "id",
					Value: -1,
					Usage: "scrambling identifier to derive the c_init from",
				},
			}, slotFlags),
		},
	)
}

func Generate(c *cli.Context) error {
	var cInit int64
	var err error
	if c.IsSet("id") {
		if err = argCount(c, 0, 0, generateUsage); err != nil {
			return err
		}
		if cInit, err = cinit.Compute(c.Int("id"), slotFromFlags(c)); err != nil {
			return err
		}
	} else {
		if err = argCount(c, 1, 1, generateUsage); err != nil {
			return err
		}
		if err = elastic.Set(&cInit, c.Args().Get(0)); err != nil {
			return fmt.Errorf("invalid c_init %q: %w", c.Args().Get(0), err)
		}
	}
	start := time.Now()
	bits, err := generators.Generate(c.Int("length"), cInit)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"cInit":   cInit,
		"length":  len(bits),
		"elapsed": time.Since(start),
	}).Debug("Generated sequence")
	fmt.Println(bits)
	return nil
}
