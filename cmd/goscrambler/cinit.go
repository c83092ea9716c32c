package main

import (
	"fmt"
	"github.com/epiclabs-io/elastic"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/urfave/cli/v2"
)

const cInitUsage = "goscrambler cinit [--kind pdcch|pdcch-dmrs|pbch|scrambler] <id>"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "cinit",
			Aliases: []string{"c"},
			Usage:   cInitUsage,
			Description: `Print the c_init for an identifier.

pdcch       PDCCH DMRS seed of a scrambling identifier, reduced mod 2^31
pdcch-dmrs  the same seed reduced mod 2^32
pbch        PBCH DMRS seed of a physical cell id, with --ssb-index and --half-frame
scrambler   PDCCH payload scrambler seed of a scrambling identifier, with --rnti`,
			Action: CInit,
			Flags: withFlags([]cli.Flag{
				&cli.StringFlag{
					Name:  "kind",
					Value: "pdcch",
					Usage: "pdcch, pdcch-dmrs, pbch or scrambler",
				},
				&cli.IntFlag{
					Name:  "ssb-index",
					Usage: "SS/PBCH block index, 0 to 3",
				},
				&cli.IntFlag{
					Name:  "half-frame",
					Usage: "half frame bit, 0 or 1",
				},
				&cli.IntFlag{
					Name:  "rnti",
					Usage: "radio network temporary identifier",
				},
			}, slotFlags),
		},
	)
}

func CInit(c *cli.Context) error {
	if err := argCount(c, 1, 1, cInitUsage); err != nil {
		return err
	}
	var id int
	if err := elastic.Set(&id, c.Args().Get(0)); err != nil {
		return fmt.Errorf("invalid id %q: %w", c.Args().Get(0), err)
	}
	var cInit int64
	var err error
	switch c.String("kind") {
	case "pdcch":
		cInit, err = cinit.Compute(id, slotFromFlags(c))
	case "pdcch-dmrs":
		cInit, err = cinit.PDCCHDMRS(id, slotFromFlags(c))
	case "pbch":
		cInit, err = cinit.PBCHDMRS(c.Int("ssb-index"), c.Int("half-frame"), id)
	case "scrambler":
		if err = cinit.CheckScramblingId(id); err == nil {
			cInit = cinit.PDCCHScrambler(uint16(c.Int("rnti")), uint16(id))
		}
	default:
		return fmt.Errorf("unknown c_init kind %q", c.String("kind"))
	}
	if err != nil {
		return err
	}
	fmt.Println(cInit)
	return nil
}
