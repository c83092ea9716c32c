package main

import (
	"github.com/fernandosanchezjr/goscrambler/cache"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "build",
			Aliases: []string{"b"},
			Usage:   "build and persist the seed cache",
			Description: `Generate the cached bits for every scrambling identifier and persist them.
An existing cache for the same bits and slot is kept unless --force is given.`,
			Action: Build,
			Flags: withFlags(cacheFlags, slotFlags, []cli.Flag{
				&cli.BoolFlag{
					Name:  "force",
					Usage: "rebuild even when a valid cache exists",
				},
			}),
		},
	)
}

func Build(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	if !c.Bool("force") {
		_, err = cache.LoadOrBuild(store, cfg.Cache.Bits, cfg.Slot, cfg.Workers, true)
		return err
	}
	sc, err := cache.Build(cfg.Cache.Bits, cfg.Slot, cfg.Workers)
	if err != nil {
		return err
	}
	if err = store.Persist(sc); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path":   store.Path(),
		"digest": sc.Digest(),
	}).Info("Seed cache persisted")
	return nil
}
