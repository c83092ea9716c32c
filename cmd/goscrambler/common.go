package main

import (
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/backend/storage"
	"github.com/fernandosanchezjr/goscrambler/cache"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/recovery"
	"github.com/urfave/cli/v2"
)

var cacheFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "bits",
		Usage: "cached bits per scrambling identifier",
	},
	&cli.StringFlag{
		Name:  "store",
		Usage: "seed cache store, bolt or file",
	},
	&cli.StringFlag{
		Name:  "path",
		Usage: "seed cache location, inside the home folder when empty",
	},
	&cli.BoolFlag{
		Name:  "rebuild",
		Usage: "rebuild a stale or corrupt seed cache",
	},
}

var slotFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "symbols-per-slot",
		Usage: "OFDM symbols per slot",
	},
	&cli.IntFlag{
		Name:  "slot-number",
		Usage: "slot number within the frame",
	},
	&cli.IntFlag{
		Name:  "symbol-number",
		Usage: "OFDM symbol number within the slot",
	},
}

func withFlags(groups ...[]cli.Flag) []cli.Flag {
	var ret []cli.Flag
	for _, group := range groups {
		ret = append(ret, group...)
	}
	return ret
}

func applyCacheFlags(c *cli.Context) {
	if c.IsSet("bits") {
		cfg.Cache.Bits = c.Int("bits")
	}
	if c.IsSet("store") {
		cfg.Cache.Store = c.String("store")
	}
	if c.IsSet("path") {
		cfg.Cache.Path = c.String("path")
	}
}

func slotFromFlags(c *cli.Context) cinit.Slot {
	slot := cfg.Slot
	if c.IsSet("symbols-per-slot") {
		slot.SymbolsPerSlot = c.Int("symbols-per-slot")
	}
	if c.IsSet("slot-number") {
		slot.SlotNumber = c.Int("slot-number")
	}
	if c.IsSet("symbol-number") {
		slot.SymbolNumber = c.Int("symbol-number")
	}
	return slot
}

func openStore(c *cli.Context) (cache.Store, error) {
	applyCacheFlags(c)
	cfg.Slot = slotFromFlags(c)
	return storage.NewStore(cfg.Cache.Store, cfg.Cache.Path)
}

// loadEngine reads the seed cache, building and persisting it first when
// the store holds none.
func loadEngine(c *cli.Context) (*recovery.Engine, error) {
	store, err := openStore(c)
	if err != nil {
		return nil, err
	}
	sc, err := cache.LoadOrBuild(store, cfg.Cache.Bits, cfg.Slot, cfg.Workers, c.Bool("rebuild"))
	if err != nil {
		return nil, fmt.Errorf("seed cache %s: %w", store.Path(), err)
	}
	return recovery.NewEngine(sc, cfg.Workers), nil
}

func argCount(c *cli.Context, min, max int, usage string) error {
	if l := c.Args().Len(); l < min || l > max {
		return fmt.Errorf("usage is \"%v\" (invalid number of arguments)", usage)
	}
	return nil
}
