package main

import (
	"github.com/fernandosanchezjr/goscrambler/backend/api"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "serve the HTTP API",
			Description: `Serve sequence generation, c_init computation, candidate search and reports.
The seed cache is reloaded whenever the store is rewritten.`,
			Action: Serve,
			Flags: withFlags(cacheFlags, slotFlags, []cli.Flag{
				&cli.StringFlag{
					Name:  "address",
					Usage: "listen address",
				},
				&cli.BoolFlag{
					Name:  "tls",
					Usage: "serve HTTPS with a certificate signed by the local CA",
				},
			}),
		},
	)
}

func Serve(c *cli.Context) error {
	if c.IsSet("address") {
		cfg.Server.Address = c.String("address")
	}
	if c.IsSet("tls") {
		cfg.Server.TLS = c.Bool("tls")
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}
	service := api.NewService(cfg, store)
	if err = service.Start(); err != nil {
		return err
	}
	sig := utils.Wait()
	log.WithField("signal", sig).Info("Stopping")
	return service.Stop()
}
