package config

import (
	"github.com/fernandosanchezjr/goscrambler/backend/storage"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/generators/window"
	"time"
)

type Cache struct {
	Bits  int    `yaml:"bits"`
	Store string `yaml:"store"`
	Path  string `yaml:"path,omitempty"`
}

type Report struct {
	MaxBits  int    `yaml:"maxBits"`
	Seed     uint64 `yaml:"seed,omitempty"`
	Resample bool   `yaml:"resample,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Chart    string `yaml:"chart,omitempty"`
}

type Server struct {
	Address     string        `yaml:"address"`
	SequenceTTL time.Duration `yaml:"sequenceTTL"`
	TLS         bool          `yaml:"tls,omitempty"`
}

type Config struct {
	Workers int        `yaml:"workers,omitempty"`
	Window  int        `yaml:"window"`
	Slot    cinit.Slot `yaml:"slot"`
	Cache   Cache      `yaml:"cache"`
	Report  Report     `yaml:"report"`
	Server  Server     `yaml:"server"`
}

func Default() *Config {
	return &Config{
		Window: window.DefaultCapacity,
		Slot:   cinit.DefaultSlot,
		Cache: Cache{
			Bits:  8192,
			Store: storage.BoltKind,
		},
		Report: Report{
			MaxBits: 64,
		},
		Server: Server{
			Address:     ":8080",
			SequenceTTL: 5 * time.Minute,
		},
	}
}
