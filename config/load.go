package config

import (
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/backend/storage"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"io/ioutil"
	"os"
	"path"
)

const ConfigFile = "config.yaml"

func DefaultPath() (string, error) {
	home, err := utils.GetHomeFolder()
	if err != nil {
		return "", err
	}
	return path.Join(home, ConfigFile), nil
}

// LoadConfig reads configPath over the defaults. A missing file yields the
// defaults unchanged.
func LoadConfig(configPath string) (*Config, error) {
	c := Default()
	if configPath == "" {
		var err error
		if configPath, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	data, err := ioutil.ReadFile(configPath)
	if os.IsNotExist(err) {
		log.WithField("path", configPath).Debug("No config file, using defaults")
		return c, nil
	} else if err != nil {
		return nil, err
	}
	log.WithField("path", configPath).Debug("Loading config")
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath, err)
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	switch c.Cache.Store {
	case storage.BoltKind, storage.FileKind:
	default:
		return fmt.Errorf("%w: %q", storage.InvalidStoreKind, c.Cache.Store)
	}
	if c.Cache.Bits <= 0 {
		return fmt.Errorf("cache bits must be positive, got %d", c.Cache.Bits)
	}
	return nil
}

func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
