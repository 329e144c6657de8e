/*
Package config defines the YAML configuration of the nns tool.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/nns-client/rpc/gateway"
	"gopkg.in/yaml.v3"
)

// Defaults applied by [Load] and [Default] for missing values.
const (
	DefaultEndpoint    = "https://mainnet1.neo.coz.io:443"
	DefaultLoggerLevel = "info"
)

// Config is the nns tool configuration.
type Config struct {
	RPC struct {
		Endpoint       string        `yaml:"endpoint"`
		DialTimeout    time.Duration `yaml:"dial_timeout"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"rpc"`
	// Contract is the NNS contract hash in the string form, e.g.
	// 0x50ac1c37690cc2cfc594472833cf57505d5f46de. Empty means the main net
	// contract.
	Contract string `yaml:"contract"`
	Logger   struct {
		Level string `yaml:"level"`
	} `yaml:"logger"`
	Wallet struct {
		Path    string `yaml:"path"`
		Address string `yaml:"address"`
	} `yaml:"wallet"`
}

// Default returns configuration with all defaults applied.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

// Load reads configuration from the YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	c.applyDefaults()

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.RPC.Endpoint == "" {
		c.RPC.Endpoint = DefaultEndpoint
	}
	if c.RPC.DialTimeout == 0 {
		c.RPC.DialTimeout = gateway.DefaultDialTimeout
	}
	if c.RPC.RequestTimeout == 0 {
		c.RPC.RequestTimeout = gateway.DefaultRequestTimeout
	}
	if c.Logger.Level == "" {
		c.Logger.Level = DefaultLoggerLevel
	}
}

// ContractHash parses configured NNS contract hash. Zero hash is returned for
// an empty value.
func (c *Config) ContractHash() (util.Uint160, error) {
	if c.Contract == "" {
		return util.Uint160{}, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(c.Contract, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid contract hash %q: %w", c.Contract, err)
	}
	return h, nil
}

// Validate checks the configuration consistency.
func (c *Config) Validate() error {
	if c.Wallet.Address != "" && c.Wallet.Path == "" {
		return errors.New("wallet address is set without wallet path")
	}
	if c.RPC.DialTimeout < 0 || c.RPC.RequestTimeout < 0 {
		return errors.New("negative RPC timeout")
	}
	_, err := c.ContractHash()
	return err
}
