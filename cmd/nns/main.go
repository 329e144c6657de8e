package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/nns-client/config"
	"github.com/nspcc-dev/nns-client/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Keys of cli.App.Metadata.
const (
	metaConfig   = "config"
	metaLogger   = "logger"
	metaRegistry = "registry"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "nns",
		Usage: "Neo Name Service client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				EnvVars: []string{"NNS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "rpc",
				Aliases: []string{"r"},
				Usage:   "Neo RPC server address, overrides configuration",
			},
			&cli.StringFlag{
				Name:  "contract",
				Usage: "NNS contract hash, overrides configuration",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Logging level (debug, info, warn, error), overrides configuration",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "RPC request timeout, overrides configuration",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print RPC metrics after the command",
			},
		},
		Before: setup,
		After:  printMetrics,
		Commands: []*cli.Command{
			priceCommand(),
			balanceCommand(),
			ownerCommand(),
			recordCommand(),
			recordsCommand(),
			availableCommand(),
			propertiesCommand(),
			resolveCommand(),
			rootsCommand(),
			namesCommand(),
			tokensCommand(),
			checkCommand(),
			buyCommand(),
			renewCommand(),
			setAdminCommand(),
			transferCommand(),
			setRecordCommand(),
			deleteRecordCommand(),
		},
	}
}

func setup(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	if c.IsSet("rpc") {
		cfg.RPC.Endpoint = c.String("rpc")
	}
	if c.IsSet("contract") {
		cfg.Contract = c.String("contract")
	}
	if c.IsSet("log-level") {
		cfg.Logger.Level = c.String("log-level")
	}
	if c.IsSet("timeout") {
		cfg.RPC.RequestTimeout = c.Duration("timeout")
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.Logger.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	c.App.Metadata[metaConfig] = cfg
	c.App.Metadata[metaLogger] = log.Named("nns")
	c.App.Metadata[metaRegistry] = prometheus.NewRegistry()

	return nil
}

func printMetrics(c *cli.Context) error {
	reg, ok := c.App.Metadata[metaRegistry].(*prometheus.Registry)
	if !ok || !c.Bool("metrics") {
		return nil
	}

	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(c.App.ErrWriter, mf); err != nil {
			return fmt.Errorf("print metrics: %w", err)
		}
	}
	return nil
}

func appConfig(c *cli.Context) *config.Config {
	return c.App.Metadata[metaConfig].(*config.Config)
}

func appLogger(c *cli.Context) *zap.Logger {
	return c.App.Metadata[metaLogger].(*zap.Logger)
}

func appRegistry(c *cli.Context) prometheus.Registerer {
	return c.App.Metadata[metaRegistry].(*prometheus.Registry)
}

// awaitTimeout bounds waiting for a transaction when --await is set.
const awaitTimeout = 2 * time.Minute
