// Command bridged runs the message-verification bridge node: a durable
// message registry behind the Ethereum signature-verification service,
// exposed over HTTP.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	bridgeoracle "github.com/bridgeoracle/bridgeoracle-go"
	"github.com/bridgeoracle/bridgeoracle-go/config"
	bridgehttp "github.com/bridgeoracle/bridgeoracle-go/http"
	"github.com/bridgeoracle/bridgeoracle-go/registry"
	"github.com/bridgeoracle/bridgeoracle-go/types"
)

func main() {
	app := &cli.App{
		Name:    "bridged",
		Usage:   "Ethereum message-verification bridge node",
		Version: bridgeoracle.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to TOML configuration file",
			},
			&cli.StringFlag{
				Name:  "listen",
				Usage: "HTTP listen address (overrides config)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "registry database path (overrides config)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if listen := c.String("listen"); listen != "" {
		cfg.Server.Listen = listen
	}
	if db := c.String("db"); db != "" {
		cfg.DB.Path = db
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := registry.OpenLevelDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info("registry store opened", zap.String("path", cfg.DB.Path))

	opts := []bridgeoracle.ServiceOption{
		bridgeoracle.WithLogger(log),
		bridgeoracle.WithEventSink(bridgeoracle.NewLogSink(log)),
	}
	if cfg.Oracle.ExpectedSigner != "" {
		expected, err := types.ParseAddress(cfg.Oracle.ExpectedSigner)
		if err != nil {
			return fmt.Errorf("invalid expected signer: %w", err)
		}
		opts = append(opts, bridgeoracle.WithSignerPolicy(bridgeoracle.ExpectedSigner{Address: expected}))
		log.Info("signer policy active", zap.Stringer("expected", expected))
	}

	svc := bridgeoracle.NewService(registry.New(store), opts...)
	server := bridgehttp.NewServer(svc, bridgehttp.WithLogger(log))

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg.Server.Listen)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
