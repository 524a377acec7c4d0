package main

import (
	"fmt"
	"os"

	"github.com/cnosuke/mcp-supadata/config"
	"github.com/cnosuke/mcp-supadata/server"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// set by ldflags
	Version  = "0.0.1"
	Revision = "xxx"
)

const appName = "mcp-supadata"

var logLevel = zap.NewAtomicLevel()

func main() {
	app := &cli.App{
		Name:    appName,
		Usage:   "Supadata connector: YouTube metadata, transcripts, channels and web scraping",
		Version: fmt.Sprintf("%s (%s)", Version, Revision),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			return initLogger(c.Bool("debug"))
		},
		After: func(c *cli.Context) error {
			_ = zap.L().Sync()
			return nil
		},
		Commands: []*cli.Command{
			runCommand(),
			{
				Name:  "server",
				Usage: "serve the connector operations as MCP tools over stdio",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					return server.Run(cfg, appName, Version, Revision)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.S().Errorw("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if !c.Bool("debug") {
		if err := logLevel.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", cfg.Log.Level)
		}
	}
	return cfg, nil
}

// initLogger installs the global logger. Logs go to stderr; stdout carries
// command output and the MCP stdio stream.
func initLogger(debug bool) error {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		logLevel.SetLevel(zap.DebugLevel)
	}
	zc.Level = logLevel

	logger, err := zc.Build()
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}
