package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/coinbase/cb-bn-go/pkg/cbbn"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/logging"
)

const (
	configFlag    = "config"
	logLevelFlag  = "loglevel"
	logFormatFlag = "log-format"

	logFormatJSON    = "json"
	logFormatConsole = "console"
)

// state carries what Before resolved to the command actions.
type state struct {
	cfg cbbn.Config
	zl  zerolog.Logger
	log logging.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cbbn-go: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	st := &state{}
	return &cli.App{
		Name:    "cbbn-go",
		Usage:   "big-integer RSA toolkit",
		Version: cbbn.BuildVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "YAML config file (digit_bits, mul_add, entropy, keygen_attempts)",
				EnvVars: []string{"CBBN_CONFIG"},
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Value: "info",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  logFormatFlag,
				Value: logFormatConsole,
				Usage: "console or json",
			},
		},
		Before: func(c *cli.Context) error {
			st.zl = createLogger(c)
			st.log = logging.NewZerolog(st.zl)
			if path := c.String(configFlag); path != "" {
				cfg, err := cbbn.LoadConfig(path)
				if err != nil {
					return err
				}
				st.cfg = cfg
			}
			return nil
		},
		Commands: []*cli.Command{
			versionCommand(),
			benchCommand(st),
			keygenCommand(st),
			encryptCommand(st),
			decryptCommand(st),
		},
	}
}

// createLogger writes to the app's error writer, colorized when it is a
// terminal file.
func createLogger(c *cli.Context) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.String(logLevelFlag))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var out io.Writer = c.App.ErrWriter
	if out == nil {
		out = os.Stderr
	}
	var writer io.Writer
	switch c.String(logFormatFlag) {
	case logFormatJSON:
		writer = out
	default:
		if f, ok := out.(*os.File); ok {
			out = colorable.NewColorable(f)
		}
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(writer).With().Timestamp().Logger().Level(level)
}

func (st *state) open(opts ...cbbn.Option) (*cbbn.Library, error) {
	return cbbn.Open(st.cfg, append([]cbbn.Option{cbbn.WithLogger(st.log)}, opts...)...)
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the build version",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprintln(c.App.Writer, cbbn.BuildVersion())
			return err
		},
	}
}
