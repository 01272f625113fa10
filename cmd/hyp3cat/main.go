package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/hyp3-catalog/internal/config"
	"github.com/jrsteele09/hyp3-catalog/internal/display"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: hyp3cat [-config file] [-env file] <command> [flags]

commands:
  subscriptions  list enabled subscriptions
  products       list the products of a subscription
  granules       list the granules processed by a subscription
  correlate      match granules in a date range to products and search metadata
  dates          list product acquisition dates and the selectable day range
  aoi            apply area of interest selection events read from stdin
  proxy          print the notebook proxy url of a local port
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("hyp3cat failed")
	}
}

func run(args []string, stdin *os.File, stdout io.Writer) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	global := flag.NewFlagSet("hyp3cat", flag.ContinueOnError)
	configPath := global.String("config", "", "TOML config file")
	envPath := global.String("env", ".env", "dotenv file loaded into the environment when present")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("no command given")
	}

	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", *envPath, err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	setupLogging(os.Stderr, cfg.GetLogLevel(), cfg.GetEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:     cfg,
		stdin:   stdin,
		out:     stdout,
		display: display.New(stdout),
	}

	command, rest := global.Arg(0), global.Args()[1:]
	if command != "aoi" && command != "proxy" {
		displayAppname(stdout, cfg.GetAppName())
	}
	return a.dispatch(ctx, command, rest)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.New(), nil
	}
	return config.Load(path)
}

// setupLogging writes JSON events in production and human readable ones elsewhere.
func setupLogging(w io.Writer, level, env string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if env == "PROD" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen})
}

func displayAppname(w io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(w, myFigure.String())
}
