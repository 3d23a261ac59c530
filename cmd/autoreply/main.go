package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/devricklin/intercom-autoreply/internal/conf"
)

var CLI struct {
	Version kong.VersionFlag
	EnvFile string `help:".env file to load before reading the environment." type:"path" default:".env"`

	Serve ServeCmd `cmd:"" help:"Run the webhook server." default:"1"`
	Check CheckCmd `cmd:"" help:"Evaluate office hours for a point in time."`
	Sign  SignCmd  `cmd:"" help:"Print the X-Hub-Signature for a payload."`
}

// App is passed to every command's Run
type App struct {
	Config *conf.Config
	Logger *zap.Logger
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("autoreply"),
		kong.Description("Out-of-office auto-responder for Intercom conversations"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Load .env file
	envErr := godotenv.Load(CLI.EnvFile)

	// Load configuration
	cfg := conf.LoadFromEnv()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Debug("no .env file found, using environment variables", zap.String("path", CLI.EnvFile))
	}

	err = ctx.Run(&App{Config: cfg, Logger: logger})
	if err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
