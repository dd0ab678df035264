package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/viant/svcrun"
	"github.com/viant/svcrun/service/dispatcher"
)

var (
	configURL = flag.String("config", "", "configuration URL (YAML)")
	baseDir   = flag.String("dir", "", "project directory commands operate on")
	format    = flag.String("format", "", "report format: table or json")
	logLevel  = flag.String("log-level", "warn", "log level: debug, info, warn or error")
	traceFile = flag.String("trace", "", "write OpenTelemetry spans to the given file")
	version   = flag.Bool("version", false, "print version and exit")
)

// Version is injected at build time via -ldflags.
var Version = "dev"

func main() {
	flag.Usage = usage
	flag.Parse()
	if *version {
		fmt.Println("svcrun", Version)
		return
	}
	os.Exit(run(flag.Args()))
}

func run(args []string) int {
	loadEnvFile()
	logger := newLogger(*logLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(ctx)
	if err != nil {
		logger.Error("configuration error", "err", err)
		fmt.Fprintf(os.Stderr, "svcrun: %v\n", err)
		return dispatcher.ExitInternalError
	}
	if config.EnvFile != "" {
		loadNamedEnvFile(config.EnvFile)
	}

	options := []svcrun.Option{
		svcrun.WithConfig(config),
		svcrun.WithLogger(logger),
	}
	if *traceFile != "" {
		options = append(options, svcrun.WithTracing("svcrun", Version, *traceFile))
	}
	service, err := svcrun.New(ctx, options...)
	if err != nil {
		logger.Error("initialisation error", "err", err)
		fmt.Fprintf(os.Stderr, "svcrun: %v\n", err)
		return dispatcher.ExitInternalError
	}
	return service.Dispatch(ctx, args)
}

// loadEnvFile loads SVCRUN_ENV_FILE when set, the project .env otherwise.
// A missing file is not an error; existing process variables always win.
func loadEnvFile() {
	envFile := os.Getenv("SVCRUN_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	loadNamedEnvFile(envFile)
}

func loadNamedEnvFile(envFile string) {
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "svcrun: failed to load %v: %v\n", envFile, err)
	}
}

func loadConfig(ctx context.Context) (*svcrun.Config, error) {
	config := svcrun.DefaultConfig()
	if *configURL != "" {
		loaded, err := svcrun.LoadConfig(ctx, *configURL)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if *baseDir != "" {
		config.BaseURL = *baseDir
	}
	if *format != "" {
		config.Output = *format
	}
	if value := os.Getenv("ENSURE_VIRTUALENV"); value != "" {
		config.EnsureVenv = value == "1" || strings.EqualFold(value, "true")
	}
	return config, config.Validate()
}

// newLogger builds an isolated text logger; it does not touch the slog
// default so embedded use stays unaffected.
func newLogger(levelStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level}))
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: svcrun [flags] <service> <command> [args...]\n\n")
	fmt.Fprintf(out, "Runs a named command of a named service, e.g.:\n")
	fmt.Fprintf(out, "  svcrun quality lint\n")
	fmt.Fprintf(out, "  svcrun dev venv\n")
	fmt.Fprintf(out, "  svcrun publish upload\n\nFlags:\n")
	flag.PrintDefaults()
}
