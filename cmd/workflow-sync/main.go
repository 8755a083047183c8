package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/efp-dev-ops/ai-workflow-automation/internal/cfg"
	"github.com/efp-dev-ops/ai-workflow-automation/internal/githubclt"
	"github.com/efp-dev-ops/ai-workflow-automation/internal/logfields"
	"github.com/efp-dev-ops/ai-workflow-automation/internal/propagate"
)

const appName = "workflow-sync"

// githubTokenEnvVar holds the API token with write access to all target
// repositories.
const githubTokenEnvVar = "GITHUB_TOKEN"

var logger *zap.Logger

// Version is set via a ldflag on compilation
var Version = "unknown"

func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "ERROR:", msg+", error:", err.Error())
	os.Exit(1)
}

func panicHandler() {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Info(
				"panic caught, terminating",
				zap.String("panic", fmt.Sprintf("%v", r)),
				zap.StackSkip("stacktrace", 1),
			)
		}

		goodbye.Exit(context.Background(), 1)
	}
}

type arguments struct {
	Verbose     *bool
	ShowVersion *bool
}

var args arguments

func mustParseCommandlineParams() {
	args = arguments{
		Verbose: pflag.BoolP(
			"verbose",
			"v",
			false,
			"enable verbose logging",
		),
		ShowVersion: pflag.Bool(
			"version",
			false,
			"print the version and exit",
		),
	}

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION] [CONFIG-FILE]\nPropagate workflow updates to the configured repositories via pull requests.\n", appName)
		fmt.Fprintf(os.Stderr, "\nCONFIG-FILE defaults to %s.\n", cfg.DefaultConfigPath)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if pflag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "ERROR: expecting at most 1 positional argument, got %d\n", pflag.NArg())
		pflag.Usage()
		os.Exit(1)
	}
}

func configPath() string {
	if pflag.NArg() == 1 {
		return pflag.Arg(0)
	}

	return cfg.DefaultConfigPath
}

func mustParseCfg(path string) *cfg.Config {
	// exitOnErr is used instead of logger.Fatal() because the logger is
	// not initialized yet

	config, err := cfg.LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			exitOnErr("configuration file does not exist", err)
		}

		exitOnErr("could not load configuration file", err)
	}

	return config
}

func mustInitLogger() {
	logLevel := zapcore.InfoLevel
	if *args.Verbose {
		logLevel = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.LevelKey = "loglevel"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	logger = zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(encCfg),
		os.Stdout,
		logLevel),
	)

	logger = logger.Named("main")
	zap.ReplaceGlobals(logger)

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}

func main() {
	defer panicHandler()

	goodbye.Notify(context.Background())

	mustParseCommandlineParams()

	if *args.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		os.Exit(0)
	}

	apiToken := os.Getenv(githubTokenEnvVar)
	if apiToken == "" {
		fmt.Fprintf(os.Stderr, "ERROR: %s environment variable is not set\n", githubTokenEnvVar)
		os.Exit(1)
	}

	cfgPath := configPath()
	config := mustParseCfg(cfgPath)

	mustInitLogger()

	logger.Info(
		"loaded cfg file",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", cfgPath),
		logfields.WorkflowVersion(config.WorkflowVersion),
		zap.Bool("dry_run", config.DryRun),
		zap.Int("repository_count", len(config.Repositories)),
		zap.String("github_api_token", hide(apiToken)),
	)

	goodbye.Register(func(_ context.Context, sig os.Signal) {
		logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
	})

	propagator := propagate.New(githubclt.New(apiToken), config)

	result := propagator.Run(context.Background())

	if result.Failed > 0 {
		goodbye.Exit(context.Background(), 1)
	}

	goodbye.Exit(context.Background(), 0)
}
