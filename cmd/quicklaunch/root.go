package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yairfalse/quicklaunch/internal/config"
	"github.com/yairfalse/quicklaunch/internal/launcher"
	awsprovider "github.com/yairfalse/quicklaunch/internal/provider/aws"
	"github.com/yairfalse/quicklaunch/internal/telemetry"
)

var (
	version = "0.1.0"

	configPath string
	endpoint   string
	debug      bool

	// Set by the root pre-run for every subcommand.
	cfg               *config.Config
	telemetryProvider *telemetry.Provider
	commandSpan       trace.Span

	// Swapped in tests.
	newLauncher  = launcher.NewFromAWSConfig
	newSTSClient = func(ctx context.Context, c config.AWSConfig) (awsprovider.STSAPI, error) {
		awsCfg, err := awsprovider.LoadConfig(ctx, c)
		if err != nil {
			return nil, err
		}
		return awsprovider.NewSTSClient(awsCfg), nil
	}
	setupTelemetry = telemetry.NewProvider

	rootCmd = &cobra.Command{
		Use:   "quicklaunch",
		Short: "Launch and manage EC2 instances",
		Long: `quicklaunch - EC2 instance launcher

Launch instances with sensible defaults, start, stop, terminate and tag
them, and list instances and regions. Credentials and region come from a
YAML config file that may pull values from the environment:

  aws:
    access_key_id: {{ env "AWS_ACCESS_KEY_ID" }}
    secret_access_key: {{ env "AWS_SECRET_ACCESS_KEY" }}
    region: us-west-2`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

// Execute runs the root command
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	teardown(err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`quicklaunch {{.Version}}
`)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "EC2 endpoint (e.g. ec2.us-west-2.amazonaws.com); overrides aws.endpoint")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	if !needsConfig(cmd) {
		return nil
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Hook(telemetry.TraceHook{})

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	telemetryProvider, err = setupTelemetry(cmd.Context(), cfg.OTEL)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}

	ctx, span := telemetryProvider.StartSpan(cmd.Context(), "quicklaunch."+cmd.Name())
	commandSpan = span
	cmd.SetContext(ctx)

	log.Debug().Ctx(ctx).
		Str("config", configPath).
		Str("region", cfg.AWS.Region).
		Str("endpoint", endpointFlagOrConfig()).
		Msg("config loaded")
	return nil
}

// teardown ends the command span and flushes telemetry. It runs after the
// command whether or not it failed.
func teardown(cmdErr error) {
	if commandSpan != nil {
		if cmdErr != nil {
			commandSpan.RecordError(cmdErr)
			commandSpan.SetStatus(codes.Error, cmdErr.Error())
		}
		commandSpan.End()
		commandSpan = nil
	}

	if telemetryProvider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := telemetryProvider.Shutdown(ctx)
	telemetryProvider = nil
	if err != nil {
		log.Warn().Err(err).Msg("telemetry shutdown failed")
	}
}

// needsConfig is false for cobra's own help and completion commands.
func needsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return cmd.Parent() == nil || cmd.Parent().Name() != "completion"
}

func endpointFlagOrConfig() string {
	if endpoint != "" {
		return endpoint
	}
	return cfg.AWS.Endpoint
}

// currentLauncher builds a launcher for the configured region and endpoint.
func currentLauncher(cmd *cobra.Command) (*launcher.Launcher, error) {
	return newLauncher(cmd.Context(), cfg.AWS, endpointFlagOrConfig())
}
