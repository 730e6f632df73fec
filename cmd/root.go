package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/esanchezm/megaverse/internal/cli"
	"github.com/esanchezm/megaverse/internal/config"
	"github.com/esanchezm/megaverse/internal/megaverse"
	"github.com/esanchezm/megaverse/internal/reconciler"
	"github.com/esanchezm/megaverse/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeValidation indicates the goal map could not be applied as given
	// (invalid attribute or dimension mismatch). Nothing was changed.
	ExitCodeValidation = 2
	// ExitCodeAPI indicates the API failed or could not be reached.
	ExitCodeAPI = 3
)

var (
	// globalFlags holds the persistent flags shared by every subcommand.
	globalFlags cli.CommandFlags

	// loadedConfig is populated by the root PersistentPreRunE.
	loadedConfig = config.GetDefaultConfig()

	// activeEndpoint is the base URL of the last client built, used to
	// describe connection failures.
	activeEndpoint = megaverse.DefaultBaseURL
)

// rootCmd represents the base command for the megaverse application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "megaverse",
	Short: "Reconcile a candidate's megaverse with its goal map",
	Long: `megaverse reads a candidate's current map and goal map from the
megaverse API and creates or deletes polyanets, soloons and comeths
until the two match.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	// Errors are printed by Execute with a hint for the user.
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "megaverse version %s\n" .Version}}`)

	// Interrupting a run stops it before the next cell; calls already
	// made are kept.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Describe(err, activeEndpoint))
		os.Exit(getExitCode(err))
	}
}

// setupRuntime initialises logging and loads the config file.
//
// Logging starts from --debug so config loading can be traced, and is
// re-initialised with the configured level when --debug is not set.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	level := logging.LevelInfo
	if globalFlags.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	cfg, err := config.LoadConfig(globalFlags.ConfigPath)
	if err != nil {
		return err
	}
	loadedConfig = cfg

	if !globalFlags.Debug && cfg.LogLevel != "" {
		configured, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if configured != level {
			logging.InitForCLI(configured, cmd.ErrOrStderr())
		}
	}

	logging.Debug("CLI", "Loaded configuration from %q (baseURL=%s)", globalFlags.ConfigPath, cfg.BaseURL)
	return nil
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	if errors.Is(err, megaverse.ErrInvalidAttribute) || errors.Is(err, reconciler.ErrDimensionMismatch) {
		return ExitCodeValidation
	}

	var apiErr *megaverse.APIError
	if errors.As(err, &apiErr) {
		return ExitCodeAPI
	}

	if cli.ClassifyConnectionError(err, activeEndpoint) != nil {
		return ExitCodeAPI
	}

	return ExitCodeError
}

// init adds subcommands and persistent flags to the root command.
func init() {
	cli.RegisterGlobalFlags(rootCmd, &globalFlags)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newReconcileCmd())
	rootCmd.AddCommand(newPlanCmd())
}
