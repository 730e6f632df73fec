package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/esanchezm/megaverse/internal/config"
	"github.com/esanchezm/megaverse/internal/megaverse"

	"github.com/spf13/cobra"
)

const (
	// EnvURL overrides the default API base URL.
	EnvURL = "MEGAVERSE_URL"

	// EnvCandidateID supplies the candidate id when no argument is given.
	EnvCandidateID = "MEGAVERSE_CANDIDATE_ID"
)

// CommandFlags holds the flag values shared by the commands that talk to
// the megaverse API.
type CommandFlags struct {
	// URL overrides the API base URL (env: MEGAVERSE_URL)
	URL string
	// OutputFormat specifies the desired output format (table, json, yaml)
	OutputFormat string
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables debug logging, including every HTTP request
	Debug bool
	// ConfigPath specifies a custom configuration directory path
	ConfigPath string
}

// RegisterCommonFlags registers the connection and output flags.
//
// The registered flags are:
//   - --url: API base URL (env: MEGAVERSE_URL)
//   - --output/-o: Output format (table, json, yaml), default: "table"
//   - --quiet/-q: Suppress non-essential output
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVar(&flags.URL, "url", os.Getenv(EnvURL), "Base API URL to use for reconciliation (default "+megaverse.DefaultBaseURL+", env: "+EnvURL+")")
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", string(OutputTable), "Output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
}

// RegisterGlobalFlags registers the persistent flags every command accepts.
//
// The registered flags are:
//   - --config-path: Configuration directory
//   - --debug: Enable debug logging
func RegisterGlobalFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", config.GetDefaultConfigPath(), "Configuration directory")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
}

// ResolveCandidateID picks the candidate id from the first argument, the
// environment or the config file, in that order.
func ResolveCandidateID(args []string, cfg config.MegaverseConfig) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	if id := os.Getenv(EnvCandidateID); id != "" {
		return id, nil
	}
	if cfg.CandidateID != "" {
		return cfg.CandidateID, nil
	}
	return "", fmt.Errorf("candidate id is required: pass it as an argument, set %s or add candidateId to the config file", EnvCandidateID)
}

// ResolveBaseURL returns the --url flag (which already defaults to
// MEGAVERSE_URL) or the configured base URL.
func (f *CommandFlags) ResolveBaseURL(cfg config.MegaverseConfig) string {
	if f.URL != "" {
		return f.URL
	}
	return cfg.BaseURL
}
