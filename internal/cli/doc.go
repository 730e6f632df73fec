// Package cli holds the presentation helpers shared by the megaverse
// commands.
//
// # Flags
//
// RegisterGlobalFlags and RegisterCommonFlags keep flag names and help
// text identical across commands. ResolveCandidateID applies the
// argument > MEGAVERSE_CANDIDATE_ID > config file precedence.
//
// # Output
//
// RenderPlan and RenderSummary write plans and run results as a rounded
// go-pretty table, JSON or YAML:
//
//	format, err := cli.ParseOutputFormat(flags.OutputFormat)
//	if err != nil {
//	    return err
//	}
//	return cli.RenderPlan(cmd.OutOrStdout(), plan, format)
//
// # Errors
//
// Describe maps a failed run to a message with an actionable hint.
// Transport failures are classified with ClassifyConnectionError; API
// errors are explained from their status code.
package cli
