package cmd

import (
	"github.com/esanchezm/megaverse/internal/cli"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	flags := &cli.CommandFlags{}

	cmd := &cobra.Command{
		Use:   "plan [candidate_id]",
		Short: "Show the changes reconcile would make, without making them",
		Long: `Fetches the current map and the goal map and prints, cell by cell,
what reconcile would set or clean. No object is created or deleted.

Invalid colors or directions and maps of different size are reported
here exactly as reconcile would report them.`,
		Example: `  megaverse plan 3f1c...
  megaverse plan 3f1c... -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args, flags)
		},
	}

	cli.RegisterCommonFlags(cmd, flags)
	return cmd
}

func runPlan(cmd *cobra.Command, args []string, flags *cli.CommandFlags) error {
	format, err := cli.ParseOutputFormat(flags.OutputFormat)
	if err != nil {
		return err
	}

	r, err := newReconciler(args, flags)
	if err != nil {
		return err
	}

	progress := cli.StartProgress(cmd.ErrOrStderr(), flags.Quiet || format != cli.OutputTable, "Fetching current and goal maps...")
	plan, err := r.Plan(cmd.Context())
	progress.Stop(err)
	if err != nil {
		return err
	}

	return cli.RenderPlan(cmd.OutOrStdout(), plan, format)
}
