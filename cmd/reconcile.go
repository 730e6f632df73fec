package cmd

import (
	"fmt"

	"github.com/esanchezm/megaverse/internal/cli"

	"github.com/spf13/cobra"
)

func newReconcileCmd() *cobra.Command {
	flags := &cli.CommandFlags{}

	cmd := &cobra.Command{
		Use:   "reconcile [candidate_id]",
		Short: "Make the candidate's megaverse match its goal map",
		Long: `Fetches the current map and the goal map, then creates or deletes
objects cell by cell, in row-major order, until the two match.

Transient API failures (429, 500, 501, 503) are retried. The first call
that still fails stops the run; changes already made are kept, so the
command can simply be run again.

The candidate id can also be set with MEGAVERSE_CANDIDATE_ID or in the
config file.`,
		Example: `  megaverse reconcile 3f1c...
  MEGAVERSE_URL=http://localhost:8080 megaverse reconcile 3f1c...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, args, flags)
		},
	}

	cli.RegisterCommonFlags(cmd, flags)
	return cmd
}

func runReconcile(cmd *cobra.Command, args []string, flags *cli.CommandFlags) error {
	format, err := cli.ParseOutputFormat(flags.OutputFormat)
	if err != nil {
		return err
	}

	r, err := newReconciler(args, flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	progress := cli.StartProgress(cmd.ErrOrStderr(), flags.Quiet || format != cli.OutputTable, "Fetching current and goal maps...")

	plan, err := r.Plan(ctx)
	if err != nil {
		progress.Stop(err)
		return err
	}

	progress.Update(fmt.Sprintf("Reconciling %d cells (%d API calls)...", len(plan.Actions), plan.Calls()))
	summary, err := r.Execute(ctx, plan)
	progress.Stop(err)
	if err != nil {
		return err
	}

	return cli.RenderSummary(cmd.OutOrStdout(), summary, r.Metrics().GetSummary(), format)
}
