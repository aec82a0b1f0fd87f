package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxkimambo/fanout/internal/batchfile"
	"github.com/maxkimambo/fanout/internal/dispatch"
	"github.com/maxkimambo/fanout/internal/logger"
	"github.com/maxkimambo/fanout/internal/registry"
	"github.com/maxkimambo/fanout/internal/utils"
)

var (
	parallel bool
	workers  int

	runCmd = &cobra.Command{
		Use:   "run <batch-file>",
		Short: "Execute a batch descriptor file",
		Long: `Loads a TOML batch descriptor, builds its jobs against the builtin
action registry and executes them. With --parallel the jobs are
distributed across a bounded worker pool; otherwise they run one at a
time. The outcome order matches the file order in both modes.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	actionsCmd = &cobra.Command{
		Use:   "actions",
		Short: "List the builtin actions available to batch files",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range registry.Builtins().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
)

func init() {
	runCmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "Distribute jobs across a worker pool")
	runCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker bound for --parallel (0 means all CPUs)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	batch, err := batchfile.Load(path, registry.Builtins())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), utils.MessageBox(utils.ErrorMessage, "Batch file rejected", err.Error()))
		return err
	}

	d, err := dispatch.NewDispatcher(batch.Source(), nil, parallel, workers)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), utils.MessageBox(utils.ErrorMessage, "Invalid configuration", err.Error()))
		return err
	}

	logger.WithFields(map[string]any{
		"file":     path,
		"jobs":     batch.Len(),
		"parallel": parallel,
	}).Info("Running batch")

	outcomes, err := d.Run(cmd.Context())
	if err != nil {
		lines := []string{err.Error()}
		if idx, ok := dispatch.FailedJobIndex(err); ok {
			lines = append(lines, fmt.Sprintf("failed job: %s", batch.Name(idx)))
		}
		fmt.Fprintln(cmd.ErrOrStderr(), utils.MessageBox(utils.ErrorMessage, "Batch aborted", lines...))
		return err
	}

	table := utils.NewTable("JOB", "RESULT")
	for _, outcome := range outcomes {
		table.AddRow(batch.Name(outcome.JobIndex), fmt.Sprint(outcome.Value))
	}
	fmt.Fprint(cmd.OutOrStdout(), table.Render())
	fmt.Fprintln(cmd.OutOrStdout(), utils.MessageBox(utils.SuccessMessage, "Batch completed",
		fmt.Sprintf("%d job(s) finished", len(outcomes))))
	return nil
}
