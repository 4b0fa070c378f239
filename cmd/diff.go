package cmd

import (
	"github.com/spf13/cobra"

	"bytemut.dev/pkg/bytemut/internal/domain"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

var diffIDFlag string

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff --id <id> <unit>",
		Short: "Show the unified diff of one mutant",
		Long:  "Print a unified diff between a unit file and the mutant produced by one candidate. Nothing is written.",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindCommandFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Diff(cmd.Context(), domain.DiffArgs{
				MutagenArgs: mutagenArgs(),
				Unit:        m.Path(args[0]),
				ID:          diffIDFlag,
			})
		},
	}

	cmd.Flags().StringVar(&diffIDFlag, idFlagName, "", "mutation id or short id")
	cobra.CheckErr(cmd.MarkFlagRequired(idFlagName))
	configureSelectionFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
