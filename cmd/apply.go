package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bytemut.dev/pkg/bytemut/internal/domain"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

var applyIDFlag string

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply --id <id> <unit>",
		Short: "Write a single mutant of one unit",
		Long: `Apply one candidate to a unit file and write the mutant into the
reports directory. The id is either a full mutation identifier or the
16 character short id printed by list, run and view.`,
		Args: cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindCommandFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Apply(cmd.Context(), domain.ApplyArgs{
				MutagenArgs: mutagenArgs(),
				Unit:        m.Path(args[0]),
				ID:          applyIDFlag,
				Reports:     m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	cmd.Flags().StringVar(&applyIDFlag, idFlagName, "", "mutation id or short id")
	cobra.CheckErr(cmd.MarkFlagRequired(idFlagName))
	configureSelectionFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
