package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bytemut.dev/pkg/bytemut/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List unit files and candidate counts",
		Long:  listLongDescription,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindCommandFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Estimate(cmd.Context(), domain.EstimateArgs{
				MutagenArgs:   mutagenArgs(),
				Paths:         defaultPaths(args),
				Exclude:       viper.GetStringSlice(excludeConfigKey),
				Threads:       viper.GetInt(runParallelConfigKey),
				MaxCandidates: viper.GetInt(maxCandidatesConfigKey),
			})
		},
	}

	configureEnumerationFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
