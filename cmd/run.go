package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bytemut.dev/pkg/bytemut/internal/domain"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

var runShardFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Write every mutant of the given units",
		Long:  runLongDescription,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindCommandFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			shardIndex, totalShards := parseShardFlag(runShardFlag)

			return workflow.Run(cmd.Context(), domain.RunArgs{
				EstimateArgs: domain.EstimateArgs{
					MutagenArgs:   mutagenArgs(),
					Paths:         defaultPaths(args),
					Exclude:       viper.GetStringSlice(excludeConfigKey),
					Threads:       viper.GetInt(runParallelConfigKey),
					MaxCandidates: viper.GetInt(maxCandidatesConfigKey),
				},
				Reports:         m.Path(viper.GetString(outputFlagName)),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	configureEnumerationFlags(cmd)
	cmd.Flags().IntP(runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers")
	cmd.Flags().StringVarP(&runShardFlag, shardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
