package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bytemut.dev/pkg/bytemut/internal/domain"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge sharded manifests into a single manifest",
		Long:  "Merge the manifests of shard_* subdirectories into one manifest in the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.Merge(cmd.Context(), domain.MergeArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
