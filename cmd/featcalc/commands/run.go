package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/featcalc/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate the configured features on every input of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dataPath, _ := cmd.Flags().GetString("data")
			workers, _ := cmd.Flags().GetInt("workers")
			suppress, _ := cmd.Flags().GetBool("suppress-errors")
			reuse, _ := cmd.Flags().GetBool("reuse-caches")
			format, _ := cmd.Flags().GetString("format")
			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath:     configPath,
				InputPath:      dataPath,
				Workers:        workers,
				SuppressErrors: suppress,
				ReuseCaches:    reuse,
				Format:         format,
			})
		},
	}
	cmd.Flags().StringP("config", "c", "features.yaml", "Path to the feature configuration")
	cmd.Flags().StringP("data", "d", "data.yaml", "Path to the dataset")
	cmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (0 uses every CPU)")
	cmd.Flags().Bool("suppress-errors", false, "Report failing calculations and leave their cells empty")
	cmd.Flags().Bool("reuse-caches", false, "Keep caches between inputs and invalidate only what changed")
	cmd.Flags().StringP("format", "o", app.FormatTable, "Output format: table or yaml")
	return cmd
}
