package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hoppxi/lumactl/pkg/brightness"
)

var decCmd = &cobra.Command{
	Use:   "dec [percent]",
	Short: "Decrease brightness by a percentage (default: configured step)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, err := stepArg(args)
		if err != nil {
			return err
		}
		return runChange(brightness.Relative(-int16(step)))
	},
}
