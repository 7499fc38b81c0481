package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hoppxi/lumactl/internal/manager"
	"github.com/hoppxi/lumactl/pkg/brightness"
)

var incCmd = &cobra.Command{
	Use:   "inc [percent]",
	Short: "Increase brightness by a percentage (default: configured step)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, err := stepArg(args)
		if err != nil {
			return err
		}
		return runChange(brightness.Relative(int16(step)))
	},
}

func stepArg(args []string) (uint16, error) {
	if len(args) == 0 {
		return manager.Config.Load().Step, nil
	}
	return parsePercent(args[0])
}
