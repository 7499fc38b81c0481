package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hoppxi/lumactl/pkg/brightness"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current brightness of displays",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChange(brightness.Relative(0))
	},
}
