package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumactl/pkg/brightness"
)

var setCmd = &cobra.Command{
	Use:   "set <percent>",
	Short: "Set brightness to an exact percentage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parsePercent(args[0])
		if err != nil {
			return err
		}
		return runChange(brightness.Absolute(value))
	},
}

// parsePercent accepts 0-100, rejecting anything else before any
// device is touched.
func parsePercent(arg string) (uint16, error) {
	v, err := strconv.ParseUint(arg, 10, 16)
	if err != nil || v > uint64(brightness.MaxPercent) {
		return 0, fmt.Errorf("brightness must be a whole number between 0 and 100, got %q", arg)
	}
	return uint16(v), nil
}
