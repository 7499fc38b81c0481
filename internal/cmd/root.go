package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "0.2.0"

var (
	flagDisplay int
	flagBackend string
	flagVerbose bool
	flagNoColor bool
)

// errReported marks a failure whose detail already went to stderr as
// per-display status lines; Execute only has to set the exit code.
var errReported = errors.New("run failed")

var rootCmd = &cobra.Command{
	Use:     "lumactl",
	Version: Version,
	Short:   "Control display brightness over DDC/CI and sysfs backlight",
	Long: `Lumactl reads and adjusts the brightness of attached displays.

External monitors are driven over DDC/CI on their I2C bus; built-in
panels go through /sys/class/backlight. Without --display, commands
operate on every detected display in turn.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			printError(fmt.Sprintf("Error: %v", err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagDisplay, "display", "d", -1,
		"operate on a single display by index (default: all displays)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "",
		"display backend: ddc, backlight or auto")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false,
		"log bus probing and transactions to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false,
		"disable colored error output")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(incCmd)
	rootCmd.AddCommand(decCmd)
	rootCmd.AddCommand(listCmd)
}
