package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List detected displays and their metadata",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		backend, err := selectBackend(log)
		if err != nil {
			return err
		}

		fmt.Println("Querying display info... (~1-2 seconds)")
		displays, err := backend.Enumerate()
		if err != nil {
			return err
		}

		fmt.Println("Detected displays:")
		for i, d := range displays {
			fmt.Printf("  - [%d]: %s\n", i, d.Info().Description())
			d.Close()
		}
		return nil
	},
}
