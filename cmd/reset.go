package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the timer to idle",
	Long: `Return the timer to idle, abandoning the current phase and clearing
the cycle count. Completed work blocks already in the stats ledger are
kept; use "tempo stats --clear" to wipe those.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if _, err := app.engine.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset timer: %w", err)
		}

		fmt.Println("⏹️  Timer reset. Next start begins a fresh work block.")
		return nil
	},
}
