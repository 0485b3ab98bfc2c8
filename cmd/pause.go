package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvidx/tempo/internal/domain"
)

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running phase",
	Long:  `Pause the currently running phase, freezing its remaining time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		before := app.engine.State()
		if !before.Running {
			if before.IsPaused() {
				fmt.Printf("⏸️  Already paused (%s remaining).\n", formatCmdDuration(*before.Remaining))
			} else {
				fmt.Println("No phase running.")
			}
			return nil
		}

		state, err := app.engine.Pause(ctx)
		if err != nil {
			return fmt.Errorf("failed to pause phase: %w", err)
		}

		fmt.Printf("⏸️  %s paused. Remaining: %s\n",
			domain.PhaseLabel(state.Phase), formatCmdDuration(*state.Remaining))
		return nil
	},
}
