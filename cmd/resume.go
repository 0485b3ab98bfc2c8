package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvidx/tempo/internal/domain"
)

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused phase",
	Long: `Resume a paused phase. The frozen remaining time picks up from the
moment of resumption; time spent paused does not count.

Note: resuming from a one-shot command leaves no process watching the
clock, so the phase end is settled by the next tempo command (or use
"tempo start" to attach the fullscreen timer).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		before := app.engine.State()
		if !before.IsPaused() {
			if before.Running {
				fmt.Printf("⏱️  %s already running (%s remaining).\n",
					domain.PhaseLabel(before.Phase), formatCmdDuration(before.RemainingAt(timeNow())))
			} else {
				fmt.Println("Nothing to resume. \"tempo start\" begins the next phase.")
			}
			return nil
		}

		state, err := app.engine.Resume(ctx)
		if err != nil {
			return fmt.Errorf("failed to resume phase: %w", err)
		}

		fmt.Printf("▶️  %s resumed. Remaining: %s\n",
			domain.PhaseLabel(state.Phase), formatCmdDuration(state.RemainingAt(timeNow())))
		return nil
	},
}
