package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dvidx/tempo/internal/adapters/tui"
	"github.com/dvidx/tempo/internal/domain"
)

var startDetached bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the next phase and show the timer",
	Long: `Start the next phase: a work block from idle or after a break, the
earned break after a work block. If a phase is already running, attaches
to it without restarting.

By default this opens the fullscreen timer and keeps the engine running,
so phases complete, notify, and chain into each other on their own.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		state := app.engine.State()
		if state.Running {
			fmt.Printf("⏱️  %s already running (%s remaining), attaching...\n",
				domain.PhaseLabel(state.Phase), formatCmdDuration(state.RemainingAt(timeNow())))
		} else if state.IsPaused() {
			var err error
			state, err = app.engine.Resume(ctx)
			if err != nil {
				return fmt.Errorf("failed to resume phase: %w", err)
			}
			fmt.Printf("▶️  %s resumed (%s remaining)\n",
				domain.PhaseLabel(state.Phase), formatCmdDuration(state.RemainingAt(timeNow())))
		} else {
			var err error
			state, err = app.engine.Start(ctx)
			if err != nil {
				return fmt.Errorf("failed to start phase: %w", err)
			}
			fmt.Printf("🍅 %s started (%s)\n",
				domain.PhaseLabel(state.Phase), formatCmdDuration(state.RemainingAt(timeNow())))
		}

		if startDetached {
			fmt.Println("   Detached. \"tempo status\" shows progress; note phases will not chain until the next tempo command runs.")
			return nil
		}

		id, snapshots := app.hub.Subscribe(8)
		defer app.hub.Unsubscribe(id)

		model := tui.NewModel(app.engine, snapshots, app.settings, &app.config.Theme)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("timer error: %w", err)
		}

		return nil
	},
}

func init() {
	startCmd.Flags().BoolVarP(&startDetached, "detach", "d", false, "Start the phase and exit without the fullscreen timer")
}
