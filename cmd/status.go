package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvidx/tempo/internal/domain"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer state",
	Long:  `Display the current phase, its remaining time, and today's statistics.`,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	state := app.engine.State()
	summary, err := app.engine.StatsSummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if jsonOutput {
		return outputStatusJSON(state, summary)
	}

	printStatusText(state, summary)
	return nil
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(state domain.TimerState, summary *domain.StatsSummary) error {
	result := map[string]interface{}{
		"phase":       string(state.Phase),
		"cycle_count": state.CycleCount,
		"stats": map[string]interface{}{
			"today":       summary.Today,
			"week":        summary.Week,
			"streak_days": summary.Streak,
		},
	}

	switch {
	case state.Running:
		result["status"] = "running"
		result["ends_at"] = state.EndTime.Format(time.RFC3339)
		result["remaining"] = state.RemainingAt(timeNow()).Round(time.Second).String()
	case state.IsPaused():
		result["status"] = "paused"
		result["remaining"] = state.Remaining.Round(time.Second).String()
	case state.JustCompleted():
		result["status"] = "completed"
	default:
		result["status"] = "idle"
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// printStatusText prints the status in plain text format
func printStatusText(state domain.TimerState, summary *domain.StatsSummary) {
	switch {
	case state.Running:
		fmt.Printf("🍅 %s running\n", domain.PhaseLabel(state.Phase))
		fmt.Printf("   Remaining: %s\n", formatCmdDuration(state.RemainingAt(timeNow())))
		fmt.Printf("   Ends at:   %s\n", state.EndTime.Format("15:04"))
	case state.IsPaused():
		fmt.Printf("⏸️  %s paused\n", domain.PhaseLabel(state.Phase))
		fmt.Printf("   Remaining: %s\n", formatCmdDuration(*state.Remaining))
	case state.JustCompleted():
		fmt.Printf("✅ %s finished. \"tempo start\" begins the next phase.\n", domain.PhaseLabel(state.Phase))
	default:
		fmt.Println("No phase running. \"tempo start\" begins a work block.")
	}

	fmt.Printf("\n📊 Today: %d · Week: %d · Streak: %d days\n",
		summary.Today, summary.Week, summary.Streak)
}
