package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/dvidx/tempo/internal/domain"
)

var statsClear bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the completion dashboard",
	Long: `Display completed work blocks: today's count, a bar chart of the
trailing week, and the current daily streak.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if statsClear {
			return clearStats(ctx)
		}

		summary, err := app.engine.StatsSummary(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		if jsonOutput {
			fmt.Printf("{\n  \"today\": %d,\n  \"week\": %d,\n  \"streak_days\": %d\n}\n",
				summary.Today, summary.Week, summary.Streak)
			return nil
		}

		printDashboard(ctx, summary)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsClear, "clear", false, "Delete all recorded completions and the streak")
}

// clearStats wipes the completion ledger after confirmation.
func clearStats(ctx context.Context) error {
	fmt.Print("This will delete all recorded completions and the streak.\nAre you sure? Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(strings.ToLower(input)) != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := app.engine.ClearStats(ctx); err != nil {
		return fmt.Errorf("failed to clear stats: %w", err)
	}
	fmt.Println("Stats cleared. Fresh start.")
	return nil
}

// printDashboard renders the stats dashboard.
func printDashboard(ctx context.Context, summary *domain.StatsSummary) {
	theme := app.config.Theme
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorWork))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorBreak))

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s Tempo stats", theme.IconStats)))
	fmt.Println()

	fmt.Printf("  Today:  %s\n", accentStyle.Render(english.Plural(summary.Today, "work block", "")))
	fmt.Printf("  Week:   %s\n", accentStyle.Render(english.Plural(summary.Week, "work block", "")))
	fmt.Printf("  Streak: %s\n", accentStyle.Render(english.Plural(summary.Streak, "day", "")))
	fmt.Println()

	// Trailing week, oldest day first
	today := domain.DateKeyOf(timeNow())
	for offset := -6; offset <= 0; offset++ {
		day := today.AddDays(offset)
		count, err := app.storage.Stats().CountForDay(ctx, day)
		if err != nil {
			continue
		}

		label := dayLabel(day, today)
		bar := strings.Repeat("▇", count)
		if count == 0 {
			fmt.Printf("  %s %s\n", dimStyle.Render(label), dimStyle.Render("·"))
		} else {
			fmt.Printf("  %s %s %d\n", dimStyle.Render(label), barStyle.Render(bar), count)
		}
	}
	fmt.Println()
}

// dayLabel renders a date key as a fixed-width weekday label.
func dayLabel(day, today domain.DateKey) string {
	if day == today {
		return "Today"
	}
	t, err := time.ParseInLocation("2006-01-02", string(day), time.Local)
	if err != nil {
		return string(day)
	}
	return fmt.Sprintf("%-5s", t.Format("Mon"))
}
