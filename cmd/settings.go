package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvidx/tempo/internal/config"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change timer settings",
	Long: `Show the current timer settings, or change one with "settings set".
Changes take effect at the next phase transition; the running phase keeps
its original end time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := app.settings.Settings().Normalize()

		if jsonOutput {
			fmt.Printf("{\n  \"work_duration\": %q,\n  \"short_break\": %q,\n  \"long_break\": %q,\n  \"long_break_interval\": %d\n}\n",
				settings.WorkDuration, settings.ShortBreakDuration, settings.LongBreakDuration, settings.LongBreakInterval)
			return nil
		}

		configPath, _ := config.GetConfigPath()
		fmt.Printf("⚙️  Timer settings\n")
		fmt.Printf("   work_duration:       %s\n", settings.WorkDuration)
		fmt.Printf("   short_break:         %s\n", settings.ShortBreakDuration)
		fmt.Printf("   long_break:          %s\n", settings.LongBreakDuration)
		fmt.Printf("   long_break_interval: %d\n", settings.LongBreakInterval)
		fmt.Printf("\nEdit %s or use \"tempo settings set <key> <value>\".\n", configPath)
		return nil
	},
}

// settingsSetCmd changes a single setting.
var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a single setting",
	Long: `Change one setting in the config file. Keys use the config file's
section.key form, e.g.:

  tempo settings set timer.work_duration 50m
  tempo settings set timer.long_break_interval 3
  tempo settings set notifications.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// Durations get validated up front so a typo doesn't poison the file.
		switch key {
		case "timer.work_duration", "timer.short_break", "timer.long_break",
			"timer.auto_start_delay", "timer.tick_interval":
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("invalid duration %q: %w", value, err)
			}
		}

		if err := config.SetValue(key, value); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}

		fmt.Printf("✅ %s = %s\n", key, value)
		fmt.Println("   Applies from the next phase; the running phase keeps its end time.")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}
