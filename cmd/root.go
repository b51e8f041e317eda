package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codeleveling",
	Short: "Level up your coding skills from the terminal",
	Long:  "CodeLeveling is a terminal learning tracker: work through quests, answer questions, finish daily tasks and climb the leaderboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CODELEVELING_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Act as this user instead of the current one (overrides CODELEVELING_USER)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (overrides CODELEVELING_LOG_LEVEL)")

	rootCmd.AddCommand(questCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}
