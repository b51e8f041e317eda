package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codeleveling/internal/leaderboard"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			entries, err := e.ranker.Rank(ctx, limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%4s  %-32s  %8s  %8s\n", "Rank", "User", "XP", "Score")
			printRule(w, 58)
			for _, en := range entries {
				fmt.Fprintf(w, "%4d  %-32s  %8d  %8.1f\n", en.Rank, en.Username, en.TotalXP, en.Score)
			}
			return nil
		})
	},
}

func init() {
	leaderboardCmd.Flags().Int("limit", leaderboard.DefaultLimit, "Number of users to show")
}
