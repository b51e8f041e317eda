package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show XP, level and quest progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u store.User) error {
			stats, err := e.engine.Stats(ctx, u.ID)
			if err != nil {
				return err
			}
			views, err := e.catalog.ListQuests(ctx, u.ID)
			if err != nil {
				return err
			}
			completed := 0
			for _, v := range views {
				if v.Status == store.StatusCompleted {
					completed++
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "User:      %s\n", u.Username)
			fmt.Fprintf(w, "Level:     %d\n", stats.Level)
			fmt.Fprintf(w, "XP:        %d (%d/%d into level)\n",
				stats.TotalXP, progress.XPIntoLevel(stats.TotalXP), progress.XPPerLevel)
			fmt.Fprintf(w, "Quests:    %d/%d completed\n", completed, len(views))
			if stats.LastActive != nil {
				fmt.Fprintf(w, "Active:    %s\n", stats.LastActive.Local().Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}
