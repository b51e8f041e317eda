package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codeleveling/internal/store"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily tasks",
}

var dailyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u store.User) error {
			tasks, err := e.daily.ListTasks(ctx, u.ID)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Daily tasks for %s (%s)\n\n", u.Username, e.daily.Today())
			fmt.Fprintf(w, "%4s  %-40s  %5s  %s\n", "ID", "Task", "XP", "Done")
			printRule(w, 60)
			for _, t := range tasks {
				done := " "
				if t.CompletedToday {
					done = "✓"
				}
				fmt.Fprintf(w, "%4d  %-40s  %5d  %s\n", t.ID, truncate(t.Title, 40), t.XPValue, done)
			}
			return nil
		})
	},
}

var dailyCompleteCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Complete a daily task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID("task", args[0])
		if err != nil {
			return err
		}
		return withUser(cmd, func(ctx context.Context, e *env, u store.User) error {
			res, err := e.daily.CompleteTask(ctx, u.ID, taskID)
			printEvents(cmd.OutOrStdout(), res.Events)
			if err != nil {
				return err
			}
			if res.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "+%d XP, level %d, %d XP total\n",
					res.XPAwarded, res.Stats.Level, res.Stats.TotalXP)
			}
			return nil
		})
	},
}

func init() {
	dailyCmd.AddCommand(dailyListCmd)
	dailyCmd.AddCommand(dailyCompleteCmd)
}
