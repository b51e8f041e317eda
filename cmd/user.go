package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codeleveling/internal/notify"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			current, err := e.users.CurrentName(ctx)
			if err != nil {
				return err
			}
			list, err := e.users.List(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, u := range list {
				marker := " "
				if u.Username == current {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %s\n", marker, u.Username)
			}
			return nil
		})
	},
}

var userSwitchCmd = &cobra.Command{
	Use:   "switch <username>",
	Short: "Switch to a user, creating it if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			_, ev, err := e.users.Switch(ctx, args[0])
			printEvents(cmd.OutOrStdout(), []notify.Event{ev})
			return err
		})
	},
}

var userCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			u, err := e.currentUser(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.Username)
			return nil
		})
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userSwitchCmd)
	userCmd.AddCommand(userCurrentCmd)
}
