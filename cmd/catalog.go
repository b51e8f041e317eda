package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codeleveling/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and import quest catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog document without importing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: version %s, %d quests, %d questions, %d daily tasks\n",
			doc.Version, len(doc.Quests), doc.QuestionCount(), len(doc.DailyTasks))
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a catalog document, replacing matching quests and tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			res, err := e.catalog.Import(ctx, doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported version %s: %d quests, %d questions, %d daily tasks (%d users updated)\n",
				res.Version, res.Quests, res.Questions, res.Tasks, res.Users)
			return nil
		})
	},
}

var catalogVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the catalog version stored in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			v, err := e.catalog.Version(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogVersionCmd)
}
