package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/codeleveling/internal/store"
)

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Browse and play quests",
}

var questListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quests with your progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u store.User) error {
			views, err := e.catalog.ListQuests(ctx, u.ID)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%4s  %-32s  %-24s  %4s  %-10s  %4s\n",
				"ID", "Title", "Topic", "Diff", "Status", "Best")
			printRule(w, 88)
			for _, v := range views {
				fmt.Fprintf(w, "%4d  %-32s  %-24s  %4d  %-10s  %4d\n",
					v.ID, truncate(v.Title, 32), truncate(v.Topic, 24),
					v.Difficulty, v.Status, v.BestScore)
			}
			fmt.Fprintf(w, "\n%d quests\n", len(views))
			return nil
		})
	},
}

var questLessonCmd = &cobra.Command{
	Use:   "lesson <quest-id>",
	Short: "Show a quest's lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questID, err := parseID("quest", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			body, err := e.catalog.Lesson(ctx, questID)
			if err != nil {
				return err
			}
			if body == "" {
				body = "No lesson for this quest."
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		})
	},
}

var questNextCmd = &cobra.Command{
	Use:   "next <quest-id>",
	Short: "Show the next question you have not answered correctly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questID, err := parseID("quest", args[0])
		if err != nil {
			return err
		}
		return withUser(cmd, func(ctx context.Context, e *env, u store.User) error {
			q, err := e.catalog.NextQuestion(ctx, u.ID, questID)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if q == nil {
				fmt.Fprintln(w, "All questions answered.")
				return nil
			}
			fmt.Fprintf(w, "Question %d (%d XP)\n%s\n\n", q.ID, q.XPValue, q.Prompt)
			for i, c := range q.Choices {
				fmt.Fprintf(w, "  %d) %s\n", i, c)
			}
			return nil
		})
	},
}

var questAnswerCmd = &cobra.Command{
	Use:   "answer <question-id> <choice-index>",
	Short: "Answer a question",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionID, err := parseID("question", args[0])
		if err != nil {
			return err
		}
		choice, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid choice index %q", args[1])
		}
		return withUser(cmd, func(ctx context.Context, e *env, u store.User) error {
			res, err := e.engine.SubmitAnswer(ctx, u.ID, questionID, choice)
			printEvents(cmd.OutOrStdout(), res.Events)
			if err != nil {
				return err
			}
			if res.XPAwarded > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "+%d XP, level %d, %d XP total\n",
					res.XPAwarded, res.Stats.Level, res.Stats.TotalXP)
			}
			return nil
		})
	},
}

var questCompleteCmd = &cobra.Command{
	Use:   "complete <quest-id>",
	Short: "Mark a quest completed and award XP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questID, err := parseID("quest", args[0])
		if err != nil {
			return err
		}
		xp, _ := cmd.Flags().GetInt("xp")
		score, _ := cmd.Flags().GetInt("score")
		if xp < 0 {
			return fmt.Errorf("--xp must not be negative")
		}
		return withUser(cmd, func(ctx context.Context, e *env, u store.User) error {
			res, err := e.engine.CompleteQuest(ctx, u.ID, questID, xp, score)
			printEvents(cmd.OutOrStdout(), res.Events)
			if err != nil {
				return err
			}
			if res.UnlockedQuestID != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Quest %d unlocked\n", res.UnlockedQuestID)
			}
			return nil
		})
	},
}

func init() {
	questCompleteCmd.Flags().Int("xp", 0, "XP to award")
	questCompleteCmd.Flags().Int("score", 0, "Score to record (best score is kept)")

	questCmd.AddCommand(questListCmd)
	questCmd.AddCommand(questLessonCmd)
	questCmd.AddCommand(questNextCmd)
	questCmd.AddCommand(questAnswerCmd)
	questCmd.AddCommand(questCompleteCmd)
}
