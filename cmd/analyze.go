package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/internal/day"
	"github.com/mindflowapp/mindflow/llm"
)

// analyzeCmd runs the AI daily reflection.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [date]",
	Short: "AI reflection on a day",
	Long: `Send a day's completed tasks, open tasks and journal entry to the
AI and print the reflection: a summary, a balance score, advice for tomorrow
and the mood trend.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := llm.NewProvider(&GetConfig().LLM)
		if err != nil {
			if errors.Is(err, llm.ErrMissingAPIKey) {
				return fmt.Errorf("AI reflection needs a credential: %w", err)
			}
			return err
		}

		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		journalStore, err := GetJournalStore()
		if err != nil {
			return err
		}
		defer func() { _ = journalStore.Close() }()

		today := datekey.Today()
		date := today
		if len(args) == 1 {
			date, err = datekey.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", args[0], err)
			}
		}

		tasks, err := taskStore.List()
		if err != nil {
			return err
		}
		entry, _, err := journalStore.Get(date)
		if err != nil {
			return err
		}

		completed, pending := day.Partition(day.Filter(tasks, date, today))

		ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
		defer cancel()
		analysis, err := provider.AnalyzeDay(ctx, completed, pending, entry.Content)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Reflection for %s", date)))
		fmt.Println(analysis.Summary)
		fmt.Printf("%s %s\n", faintStyle.Render("Score:"), scoreStyle.Render(fmt.Sprintf("%d/100", analysis.Score)))
		fmt.Printf("%s %s\n", faintStyle.Render("Advice:"), analysis.Advice)
		fmt.Printf("%s %s\n", faintStyle.Render("Mood trend:"), analysis.MoodTrend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
