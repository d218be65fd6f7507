package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/llm"
)

var breakdownDateFlag string

// breakdownCmd asks the AI to split a task into sub-tasks and adds them.
var breakdownCmd = &cobra.Command{
	Use:   "breakdown <text>...",
	Short: "Split a complex task into sub-tasks with AI",
	Long: `Ask the AI to break a complex task into 3-5 smaller ones and add
them for the day. When the AI is unavailable or returns nothing usable the
original text is added as a single task, so the command never loses input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		today := datekey.Today()
		forDate, err := resolveDateFlag(breakdownDateFlag, today)
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")

		var subtasks []string
		provider, err := llm.NewProvider(&GetConfig().LLM)
		if err != nil {
			if verbose {
				fmt.Println(faintStyle.Render(fmt.Sprintf("AI unavailable: %v", err)))
			}
		} else {
			ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
			defer cancel()
			if result, err := provider.BreakdownTask(ctx, text); err == nil {
				subtasks = result
			} else if verbose {
				fmt.Println(faintStyle.Render(fmt.Sprintf("breakdown failed: %v", err)))
			}
		}
		if len(subtasks) == 0 {
			subtasks = []string{text}
		}

		added, err := taskStore.AddAll(subtasks, forDate, today)
		if err != nil {
			return err
		}
		for _, t := range added {
			fmt.Printf("Added: %s (%s)\n", t.Text, shortID(t.ID))
		}
		return nil
	},
}

func init() {
	breakdownCmd.Flags().StringVar(&breakdownDateFlag, "date", "", "due date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(breakdownCmd)
}
