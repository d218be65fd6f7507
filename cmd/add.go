package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/datekey"
)

var addDateFlag string

// addCmd adds a task for a given day (default today).
var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a task",
	Long: `Add a task to the list. With --date the task is due on that day;
without it the task belongs to today and follows today forward until done.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		today := datekey.Today()
		forDate, err := resolveDateFlag(addDateFlag, today)
		if err != nil {
			return err
		}

		task, err := taskStore.Add(strings.Join(args, " "), forDate, today)
		if err != nil {
			return err
		}

		fmt.Printf("Added: %s (%s)\n", task.Text, shortID(task.ID))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDateFlag, "date", "", "due date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(addCmd)
}

// resolveDateFlag parses an optional --date value, defaulting to today.
func resolveDateFlag(flag string, today datekey.Key) (datekey.Key, error) {
	if flag == "" {
		return today, nil
	}
	key, err := datekey.Parse(flag)
	if err != nil {
		return "", fmt.Errorf("invalid --date %q, expected YYYY-MM-DD: %w", flag, err)
	}
	return key, nil
}
