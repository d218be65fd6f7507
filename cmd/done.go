package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/models"
)

// doneCmd toggles a task's completion.
var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task's completion",
	Long: `Mark a task done, or un-done if it already is. Completing a task
credits today, whatever day the task was due. Without an id an interactive
picker over open tasks is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		id := ""
		if len(args) == 1 {
			id = args[0]
		} else {
			selected, err := selectTaskInteractive(taskStore, func(t models.Task) bool {
				return !t.Completed
			}, "Select a task to complete")
			if err != nil {
				return err
			}
			id = selected.ID
		}

		task, err := taskStore.Toggle(id, datekey.Today())
		if err != nil {
			return err
		}

		if task.Completed {
			fmt.Printf("Done: %s\n", task.Text)
		} else {
			fmt.Printf("Reopened: %s\n", task.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
