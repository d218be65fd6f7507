package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var deleteForceFlag bool

// deleteCmd removes a task permanently.
var deleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Long:  `Delete a task permanently. Asks for confirmation unless --force is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		id := ""
		text := ""
		if len(args) == 1 {
			id = args[0]
			task, err := taskStore.Get(id)
			if err != nil {
				return err
			}
			text = task.Text
		} else {
			selected, err := selectTaskInteractive(taskStore, nil, "Select a task to delete")
			if err != nil {
				return err
			}
			id = selected.ID
			text = selected.Text
		}

		if !deleteForceFlag {
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Delete %q", text),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := taskStore.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted: %s\n", text)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForceFlag, "force", "f", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)
}
