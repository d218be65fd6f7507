package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var editTagsFlag []string

// editCmd rewrites a task's text and/or tags.
var editCmd = &cobra.Command{
	Use:   "edit [task-id] [new text...]",
	Short: "Edit a task's text or tags",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		id := ""
		if len(args) >= 1 {
			id = args[0]
		} else {
			selected, err := selectTaskInteractive(taskStore, nil, "Select a task to edit")
			if err != nil {
				return err
			}
			id = selected.ID
		}

		task, err := taskStore.Get(id)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("tags") {
			tagStore, err := GetTagStore()
			if err != nil {
				return err
			}
			defer func() { _ = tagStore.Close() }()

			ids, err := resolveTagNames(tagStore, editTagsFlag)
			if err != nil {
				return err
			}
			if task, err = taskStore.SetTags(id, ids); err != nil {
				return err
			}
		}

		text := strings.Join(args[min(1, len(args)):], " ")
		if strings.TrimSpace(text) == "" && !cmd.Flags().Changed("tags") {
			prompt := promptui.Prompt{
				Label:   "New text",
				Default: task.Text,
			}
			text, err = prompt.Run()
			if err != nil {
				return err // includes promptui.ErrInterrupt
			}
		}
		if strings.TrimSpace(text) != "" && text != task.Text {
			if task, err = taskStore.Edit(id, text); err != nil {
				return err
			}
		}

		fmt.Printf("Updated: %s\n", task.Text)
		return nil
	},
}

func init() {
	editCmd.Flags().StringSliceVar(&editTagsFlag, "tags", nil, "replace the task's tags (by name, created if missing)")
	rootCmd.AddCommand(editCmd)
}
