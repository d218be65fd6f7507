package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/internal/day"
)

var listAllFlag bool

// listCmd shows the tasks visible on a day.
var listCmd = &cobra.Command{
	Use:   "list [date]",
	Short: "List tasks for a day",
	Long: `List the tasks visible on a day (default today): tasks completed
that day, tasks due that day, and, for today, open tasks with no due date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		tagStore, err := GetTagStore()
		if err != nil {
			return err
		}
		defer func() { _ = tagStore.Close() }()

		tasks, err := taskStore.List()
		if err != nil {
			return err
		}

		today := datekey.Today()
		if listAllFlag {
			day.SortForDisplay(tasks)
			for _, t := range tasks {
				fmt.Println(renderTaskLine(t, tagStore))
			}
			return nil
		}

		key := today
		if len(args) == 1 {
			key, err = datekey.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", args[0], err)
			}
		}

		visible := day.Filter(tasks, key, today)
		day.SortForDisplay(visible)

		fmt.Println(titleStyle.Render(key.String()))
		if len(visible) == 0 {
			fmt.Println(faintStyle.Render("nothing here"))
			return nil
		}
		for _, t := range visible {
			fmt.Println(renderTaskLine(t, tagStore))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAllFlag, "all", false, "list every task regardless of day")
	rootCmd.AddCommand(listCmd)
}
