package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/reminder"
	"github.com/mindflowapp/mindflow/models"
)

var remindIntervalFlag int

// remindCmd runs the reminder scanner in the foreground.
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Watch for due reminders",
	Long: `Scan for due task reminders and the journal writing nudge, firing
desktop notifications. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		interval := time.Duration(GetConfig().Remind.IntervalSeconds) * time.Second
		if cmd.Flags().Changed("interval") {
			interval = time.Duration(remindIntervalFlag) * time.Second
		}

		fmt.Printf("Watching for reminders every %s. Ctrl-C to stop.\n", interval)
		scanner := reminder.NewScanner(taskStore, journalStore, reminder.DesktopNotifier{})
		return scanner.Run(cmd.Context(), interval)
	},
}

// remindSetCmd attaches a one-shot reminder to a task.
var remindSetCmd = &cobra.Command{
	Use:   "set [task-id] <time>",
	Short: "Set a task reminder",
	Long: `Set a one-shot reminder on a task. Time is "HH:mm" for today or
"YYYY-MM-DD HH:mm" for another day.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		id := ""
		when := args[len(args)-1]
		if len(args) == 2 {
			id = args[0]
		} else {
			selected, err := selectTaskInteractive(taskStore, func(t models.Task) bool {
				return !t.Completed
			}, "Select a task to remind about")
			if err != nil {
				return err
			}
			id = selected.ID
		}

		at, err := parseReminderTime(when)
		if err != nil {
			return err
		}
		ms := at.UnixMilli()
		task, err := taskStore.SetReminder(id, &ms)
		if err != nil {
			return err
		}
		fmt.Printf("Reminder for %q at %s\n", task.Text, at.Format("2006-01-02 15:04"))
		return nil
	},
}

// remindClearCmd removes a task's reminder.
var remindClearCmd = &cobra.Command{
	Use:   "clear <task-id>",
	Short: "Clear a task reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetTaskStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		task, err := taskStore.SetReminder(args[0], nil)
		if err != nil {
			return err
		}
		fmt.Printf("Cleared reminder for %q\n", task.Text)
		return nil
	},
}

func init() {
	remindCmd.Flags().IntVar(&remindIntervalFlag, "interval", 60, "scan interval in seconds")
	remindCmd.AddCommand(remindSetCmd)
	remindCmd.AddCommand(remindClearCmd)
	rootCmd.AddCommand(remindCmd)
}

// parseReminderTime accepts "HH:mm" (today) or "YYYY-MM-DD HH:mm".
func parseReminderTime(s string) (time.Time, error) {
	now := time.Now()
	if t, err := time.ParseInLocation("15:04", s, time.Local); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected \"HH:mm\" or \"YYYY-MM-DD HH:mm\"", s)
}
