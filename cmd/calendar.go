package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/internal/day"
)

// calendarCmd renders the monthly overview.
var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Monthly overview of tasks and moods",
	Long: `Render a month grid. Each day shows completed/pending task counts
and the mood recorded in that day's journal entry.`,
	Args: cobra.MaximumNArgs(1),
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

		today := datekey.Today()
		ref := today
		if len(args) == 1 {
			ref, err = datekey.Parse(args[0] + "-01")
			if err != nil {
				return fmt.Errorf("invalid month %q, expected YYYY-MM: %w", args[0], err)
			}
		}

		tasks, err := taskStore.List()
		if err != nil {
			return err
		}
		entries, err := journalStore.List()
		if err != nil {
			return err
		}

		summaries, err := day.MonthSummaries(tasks, entries, ref, today)
		if err != nil {
			return err
		}

		refTime, err := ref.Time()
		if err != nil {
			return err
		}
		printMonth(refTime, today, summaries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

const calendarCellWidth = 10

// printMonth renders the grid, Monday first.
func printMonth(ref time.Time, today datekey.Key, summaries map[datekey.Key]day.Summary) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	fmt.Println(titleStyle.Render(first.Format("January 2006")))
	for _, name := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		fmt.Print(faintStyle.Render(pad(name, calendarCellWidth)))
	}
	fmt.Println()

	// Leading blanks up to the first weekday.
	offset := (int(first.Weekday()) + 6) % 7
	fmt.Print(strings.Repeat(" ", offset*calendarCellWidth))

	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := datekey.FromTime(d)
		cell := formatCell(d.Day(), summaries[key])
		if key == today {
			cell = todayCellStyle.Render(cell)
		}
		fmt.Print(pad(cell, calendarCellWidth))
		if d.Weekday() == time.Sunday {
			fmt.Println()
		}
	}
	fmt.Println()
}

func formatCell(dayNum int, s day.Summary) string {
	cell := fmt.Sprintf("%2d", dayNum)
	if s.Completed > 0 || s.Pending > 0 {
		cell += fmt.Sprintf(" %d/%d", s.Completed, s.Completed+s.Pending)
	}
	if s.MoodEmoji != "" {
		cell += " " + s.MoodEmoji
	}
	return cell
}

// pad right-pads without counting ANSI escapes, which lipgloss may add.
func pad(s string, width int) string {
	if visible := lipgloss.Width(s); visible < width {
		return s + strings.Repeat(" ", width-visible)
	}
	return s
}
