package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/models"
)

var (
	journalContentFlag      string
	journalMoodFlag         string
	journalTagsFlag         []string
	journalRemindFlag       bool
	journalReminderTimeFlag string
)

// journalCmd groups the journal subcommands.
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show or write the daily journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return journalShowCmd.RunE(cmd, args)
	},
}

// journalShowCmd prints a day's entry.
var journalShowCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show a day's journal entry",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		journalStore, err := GetJournalStore()
		if err != nil {
			return err
		}
		defer func() { _ = journalStore.Close() }()

		date := datekey.Today()
		if len(args) == 1 {
			date, err = datekey.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", args[0], err)
			}
		}

		entry, stored, err := journalStore.Get(date)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", titleStyle.Render(date.String()), models.MoodEmojis[entry.Mood])
		if !stored {
			fmt.Println(faintStyle.Render("no entry yet"))
			return nil
		}
		if entry.Content == "" {
			fmt.Println(faintStyle.Render("(empty)"))
		} else {
			fmt.Println(entry.Content)
		}
		if entry.ReminderEnabled {
			fmt.Println(faintStyle.Render("reminder at " + entry.ReminderTime))
		}
		return nil
	},
}

// journalWriteCmd creates or updates a day's entry.
var journalWriteCmd = &cobra.Command{
	Use:   "write [date]",
	Short: "Write a day's journal entry",
	Long: `Write the journal for a day (default today). Without --content the
text is prompted for. A day has at most one entry; writing again replaces
its content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		journalStore, err := GetJournalStore()
		if err != nil {
			return err
		}
		defer func() { _ = journalStore.Close() }()

		date := datekey.Today()
		if len(args) == 1 {
			date, err = datekey.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", args[0], err)
			}
		}

		entry, _, err := journalStore.Get(date)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("content") {
			entry.Content = journalContentFlag
		} else {
			prompt := promptui.Prompt{
				Label:   "Entry",
				Default: entry.Content,
			}
			content, err := prompt.Run()
			if err != nil {
				return err // includes promptui.ErrInterrupt
			}
			entry.Content = content
		}

		if cmd.Flags().Changed("mood") {
			mood := models.Mood(journalMoodFlag)
			if !mood.Valid() {
				return fmt.Errorf("invalid mood %q, expected one of %v", journalMoodFlag, models.Moods)
			}
			entry.Mood = mood
		}
		if cmd.Flags().Changed("tags") {
			tagStore, err := GetTagStore()
			if err != nil {
				return err
			}
			defer func() { _ = tagStore.Close() }()
			if entry.Tags, err = resolveTagNames(tagStore, journalTagsFlag); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("remind") {
			entry.ReminderEnabled = journalRemindFlag
		}
		if cmd.Flags().Changed("remind-at") {
			entry.ReminderTime = journalReminderTimeFlag
		}

		saved, err := journalStore.Save(date, entry)
		if err != nil {
			return err
		}
		fmt.Printf("Saved journal for %s %s\n", saved.Date, models.MoodEmojis[saved.Mood])
		return nil
	},
}

func init() {
	journalWriteCmd.Flags().StringVar(&journalContentFlag, "content", "", "entry text")
	journalWriteCmd.Flags().StringVar(&journalMoodFlag, "mood", "", "mood (happy, neutral, sad, anxious, excited)")
	journalWriteCmd.Flags().StringSliceVar(&journalTagsFlag, "tags", nil, "entry tags (by name, created if missing)")
	journalWriteCmd.Flags().BoolVar(&journalRemindFlag, "remind", false, "enable the evening writing reminder")
	journalWriteCmd.Flags().StringVar(&journalReminderTimeFlag, "remind-at", models.DefaultReminderTime, "reminder time (HH:mm)")

	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalWriteCmd)
	rootCmd.AddCommand(journalCmd)
}
