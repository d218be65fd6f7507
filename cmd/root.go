package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mindflowapp/mindflow/models"
	"github.com/mindflowapp/mindflow/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mindflow",
	Short: "MindFlow keeps your daily tasks, journal and reflections together.",
	Long: `MindFlow is a daily companion for the command line.
It keeps a date-keyed task list and mood journal, renders a monthly
overview, fires reminders, and asks an AI for an end-of-day reflection.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.mindflow.yaml or ./.mindflow.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// storeConfig builds the Initialize map for one blob file.
func storeConfig(fileName string) map[string]string {
	config := GetConfig()
	return map[string]string{
		"dataFile":       filepath.Join(config.Project.RootDir, fileName),
		"dataFileFormat": config.Data.Format,
	}
}

// GetTaskStore initializes and returns the task store.
func GetTaskStore() (store.TaskStore, error) {
	s := store.NewFileTaskStore()
	if err := s.Initialize(storeConfig(GetConfig().Data.TasksFile)); err != nil {
		return nil, fmt.Errorf("failed to initialize task store: %w", err)
	}
	return s, nil
}

// GetJournalStore initializes and returns the journal store.
func GetJournalStore() (store.JournalStore, error) {
	s := store.NewFileJournalStore()
	if err := s.Initialize(storeConfig(GetConfig().Data.JournalFile)); err != nil {
		return nil, fmt.Errorf("failed to initialize journal store: %w", err)
	}
	return s, nil
}

// GetTagStore initializes and returns the tag registry.
func GetTagStore() (store.TagStore, error) {
	s := store.NewFileTagStore()
	if err := s.Initialize(storeConfig(GetConfig().Data.TagsFile)); err != nil {
		return nil, fmt.Errorf("failed to initialize tag store: %w", err)
	}
	return s, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be filtered using the provided filter function.
func selectTaskInteractive(taskStore store.TaskStore, filterFn func(models.Task) bool, label string) (models.Task, error) {
	all, err := taskStore.List()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}

	var tasks []models.Task
	for _, t := range all {
		if filterFn == nil || filterFn(t) {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Text | cyan }} (ID: {{ .ID }})`,
		Inactive: `  {{ .Text | faint }} (ID: {{ .ID }})`,
		Selected: `{{ "✔" | green }} {{ .Text | faint }} (ID: {{ .ID }})`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		text := strings.ToLower(task.Text)
		input = strings.ToLower(input)
		return strings.Contains(text, input) || strings.Contains(task.ID, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // Return error as is (includes promptui.ErrInterrupt)
	}

	return tasks[i], nil
}
