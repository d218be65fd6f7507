package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/internal/reminder"
	"github.com/mindflowapp/mindflow/internal/server"
)

var servePortFlag int

// serveCmd runs the local HTTP API for the web UI, with the reminder
// scanner alongside.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
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

		tagStore, err := GetTagStore()
		if err != nil {
			return err
		}
		defer func() { _ = tagStore.Close() }()

		config := GetConfig()
		port := config.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePortFlag
		}

		srv := server.New(port, taskStore, journalStore, tagStore, &config.LLM)

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)
		fmt.Printf("MindFlow API listening on http://localhost:%d\n", port)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		scanner := reminder.NewScanner(taskStore, journalStore, reminder.DesktopNotifier{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			interval := time.Duration(config.Remind.IntervalSeconds) * time.Second
			if err := scanner.Run(ctx, interval); err != nil && verbose {
				fmt.Fprintf(os.Stderr, "reminder scanner stopped: %v\n", err)
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errChan:
			cancel()
			wg.Wait()
			return err
		case <-sigChan:
			fmt.Println("\nShutting down...")
		}

		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		wg.Wait()
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePortFlag, "port", "p", 8787, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}
