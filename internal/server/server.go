// Package server exposes the local HTTP API consumed by the web UI.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/internal/day"
	"github.com/mindflowapp/mindflow/llm"
	"github.com/mindflowapp/mindflow/store"
	"github.com/mindflowapp/mindflow/types"
)

type Server struct {
	tasks   store.TaskStore
	journal store.JournalStore
	tags    store.TagStore
	llmCfg  *types.LLMConfig
	port    int
	server  *http.Server
}

func New(port int, tasks store.TaskStore, journal store.JournalStore, tags store.TagStore, llmCfg *types.LLMConfig) *Server {
	s := &Server{
		tasks:   tasks,
		journal: journal,
		tags:    tags,
		llmCfg:  llmCfg,
		port:    port,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleAddTask)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("GET /api/journal/{date}", s.handleGetJournal)
	mux.HandleFunc("PUT /api/journal/{date}", s.handleSaveJournal)
	mux.HandleFunc("GET /api/tags", s.handleListTags)
	mux.HandleFunc("POST /api/tags", s.handleCreateTag)
	mux.HandleFunc("GET /api/calendar", s.handleCalendar)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/breakdown", s.handleBreakdown)
	mux.HandleFunc("OPTIONS /api/", s.handleCORS)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsMiddleware(mux),
	}

	return s
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured routing stack for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// handleListTasks returns tasks for one day (?date=, default today) in
// display order, or the whole collection with ?all=1.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("all") != "" {
		writeAPIJSON(w, tasks)
		return
	}

	today := datekey.Today()
	key := today
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := datekey.Parse(q)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		key = parsed
	}

	visible := day.Filter(tasks, key, today)
	day.SortForDisplay(visible)
	writeAPIJSON(w, visible)
}

// handleAddTask creates a task for the given day (default today).
func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	today := datekey.Today()
	forDate := today
	if req.Date != "" {
		parsed, err := datekey.Parse(req.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		forDate = parsed
	}

	task, err := s.tasks.Add(req.Text, forDate, today)
	if err != nil {
		if errors.Is(err, store.ErrBlankText) {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSONStatus(w, http.StatusCreated, task)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Toggle(r.PathValue("id"), datekey.Today())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSON(w, task)
}

// handleUpdateTask applies a partial update: text, tags, or the reminder.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text          *string   `json:"text"`
		Tags          *[]string `json:"tags"`
		ReminderTime  *int64    `json:"reminderTime"`
		ClearReminder bool      `json:"clearReminder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	task, err := s.tasks.Get(id)
	if err == nil && req.Text != nil {
		task, err = s.tasks.Edit(id, *req.Text)
	}
	if err == nil && req.Tags != nil {
		task, err = s.tasks.SetTags(id, *req.Tags)
	}
	if err == nil && req.ClearReminder {
		task, err = s.tasks.SetReminder(id, nil)
	} else if err == nil && req.ReminderTime != nil {
		task, err = s.tasks.SetReminder(id, req.ReminderTime)
	}

	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			http.Error(w, "task not found", http.StatusNotFound)
		case errors.Is(err, store.ErrBlankText):
			http.Error(w, "text is required", http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeAPIJSON(w, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetJournal returns the stored entry for the date, or an unsaved
// default. The 'stored' flag tells the UI whether it is editing or creating.
func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	date, err := datekey.Parse(r.PathValue("date"))
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	entry, stored, err := s.journal.Get(date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSON(w, map[string]any{
		"entry":  entry,
		"stored": stored,
	})
}

func (s *Server) handleSaveJournal(w http.ResponseWriter, r *http.Request) {
	date, err := datekey.Parse(r.PathValue("date"))
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	// Partial updates merge over the current (or default) entry.
	entry, _, err := s.journal.Get(date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := s.journal.Save(date, entry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSON(w, saved)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tags.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSON(w, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tag, err := s.tags.Create(req.Name)
	if err != nil {
		if errors.Is(err, store.ErrBlankText) {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSONStatus(w, http.StatusCreated, tag)
}

// handleCalendar returns a per-day summary for the month (?month=YYYY-MM,
// default the current month).
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	today := datekey.Today()
	ref := today
	if q := r.URL.Query().Get("month"); q != "" {
		parsed, err := datekey.Parse(q + "-01")
		if err != nil {
			http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		ref = parsed
	}

	tasks, err := s.tasks.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	entries, err := s.journal.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summaries, err := day.MonthSummaries(tasks, entries, ref, today)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSON(w, summaries)
}

// handleAnalyze runs the AI daily reflection for one day (default today).
// A missing credential is a 503 with remediation; a remote failure is a 502.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Date = ""
	}

	today := datekey.Today()
	date := today
	if req.Date != "" {
		parsed, err := datekey.Parse(req.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	provider, err := llm.NewProvider(s.llmCfg)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	tasks, err := s.tasks.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	entry, _, err := s.journal.Get(date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	completed, pending := day.Partition(day.Filter(tasks, date, today))
	analysis, err := provider.AnalyzeDay(r.Context(), completed, pending, entry.Content)
	if err != nil {
		http.Error(w, fmt.Sprintf("analysis failed: %v", err), http.StatusBadGateway)
		return
	}
	writeAPIJSON(w, analysis)
}

// handleBreakdown splits a task text into sub-tasks and adds them. When the
// AI is unavailable or returns nothing usable, the original text is added
// verbatim, so the request always produces at least one task.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	today := datekey.Today()
	forDate := today
	if req.Date != "" {
		parsed, err := datekey.Parse(req.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		forDate = parsed
	}

	var subtasks []string
	if provider, err := llm.NewProvider(s.llmCfg); err == nil {
		if result, err := provider.BreakdownTask(r.Context(), req.Text); err == nil {
			subtasks = result
		}
	}
	if len(subtasks) == 0 {
		subtasks = []string{req.Text}
	}

	added, err := s.tasks.AddAll(subtasks, forDate, today)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSONStatus(w, http.StatusCreated, added)
}

func (s *Server) handleCORS(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeAPIJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeAPIJSONStatus sets the status code after the Content-Type header so
// the header survives.
func writeAPIJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
