package llm

import (
	"context"
	"errors"

	"github.com/mindflowapp/mindflow/models"
)

// ErrMissingAPIKey is returned by the factory when the selected provider has
// no credential. Callers surface it with remediation (which env var to set)
// rather than attempting a request that can only fail.
var ErrMissingAPIKey = errors.New("missing API key")

// Provider defines the interface for the two AI workflows: the end-of-day
// reflection and the task breakdown.
type Provider interface {
	// AnalyzeDay takes the day's completed and pending task texts plus the
	// journal content and returns a structured reflection. The response is
	// written in Simplified Chinese.
	AnalyzeDay(ctx context.Context, completed, pending []string, journalContent string) (models.DailyAnalysis, error)

	// BreakdownTask splits a complex task into 3-5 smaller actionable
	// sub-task texts. Callers are expected to treat an error as "no
	// breakdown" and fall back to adding the original text verbatim.
	BreakdownTask(ctx context.Context, taskText string) ([]string, error)
}
