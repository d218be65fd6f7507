package llm

import (
	"fmt"
	"strings"
)

// buildAnalysisPrompt assembles the daily reflection prompt. Empty sections
// are spelled out as "None" so the model does not invent content for them.
func buildAnalysisPrompt(completed, pending []string, journalContent string) string {
	completedText := strings.Join(completed, ", ")
	if completedText == "" {
		completedText = "None"
	}
	pendingText := strings.Join(pending, ", ")
	if pendingText == "" {
		pendingText = "None"
	}
	if journalContent == "" {
		journalContent = "No entry provided"
	}

	return fmt.Sprintf(`Analyze my day based on my to-do list and diary entry.

Completed Tasks: %s
Pending Tasks: %s
Diary Entry: %s

Provide a JSON response with:
1. A short summary of the day (max 50 words).
2. A productivity/mood balance score (0-100).
3. One actionable piece of advice for tomorrow.
4. A one-word description of the mood trend.
Language: Chinese (Simplified).`, completedText, pendingText, journalContent)
}

// buildBreakdownPrompt assembles the task breakdown prompt.
func buildBreakdownPrompt(taskText string) string {
	return fmt.Sprintf(`Break down the following complex task into 3-5 smaller, actionable sub-tasks.
Task: %q
Return ONLY a JSON array of strings. Language: Chinese (Simplified).`, taskText)
}
