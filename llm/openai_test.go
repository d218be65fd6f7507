package llm

import (
	"strings"
	"testing"
)

func TestExtractOutputTextPrefersConvenienceField(t *testing.T) {
	raw := []byte(`{"output_text": "{\"summary\":\"ok\"}"}`)
	got, err := extractOutputText(raw)
	if err != nil {
		t.Fatalf("extractOutputText: %v", err)
	}
	if got != `{"summary":"ok"}` {
		t.Errorf("got %q", got)
	}
}

func TestExtractOutputTextWalksMessageBlocks(t *testing.T) {
	raw := []byte(`{
		"output": [
			{"type": "reasoning", "content": []},
			{"type": "message", "content": [
				{"type": "output_text", "text": "part one "},
				{"type": "output_text", "text": "part two"}
			]}
		]
	}`)
	got, err := extractOutputText(raw)
	if err != nil {
		t.Fatalf("extractOutputText: %v", err)
	}
	if got != "part one part two" {
		t.Errorf("got %q", got)
	}
}

func TestExtractOutputTextEmptyPayload(t *testing.T) {
	if _, err := extractOutputText([]byte(`{"output": []}`)); err == nil {
		t.Error("empty payload should be an error")
	}
	if _, err := extractOutputText([]byte(`not json`)); err == nil {
		t.Error("malformed payload should be an error")
	}
}

func TestBuildAnalysisPromptSpellsOutEmptySections(t *testing.T) {
	prompt := buildAnalysisPrompt(nil, nil, "")
	if !strings.Contains(prompt, "Completed Tasks: None") {
		t.Error("empty completed list should read None")
	}
	if !strings.Contains(prompt, "Pending Tasks: None") {
		t.Error("empty pending list should read None")
	}
	if !strings.Contains(prompt, "No entry provided") {
		t.Error("empty journal should read No entry provided")
	}
	if !strings.Contains(prompt, "Chinese (Simplified)") {
		t.Error("prompt should pin the response language")
	}
}

func TestBuildAnalysisPromptJoinsTasks(t *testing.T) {
	prompt := buildAnalysisPrompt([]string{"a", "b"}, []string{"c"}, "wrote some code")
	if !strings.Contains(prompt, "Completed Tasks: a, b") {
		t.Errorf("prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "Pending Tasks: c") {
		t.Errorf("prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "wrote some code") {
		t.Errorf("prompt: %s", prompt)
	}
}

func TestBuildBreakdownPromptQuotesTask(t *testing.T) {
	prompt := buildBreakdownPrompt(`plan the "big" launch`)
	if !strings.Contains(prompt, `plan the \"big\" launch`) {
		t.Errorf("task text should be quoted: %s", prompt)
	}
	if !strings.Contains(prompt, "3-5") {
		t.Error("prompt should bound the subtask count")
	}
}
