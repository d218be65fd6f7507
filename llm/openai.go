package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mindflowapp/mindflow/models"
)

const openAIResponsesURL = "https://api.openai.com/v1/responses"

// OpenAIProvider implements the Provider interface against the OpenAI
// Responses API with strict JSON schemas.
type OpenAIProvider struct {
	apiKey  string
	model   string
	timeout time.Duration
	debug   bool
}

// NewOpenAIProvider creates a new OpenAIProvider with options.
func NewOpenAIProvider(apiKey, model string, timeout time.Duration, debug bool) *OpenAIProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIProvider{apiKey: apiKey, model: model, timeout: timeout, debug: debug}
}

// buildAnalysisSchema returns a JSON Schema for the daily reflection object.
func buildAnalysisSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"summary":   map[string]interface{}{"type": "string"},
			"score":     map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
			"advice":    map[string]interface{}{"type": "string"},
			"moodTrend": map[string]interface{}{"type": "string"},
		},
		"required": []string{"summary", "score", "advice", "moodTrend"},
	}
}

// buildSubtasksSchema returns a JSON Schema for an object with a required
// 'subtasks' string array. The Responses API requires a top-level object.
func buildSubtasksSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"subtasks": map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "string"},
				"minItems": 3,
				"maxItems": 5,
			},
		},
		"required": []string{"subtasks"},
	}
}

// AnalyzeDay for OpenAIProvider.
func (p *OpenAIProvider) AnalyzeDay(ctx context.Context, completed, pending []string, journalContent string) (models.DailyAnalysis, error) {
	if p.apiKey == "" {
		return models.DailyAnalysis{}, fmt.Errorf("OpenAI API key is not set")
	}

	content, err := p.callResponsesAPIWithSchema(ctx, buildAnalysisPrompt(completed, pending, journalContent), "daily_analysis", buildAnalysisSchema())
	if err != nil {
		return models.DailyAnalysis{}, err
	}

	var analysis models.DailyAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return models.DailyAnalysis{}, fmt.Errorf("failed to parse analysis JSON from AI response: %w", err)
	}
	return analysis, nil
}

// BreakdownTask for OpenAIProvider.
func (p *OpenAIProvider) BreakdownTask(ctx context.Context, taskText string) ([]string, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is not set")
	}

	content, err := p.callResponsesAPIWithSchema(ctx, buildBreakdownPrompt(taskText), "subtask_breakdown", buildSubtasksSchema())
	if err != nil {
		return nil, err
	}

	var subtaskWrapper struct {
		Subtasks []string `json:"subtasks"`
	}
	if err := json.Unmarshal([]byte(content), &subtaskWrapper); err != nil {
		return nil, fmt.Errorf("failed to parse subtasks JSON from AI response: %w", err)
	}
	return subtaskWrapper.Subtasks, nil
}

func (p *OpenAIProvider) callResponsesAPIWithSchema(ctx context.Context, userMessage, schemaName string, schema map[string]interface{}) (string, error) {
	payload := map[string]interface{}{
		"model": p.model,
		"input": []map[string]interface{}{
			{
				"role":    "user",
				"content": []map[string]interface{}{{"type": "input_text", "text": userMessage}},
			},
		},
		"text": map[string]interface{}{
			"format": map[string]interface{}{
				"type":   "json_schema",
				"name":   schemaName,
				"schema": schema,
				"strict": true,
			},
		},
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", openAIResponsesURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create responses request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: p.timeout}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "context deadline exceeded") || strings.Contains(err.Error(), "Client.Timeout exceeded") {
			return "", fmt.Errorf("OpenAI API request timed out after %v", p.timeout)
		}
		return "", fmt.Errorf("failed to call responses API: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if p.debug {
		fmt.Printf("[LLM] OpenAI Responses %s in %v (status %s, bytes %d)\n", p.model, time.Since(start), resp.Status, len(raw))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error (%s): %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	return extractOutputText(raw)
}

// extractOutputText pulls the assembled text out of a Responses API payload.
// It prefers the convenience 'output_text' field and falls back to walking
// the output message blocks.
func extractOutputText(raw []byte) (string, error) {
	var generic struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Type    string `json:"type"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("failed to decode responses payload: %w", err)
	}
	if strings.TrimSpace(generic.OutputText) != "" {
		return generic.OutputText, nil
	}
	var builder strings.Builder
	for _, out := range generic.Output {
		if out.Type != "message" {
			continue
		}
		for _, c := range out.Content {
			if c.Type == "output_text" {
				builder.WriteString(c.Text)
			}
		}
	}
	if builder.Len() == 0 {
		return "", fmt.Errorf("no output text in OpenAI response")
	}
	return builder.String(), nil
}
