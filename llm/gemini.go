package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/mindflowapp/mindflow/models"
)

// GeminiProvider implements the Provider interface against the Gemini API
// using schema-constrained JSON output.
type GeminiProvider struct {
	apiKey string
	model  string
	debug  bool
}

// NewGeminiProvider creates a new GeminiProvider.
func NewGeminiProvider(apiKey, model string, debug bool) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, model: model, debug: debug}
}

func (p *GeminiProvider) newClient(ctx context.Context) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// analysisSchema constrains the reflection response to the DailyAnalysis shape.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":   {Type: genai.TypeString},
			"score":     {Type: genai.TypeInteger},
			"advice":    {Type: genai.TypeString},
			"moodTrend": {Type: genai.TypeString},
		},
		Required: []string{"summary", "score", "advice", "moodTrend"},
	}
}

// AnalyzeDay sends the day's tasks and journal content to Gemini and parses
// the structured reflection.
func (p *GeminiProvider) AnalyzeDay(ctx context.Context, completed, pending []string, journalContent string) (models.DailyAnalysis, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return models.DailyAnalysis{}, err
	}

	prompt := buildAnalysisPrompt(completed, pending, journalContent)
	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema(),
	})
	if err != nil {
		return models.DailyAnalysis{}, fmt.Errorf("Gemini analysis request failed: %w", err)
	}
	if p.debug {
		fmt.Printf("[LLM] Gemini %s analysis in %v\n", p.model, time.Since(start))
	}

	text := resp.Text()
	if text == "" {
		return models.DailyAnalysis{}, fmt.Errorf("empty response from Gemini")
	}
	var analysis models.DailyAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return models.DailyAnalysis{}, fmt.Errorf("failed to parse analysis JSON from AI response: %w", err)
	}
	return analysis, nil
}

// BreakdownTask asks Gemini for 3-5 sub-task texts.
func (p *GeminiProvider) BreakdownTask(ctx context.Context, taskText string) ([]string, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return nil, err
	}

	prompt := buildBreakdownPrompt(taskText)
	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini breakdown request failed: %w", err)
	}
	if p.debug {
		fmt.Printf("[LLM] Gemini %s breakdown in %v\n", p.model, time.Since(start))
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}
	var subtasks []string
	if err := json.Unmarshal([]byte(text), &subtasks); err != nil {
		return nil, fmt.Errorf("failed to parse subtasks JSON from AI response: %w", err)
	}
	return subtasks, nil
}
