package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/services"
)

// Report is the structured output the model is asked to produce.
type Report struct {
	Insights   []string `json:"insights"`
	Prediction string   `json:"prediction"`
	Anomalies  []string `json:"anomalies"`
	Tip        string   `json:"tip"`
}

// Generator produces a spending analysis from the current session data.
type Generator interface {
	Generate(ctx context.Context, snap services.Snapshot) (*Report, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Generator backed by the Gemini API. The API key
// is read from the environment by the client (GEMINI_API_KEY / GOOGLE_API_KEY).
func NewGeminiGenerator(ctx context.Context, model string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("insights: create genai client: %w", err)
	}
	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, snap services.Snapshot) (*Report, error) {
	prompt := buildPrompt(snap)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInsightsUnavailable, err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, apperrors.ErrInsightsUnavailable
	}

	clean := cleanModelJSON(rawText)

	var report Report
	if err := json.Unmarshal([]byte(clean), &report); err != nil {
		logger.Get().Warnw("discarding malformed model output", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInsightsUnavailable, err)
	}

	return &report, nil
}

// buildPrompt renders the session data into a compact text summary and asks
// the model for strict JSON back.
func buildPrompt(snap services.Snapshot) string {
	var b strings.Builder

	b.WriteString("You are a personal finance assistant analysing a user's data.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Review the transactions, budgets and savings goals below.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n")
	b.WriteString("- Output a single JSON object with these fields:\n")
	b.WriteString("  - \"insights\": array of 2-4 short observations about spending patterns\n")
	b.WriteString("  - \"prediction\": string, expected spending trend for the next month\n")
	b.WriteString("  - \"anomalies\": array of unusual transactions or categories (may be empty)\n")
	b.WriteString("  - \"tip\": string, one actionable saving tip\n\n")

	b.WriteString("All amounts are in cents.\n\n")

	b.WriteString("Transactions (most recent first):\n")
	for i, tx := range snap.Transactions {
		if i >= 100 {
			fmt.Fprintf(&b, "... and %d older transactions omitted\n", len(snap.Transactions)-i)
			break
		}
		fmt.Fprintf(&b, "- %s %s %d %q category=%s\n",
			tx.Date.Format(time.DateOnly), tx.Type, tx.Amount, tx.Description, tx.Category)
	}

	b.WriteString("\nBudgets:\n")
	for _, budget := range snap.Budgets {
		fmt.Fprintf(&b, "- %s: limit %d per %s\n", budget.Category, budget.Limit, budget.Period)
	}

	b.WriteString("\nGoals:\n")
	for _, goal := range snap.Goals {
		fmt.Fprintf(&b, "- %q: %d of %d\n", goal.Name, goal.CurrentAmount, goal.TargetAmount)
	}

	b.WriteString("\nReturn ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Do NOT use ```json or any Markdown.\n")
	b.WriteString("Output must begin with \"{\" and end with \"}\".\n")

	return b.String()
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only from the first '{' to the last '}' if there is extra text.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
