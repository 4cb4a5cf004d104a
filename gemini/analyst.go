// Package gemini implements catalog analysis using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/avolkov/rigcat"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// promptComponentLimit caps how many distinct component values appear in
// a prompt; the catalog summary can be much longer than the model needs.
const promptComponentLimit = 5

// Ensure Analyst implements rigcat.Analyst at compile time.
var _ rigcat.Analyst = (*Analyst)(nil)

// Analyst implements rigcat.Analyst using Google Gemini.
type Analyst struct {
	client *genai.Client
	model  string
}

// NewAnalyst creates a new Analyst. An empty model selects DefaultModel.
func NewAnalyst(client *genai.Client, model string) *Analyst {
	if model == "" {
		model = DefaultModel
	}
	return &Analyst{client: client, model: model}
}

// Analyze produces a general analysis of the summarized catalog.
func (a *Analyst) Analyze(ctx context.Context, summary *rigcat.CatalogSummary) (string, error) {
	if summary == nil || summary.Total == 0 {
		return "", rigcat.Errorf(rigcat.EINVALID, "no catalog data to analyze")
	}
	return a.generate(ctx, BuildAnalysisPrompt(summary))
}

// Answer answers a free-text question grounded in the summarized catalog.
func (a *Analyst) Answer(ctx context.Context, summary *rigcat.CatalogSummary, question string) (string, error) {
	if summary == nil || summary.Total == 0 {
		return "", rigcat.Errorf(rigcat.EINVALID, "no catalog data to answer from")
	}
	if strings.TrimSpace(question) == "" {
		return "", rigcat.Errorf(rigcat.EINVALID, "question required")
	}
	return a.generate(ctx, BuildQuestionPrompt(summary, question))
}

func (a *Analyst) generate(ctx context.Context, prompt string) (string, error) {
	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", rigcat.Errorf(rigcat.EUNAVAILABLE, "analysis unavailable: %v", err)
	}
	if result == nil || result.Text() == "" {
		return "", rigcat.Errorf(rigcat.EUNAVAILABLE, "analysis unavailable: empty response from model")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.9)
	topP := float32(0.95)
	topK := float32(40)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an assistant analyzing a catalog of desktop computer configurations. Base your analysis only on the data provided.",
			}},
		},
		Temperature:     &temp,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: 8192,
	}
}

// BuildAnalysisPrompt builds the prompt for a general catalog analysis.
func BuildAnalysisPrompt(summary *rigcat.CatalogSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this data about %d computer configurations:\n\n", summary.Total)
	writeSummary(&sb, summary)
	sb.WriteString("\nProvide:\n")
	sb.WriteString("1. A price/performance assessment\n")
	sb.WriteString("2. Recommendations for the best-value configurations\n")
	sb.WriteString("3. Trends and notable observations\n")
	return sb.String()
}

// BuildQuestionPrompt builds the prompt for a free-text question.
func BuildQuestionPrompt(summary *rigcat.CatalogSummary, question string) string {
	var sb strings.Builder
	sb.WriteString("Answer the question using this data about computer configurations:\n\n")
	writeSummary(&sb, summary)
	fmt.Fprintf(&sb, "\nQuestion: %s", question)
	return sb.String()
}

func writeSummary(sb *strings.Builder, summary *rigcat.CatalogSummary) {
	fmt.Fprintf(sb, "Total configurations: %d\n", summary.Total)
	if summary.HasPrices {
		fmt.Fprintf(sb, "Price range: %s to %s\n",
			rigcat.FormatPrice(summary.MinPrice), rigcat.FormatPrice(summary.MaxPrice))
	} else {
		sb.WriteString("Price range: no price data\n")
	}
	fmt.Fprintf(sb, "CPUs: %s\n", joinLimited(summary.CPUs))
	fmt.Fprintf(sb, "GPUs: %s\n", joinLimited(summary.GPUs))
	fmt.Fprintf(sb, "RAM: %s\n", joinLimited(summary.RAMs))
}

func joinLimited(values []string) string {
	if len(values) > promptComponentLimit {
		values = values[:promptComponentLimit]
	}
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
