// Package chat turns aggregated budget data plus conversation history
// into bounded prompts for the external completion service, and owns
// per-session conversation state. Nothing in this package lets a
// service failure escape as an error: every failure becomes a textual
// fallback the presentation layer can render directly.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"budgetlens/internal/analysis"
	"budgetlens/internal/models"
	"budgetlens/internal/search"
	"budgetlens/internal/store"
)

// Completer is the narrow view of the external completion service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const systemPrompt = `You are an expert government budget analyst with deep knowledge of Indian fiscal policy and budget allocation patterns. You help users understand complex budget data through clear, insightful explanations.

Your responses should be:
1. Accurate and based only on the provided data
2. Clear and easy to understand for both experts and general public
3. Include specific numbers and percentages when relevant
4. Provide context and trends when possible
5. If data is not available, clearly state so

Always format numbers in Indian crore notation (e.g., ₹1,25,000 crores) and include relevant comparisons or growth rates when applicable.`

// Fallback replies when the completion service fails or goes quiet.
const (
	apologyError = "I apologize, but I encountered an error processing your query. Please try rephrasing your question or ask about specific budget data."
	apologyEmpty = "I apologize, but I couldn't generate a response. Please try again."
)

// historyWindow is how many recent messages (3 exchanges) get included
// in the prompt.
const historyWindow = 6

type Bot struct {
	store     *store.Store
	analysis  *analysis.Service
	search    *search.Service
	completer Completer
}

// NewBot wires the chatbot over loaded data and a completion service.
func NewBot(st *store.Store, an *analysis.Service, se *search.Service, c Completer) *Bot {
	return &Bot{store: st, analysis: an, search: se, completer: c}
}

// Respond answers a user query with retrieval-augmented completion.
// It always returns displayable text, never an error: service failures
// turn into an apology string.
func (b *Bot) Respond(ctx context.Context, sess *Session, query string, year int) string {
	results := b.search.Search(query)

	var overview *models.YearOverview
	if year != 0 {
		if ov, err := b.analysis.YearOverview(year); err == nil {
			overview = &ov
		}
	}

	// Insight errors are tolerated here; findings are garnish, not the meal.
	findings := b.analysis.Insights().KeyFindings

	dataContext := BuildContext(results, overview, year, findings)
	recent := sess.Recent(historyWindow)
	prompt := buildPrompt(query, dataContext, recent)

	sess.Append(RoleUser, query)

	reply, err := b.completer.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("chat completion failed", "error", err)
		return apologyError
	}
	if strings.TrimSpace(reply) == "" {
		return apologyEmpty
	}

	sess.Append(RoleAssistant, reply)
	return reply
}

func buildPrompt(query, dataContext string, recent []Message) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	if len(recent) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, m := range recent {
			role := "User"
			if m.Role == RoleAssistant {
				role = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `User Query: %s

Available Data Context:
%s

Please provide a comprehensive answer based on the available data. If the query cannot be fully answered with the provided data, explain what information is available and suggest related insights.`, query, dataContext)

	return b.String()
}

// AnalyzeSpeech connects a year's budget speech themes with its actual
// allocations. Returns displayable text in every case.
func (b *Bot) AnalyzeSpeech(ctx context.Context, year int) string {
	speech, ok := b.store.Speech(year)
	if !ok {
		return fmt.Sprintf("No budget speech data available for %d.", year)
	}

	var (
		summary       models.BudgetSummary
		topMinistries []models.MinistryAllocation
	)
	if ov, err := b.analysis.YearOverview(year); err == nil {
		summary = ov.BudgetSummary
		topMinistries = ov.TopMinistries
		if len(topMinistries) > maxContextTopMin {
			topMinistries = topMinistries[:maxContextTopMin]
		}
	}
	topJSON, _ := json.MarshalIndent(topMinistries, "", "  ")

	prompt := fmt.Sprintf(`You are a budget policy analyst. Provide insights connecting budget speech themes with actual allocations.

Analyze the budget speech summary and actual budget data for %d:

Speech Summary: %s

Budget Data:
- Total Expenditure: ₹%.0f crores
- Total Receipts: ₹%.0f crores
- Fiscal Deficit: %.1f%% of GDP

Top Ministry Allocations:
%s

Provide an analysis connecting the speech themes with the actual budget allocations and key policy priorities.`,
		year, speech, summary.TotalExpenditure, summary.TotalReceipts, summary.FiscalDeficitGDPPct, topJSON)

	reply, err := b.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		slog.Warn("speech analysis failed", "year", year, "error", err)
		return "Error generating analysis. Please try again."
	}
	return reply
}

// SummarizeConversation produces a short recap of the session.
func (b *Bot) SummarizeConversation(ctx context.Context, sess *Session) string {
	recent := sess.Recent(10)
	if len(recent) == 0 {
		return "No conversation history available."
	}

	var lines []string
	for _, m := range recent {
		role := "User"
		if m.Role == RoleAssistant {
			role = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, m.Content))
	}

	prompt := fmt.Sprintf(`Provide a concise summary of the budget discussion topics and insights.

Summarize the key topics and insights discussed in this budget conversation:

%s

Provide a brief summary of the main topics covered and key insights shared.`, strings.Join(lines, "\n"))

	reply, err := b.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		slog.Warn("conversation summary failed", "error", err)
		return "Error generating summary. Please try again."
	}
	return reply
}
