package chat

import "fmt"

var baseQuestions = []string{
	"What are the major sources of government revenue?",
	"Which ministry receives the highest budget allocation?",
	"How has the fiscal deficit changed over the years?",
	"What are the key infrastructure spending priorities?",
	"Compare defence spending with education spending",
	"What are the major welfare schemes and their allocations?",
	"How has GST revenue performed since its introduction?",
	"What are the trends in capital vs revenue expenditure?",
}

// SuggestedQuestions returns starter questions for the chat panel.
// With a selected year, year-specific prompts come first.
func SuggestedQuestions(year int) []string {
	if year == 0 {
		return append([]string(nil), baseQuestions...)
	}
	questions := []string{
		fmt.Sprintf("What were the budget highlights for %d?", year),
		fmt.Sprintf("Which schemes received major funding in %d?", year),
		fmt.Sprintf("How did the fiscal position change in %d?", year),
		fmt.Sprintf("What were the revenue growth drivers in %d?", year),
	}
	return append(questions, baseQuestions[:4]...)
}
