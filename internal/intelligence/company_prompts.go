package intelligence

import "strings"

const financialsSystemPrompt = `You are a financial analyst who reports verified company information only.
Use figures only when they come from a reliable published source. When a figure is unavailable or uncertain, say so instead of supplying one.
Never generate, estimate or extrapolate numbers.`

const financialsUserPromptTemplate = `Report verified financial information for %COMPANY% as JSON.

Include:
1. The latest publicly reported quarterly revenue figures, if any.
2. The latest publicly reported quarterly profit figures, if any.
3. A factual summary of the company's current business and market position.

Use null for anything you cannot verify.

Reply with ONLY a JSON object of exactly this shape, no markdown fences, no text before or after:
{
  "revenue": {
    "data": [numbers in millions] or null,
    "period": ["Q4 2023", ...] or null,
    "source": "where the figures come from, e.g. latest 10-Q filing" or null
  },
  "profit": {
    "data": [numbers in millions] or null,
    "period": ["Q4 2023", ...] or null,
    "source": "where the figures come from" or null
  },
  "summary": "verified factual summary",
  "dataAvailability": "Public|Private|Limited",
  "lastUpdated": "date of the most recent figure"
}`

const summarySystemPrompt = `You are a financial analyst who writes short, factual company briefings.
State only what you can verify from reliable sources and say plainly when information is unavailable. Do not estimate numbers.`

const summaryUserPromptTemplate = `Write a concise summary of %COMPANY%: what it does, its current business state and market position, and its most recent publicly reported financial results if they exist. Keep it under 200 words.`

// buildFinancialsUserPrompt substitutes the company name verbatim.
func buildFinancialsUserPrompt(company string) string {
	return strings.Replace(financialsUserPromptTemplate, "%COMPANY%", company, 1)
}

func buildSummaryUserPrompt(company string) string {
	return strings.Replace(summaryUserPromptTemplate, "%COMPANY%", company, 1)
}
