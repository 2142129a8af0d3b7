package prompt

import (
	"strings"

	"newsbrief/internal/domain"
)

const (
	SystemInstruction = "You are an expert at summarizing news articles. " +
		"Follow the given requirements and produce an accurate, useful summary."

	baseInstruction    = "Summarize the following news article:"
	requirementsHeader = "Summary requirements:"
	closingInstruction = "Keep every key point and make the summary clear and concise."
)

type Prompt struct {
	System string
	User   string
}

// Build assembles the user instruction in a fixed clause order. Each option
// contributes at most one line, so toggling it changes exactly that line.
func Build(text string, opts domain.SummaryOptions) Prompt {
	b := strings.Builder{}
	b.WriteString(baseInstruction)
	b.WriteString("\n\n")
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(requirementsHeader)

	for _, line := range Directives(opts) {
		b.WriteString("\n")
		b.WriteString(line)
	}

	b.WriteString("\n\n")
	b.WriteString(closingInstruction)

	return Prompt{
		System: SystemInstruction,
		User:   b.String(),
	}
}

// Directives returns the option clauses in order: language, purpose, style.
func Directives(opts domain.SummaryOptions) []string {
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = domain.DefaultLanguage
	}

	directives := []string{"- Language: write the summary in " + language}

	if purpose := strings.TrimSpace(opts.Purpose); purpose != "" {
		directives = append(directives, "- Purpose: tailor the summary for "+purpose)
	}

	if style := strings.TrimSpace(opts.Style); style != "" {
		directives = append(directives, "- Style: write in a "+style+" tone")
	}

	return directives
}
