package prompt_test

import (
	"slices"
	"strings"
	"testing"

	"newsbrief/internal/domain"
	"newsbrief/internal/prompt"
)

const text = "Breaking news: the central bank kept rates unchanged."

func TestBuildEmbedsFullTextAndLanguage(t *testing.T) {
	p := prompt.Build(text, domain.SummaryOptions{Language: "Korean"})

	if p.System != prompt.SystemInstruction {
		t.Fatalf("unexpected system instruction: %q", p.System)
	}

	if !strings.Contains(p.User, "\n\n"+text+"\n\n") {
		t.Fatalf("expected text to be embedded verbatim, got %q", p.User)
	}

	if !strings.Contains(p.User, "- Language: write the summary in Korean") {
		t.Fatalf("expected language directive, got %q", p.User)
	}

	if strings.Contains(p.User, "- Purpose:") || strings.Contains(p.User, "- Style:") {
		t.Fatalf("expected absent options to be omitted, got %q", p.User)
	}
}

func TestBuildClauseOrder(t *testing.T) {
	p := prompt.Build(text, domain.SummaryOptions{
		Purpose:  "report",
		Style:    "neutral",
		Language: "English",
	})

	language := strings.Index(p.User, "- Language:")
	purpose := strings.Index(p.User, "- Purpose:")
	style := strings.Index(p.User, "- Style:")
	closing := strings.Index(p.User, "Keep every key point")
	base := strings.Index(p.User, "Summarize the following news article:")

	if base != 0 || base >= language || language >= purpose || purpose >= style || style >= closing {
		t.Fatalf("unexpected clause order (base=%d language=%d purpose=%d style=%d closing=%d)",
			base, language, purpose, style, closing)
	}
}

func TestBuildPurposeAddsExactlyOneLine(t *testing.T) {
	without := strings.Split(prompt.Build(text, domain.SummaryOptions{
		Style:    "neutral",
		Language: "English",
	}).User, "\n")
	with := strings.Split(prompt.Build(text, domain.SummaryOptions{
		Purpose:  "report",
		Style:    "neutral",
		Language: "English",
	}).User, "\n")

	if len(with) != len(without)+1 {
		t.Fatalf("expected one extra line, got %d vs %d", len(with), len(without))
	}

	idx := slices.Index(with, "- Purpose: tailor the summary for report")
	if idx < 0 {
		t.Fatalf("expected purpose line in %q", with)
	}

	rest := slices.Delete(slices.Clone(with), idx, idx+1)
	if !slices.Equal(rest, without) {
		t.Fatalf("expected remaining lines to be unchanged:\ngot  %q\nwant %q", rest, without)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	opts := domain.SummaryOptions{Purpose: "report", Style: "concise", Language: "English"}

	if prompt.Build(text, opts) != prompt.Build(text, opts) {
		t.Fatalf("expected identical prompts for identical input")
	}
}

func TestDirectivesTreatBlankOptionsAsAbsent(t *testing.T) {
	got := prompt.Directives(domain.SummaryOptions{Purpose: "  ", Style: "\t", Language: ""})
	want := []string{"- Language: write the summary in " + domain.DefaultLanguage}

	if !slices.Equal(got, want) {
		t.Fatalf("unexpected directives: got %q want %q", got, want)
	}
}
