// Package cleanup strips the conversational framing a vision model tends to wrap
// around text it transcribes from an image.
package cleanup

import (
	"regexp"
	"strings"
)

// Rule is one substitution pass. Leading framing rules are anchored to the start
// of the text and trailing ones to its end, so lines inside the article body
// are never touched.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Phrases that only make sense when addressed to the person asking for the
// transcription. Openers like "if you have any" also end real news copy.
const closingPhrases = `let me know|please let me know|i hope this helps|hope this helps|` +
	`is there anything else|would you like me to|` +
	`필요하신?[ \t]*부분|더[ \t]*필요하신`

// DefaultRules run in order. The whitespace collapse in Apply always runs after them.
var DefaultRules = []Rule{
	{
		Name: "preamble",
		Pattern: regexp.MustCompile(`(?i)\A\s*(?:(?:sure|certainly|okay|of course)[!,.]?[ \t]+)?` +
			`(?:below is|below are|here is|here's|here are|the following is|the following are)\b` +
			`[^\n]*\b(?:text|image|content|article|transcription|transcript)\b[^\n]*:[ \t]*(?:\r?\n)+`),
	},
	{
		Name:    "label",
		Pattern: regexp.MustCompile(`(?i)\A\s*(?:extracted|transcribed)[ \t]+(?:text|content|article)[ \t]*:[ \t]*(?:\r?\n)+`),
	},
	{
		Name:    "preamble-ko",
		Pattern: regexp.MustCompile(`\A\s*아래는?[ \t]*이미지에?[ \t]*(?:있는|포함된)?[^\n]*?입니다?[ \t]*:?[ \t]*(?:\r?\n)*`),
	},
	{
		Name:    "separator",
		Pattern: regexp.MustCompile(`(?m)^[ \t]*-{3,}[^\n]*$`),
	},
	{
		Name:    "closing",
		Pattern: regexp.MustCompile(`(?im)(?:^[ \t]*(?:` + closingPhrases + `)[^\n]*(?:\n|\z)\s*)+\z`),
	},
	{
		Name: "meta",
		Pattern: regexp.MustCompile(`(?i)\A\s*(?:this is|that is|that's|above is)\b[^\n]*` +
			`\b(?:text|content|transcription)\b[^\n]*\b(?:extracted|transcribed|found|visible|shown)\b[^\n]*(?:\r?\n|\z)`),
	},
	{
		Name:    "note",
		Pattern: regexp.MustCompile(`(?i)(?:\A|\n)[ \t]*\(?note:[^\n]*\b(?:image|extract\w*|transcri\w*)\b[^\n]*\s*\z`),
	},
	{
		Name:    "meta-ko-verbatim",
		Pattern: regexp.MustCompile(`\A\s*[^\n]*?텍스트를?[ \t]*(?:원문[ \t]*)?그대로[ \t]*추출한?[ \t]*내용입니다?[ \t]*[:.]?[ \t]*(?:\r?\n)*`),
	},
	{
		Name:    "meta-ko-as-follows",
		Pattern: regexp.MustCompile(`\A\s*[^\n]*?다음과?[ \t]*같습니다?[ \t]*[:.]?[ \t]*(?:\r?\n)*`),
	},
}

var blankRunRe = regexp.MustCompile(`\n[ \t\r]*\n(?:[ \t\r]*\n)+`)

func Clean(text string) string {
	return Apply(DefaultRules, text)
}

// Apply runs rules in order, then collapses runs of three or more newlines to
// two and trims the result. It never fails.
func Apply(rules []Rule, text string) string {
	for _, rule := range rules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}

	text = blankRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
