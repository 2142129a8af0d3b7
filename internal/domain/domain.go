package domain

const DefaultLanguage = "English"

// Content is either a FileContent or a TextContent.
type Content interface {
	isContent()
}

type FileContent struct {
	Name      string
	MediaType string
	Data      []byte
}

type TextContent struct {
	Text string
}

func (FileContent) isContent() {}
func (TextContent) isContent() {}

type SummaryOptions struct {
	Purpose  string
	Style    string
	Language string
}

type SummaryRequest struct {
	Content Content
	Options SummaryOptions
}

type SummaryResponse struct {
	OriginalText string `json:"originalText"`
	Summary      string `json:"summary"`
}

var (
	RecommendedPurposes = []string{
		"information",
		"report",
		"social media",
		"press release",
		"meeting notes",
		"self-study",
	}
	RecommendedStyles = []string{
		"neutral",
		"friendly",
		"expert",
		"concise",
		"humorous",
		"analytical",
	}
	RecommendedLanguages = []string{
		"Korean",
		"English",
	}
	AcceptedMediaTypes = []string{
		"image/png",
		"image/jpeg",
		"image/gif",
		"application/pdf",
		"text/plain",
	}
)
