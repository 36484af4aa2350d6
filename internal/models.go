package internal

// SnippetType is the language tag a suggestion is requested for
type SnippetType string

// Snippet types with fenced-block extraction; every other value is passed through raw
const (
	SnippetHTML SnippetType = "html"
	SnippetCSS  SnippetType = "css"
	SnippetJS   SnippetType = "js"
)

// Extractable reports whether replies for this type are reduced to a fenced block
func (t SnippetType) Extractable() bool {
	switch t {
	case SnippetHTML, SnippetCSS, SnippetJS:
		return true
	default:
		return false
	}
}

// SuggestionRequest represents the request for a code suggestion
type SuggestionRequest struct {
	Content string      `json:"content"`
	Type    SnippetType `json:"type"`
}

// SuggestionResponse represents the suggested code
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// PreviewRequest carries the editor contents for the preview endpoints
type PreviewRequest struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

// ExportResponse points at a one-shot download of the synthesized document
type ExportResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
