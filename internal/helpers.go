package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LogRequest logs the request details
func LogRequest(endpoint, message string) {
	log.Infof("[REQUEST] %s - %s", endpoint, message)
}

// LogResponse logs the response details
func LogResponse(endpoint, message string, err error) {
	if err != nil {
		log.Errorf("[RESPONSE] %s - %s: %v", endpoint, message, err)
	} else {
		log.Infof("[RESPONSE] %s - %s", endpoint, message)
	}
}

// EncodeError writes a JSON error response
func EncodeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// EncodeJSON writes v as a JSON response with the given status
func EncodeJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("[RESPONSE] failed to encode response: %v", err)
	}
}

const promptTemplate = "Based on the following %s code snippets, please generate additional lines of code " +
	"that improve or extend the current implementation. Don't include the current code snippet. Code: \n\n%s"

// BuildPrompt fills the suggestion prompt for a snippet of the given type
func BuildPrompt(snippetType SnippetType, content string) string {
	return fmt.Sprintf(promptTemplate, snippetType, content)
}

// fencePatterns match the first ```<type> block, case-insensitive on the tag
var fencePatterns = map[SnippetType]*regexp.Regexp{
	SnippetHTML: fencePattern(SnippetHTML),
	SnippetCSS:  fencePattern(SnippetCSS),
	SnippetJS:   fencePattern(SnippetJS),
}

func fencePattern(t SnippetType) *regexp.Regexp {
	return regexp.MustCompile("(?is)```" + regexp.QuoteMeta(string(t)) + "\r?\n(.*?)```")
}

// FormatResponse reduces a model reply to the code worth suggesting
func FormatResponse(text string, snippetType SnippetType, original string) string {
	if !snippetType.Extractable() {
		return text
	}
	return ExtractFirstBlock(text, snippetType, original)
}

// ExtractFirstBlock returns the body of the first fenced block tagged with snippetType,
// with the first echo of original removed. It returns "" when no such block exists.
func ExtractFirstBlock(text string, snippetType SnippetType, original string) string {
	pattern, ok := fencePatterns[snippetType]
	if !ok {
		pattern = fencePattern(snippetType)
	}

	matches := pattern.FindStringSubmatch(text)
	if len(matches) < 2 {
		return ""
	}

	code := strings.TrimSpace(matches[1])
	if original != "" {
		code = strings.Replace(code, original, "", 1)
	}

	return strings.TrimSpace(code)
}
