package internal

import (
	"strings"
	"testing"
)

func TestExtractFirstBlock(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		snippetType SnippetType
		original    string
		expected    string
	}{
		{
			name:        "Extract HTML block",
			input:       "Here you go:\n```html\n<p>Hi</p>```",
			snippetType: SnippetHTML,
			expected:    "<p>Hi</p>",
		},
		{
			name:        "Tag is case-insensitive",
			input:       "```HTML\n<p>Hi</p>\n```",
			snippetType: SnippetHTML,
			expected:    "<p>Hi</p>",
		},
		{
			name:        "Only the first block is used",
			input:       "```css\nbody { margin: 0; }\n```\nand\n```css\np { color: red; }\n```",
			snippetType: SnippetCSS,
			expected:    "body { margin: 0; }",
		},
		{
			name:        "Block of another language is ignored",
			input:       "```python\nprint('x')\n```",
			snippetType: SnippetJS,
			expected:    "",
		},
		{
			name:        "No fence returns empty",
			input:       "console.log('plain text');",
			snippetType: SnippetJS,
			expected:    "",
		},
		{
			name:        "Echoed original is removed",
			input:       "```js\nconst a = 1;\nconst b = 2;\n```",
			snippetType: SnippetJS,
			original:    "const a = 1;",
			expected:    "const b = 2;",
		},
		{
			name:        "Block identical to original becomes empty",
			input:       "```html\n<div>same</div>\n```",
			snippetType: SnippetHTML,
			original:    "<div>same</div>",
			expected:    "",
		},
		{
			name:        "Only the first echo is removed",
			input:       "```js\nx++;\nx++;\n```",
			snippetType: SnippetJS,
			original:    "x++;",
			expected:    "x++;",
		},
		{
			name:        "Windows line ending after tag",
			input:       "```css\r\na { color: blue; }\r\n```",
			snippetType: SnippetCSS,
			expected:    "a { color: blue; }",
		},
		{
			name:        "Longer tag does not match",
			input:       "```json\n{}\n```",
			snippetType: SnippetJS,
			expected:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractFirstBlock(tt.input, tt.snippetType, tt.original)
			if result != tt.expected {
				t.Errorf("ExtractFirstBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatResponse(t *testing.T) {
	raw := "Sure!\n```html\n<p>Hi</p>\n```\nEnjoy."

	tests := []struct {
		name        string
		snippetType SnippetType
		expected    string
	}{
		{name: "html is extracted", snippetType: SnippetHTML, expected: "<p>Hi</p>"},
		{name: "unknown type returns raw text", snippetType: "text", expected: raw},
		{name: "other returns raw text", snippetType: "other", expected: raw},
		{name: "empty type returns raw text", snippetType: "", expected: raw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatResponse(raw, tt.snippetType, "")
			if result != tt.expected {
				t.Errorf("FormatResponse() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(SnippetCSS, "body { margin: 0; }")

	if !strings.HasPrefix(prompt, "Based on the following css code snippets,") {
		t.Errorf("prompt should name the snippet type, got %q", prompt)
	}
	if !strings.Contains(prompt, "Don't include the current code snippet.") {
		t.Error("prompt should ask the model not to echo the snippet")
	}
	if !strings.HasSuffix(prompt, "Code: \n\nbody { margin: 0; }") {
		t.Errorf("prompt should end with the snippet, got %q", prompt)
	}
}

func TestSnippetTypeExtractable(t *testing.T) {
	for _, st := range []SnippetType{SnippetHTML, SnippetCSS, SnippetJS} {
		if !st.Extractable() {
			t.Errorf("%q should be extractable", st)
		}
	}
	for _, st := range []SnippetType{"other", "text", "HTML", ""} {
		if st.Extractable() {
			t.Errorf("%q should not be extractable", st)
		}
	}
}
