// Package preview assembles HTML/CSS/JS snippets into an iframe document
// and models the preview pane that renders it with a captured console.
package preview

import (
	"strings"
	"text/template"
)

// Document is the editor contents shown in the preview frame
type Document struct {
	HTML string
	CSS  string
	JS   string
}

// The shim runs before the user's script inside the same closure, so every
// console.log the snippet makes is forwarded to the parent frame.
const consoleShim = `
            var __generation = {{.Generation}};
            var __post = function(message) {
              window.parent.postMessage({ type: 'console', message: message, generation: __generation }, '*');
            };
            const log = console.log;
            console.log = function(...args) {
              log(...args);
              __post(args.join(' '));
            };
            window.addEventListener('error', function(event) {
              __post('Error: ' + (event.message || 'script error'));
            });
            window.addEventListener('unhandledrejection', function(event) {
              __post('Error: ' + (event.reason && event.reason.message ? event.reason.message : String(event.reason)));
            });`

var documentTemplate = template.Must(template.New("iframe").Parse(`
      <html>
        <head>
          <style>{{.CSS}}</style>
        </head>
        <body>{{.HTML}}</body>
        <script>
          (function() {` + consoleShim + `
            {{.JS}}
          })();
        </script>
      </html>
    `))

type documentData struct {
	Document
	Generation int
}

// Render returns the full iframe document. generation is stamped on every
// console message the document posts.
func (d Document) Render(generation int) string {
	var b strings.Builder
	// Executing a parsed template into a strings.Builder with plain string fields cannot fail.
	_ = documentTemplate.Execute(&b, documentData{Document: d, Generation: generation})
	return b.String()
}
