package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"snippet-server/internal/preview"
)

// maxBodyBytes bounds request bodies read by the JSON middleware
const maxBodyBytes = 1 << 20

// Server wires the HTTP routes to the completion model and export store
type Server struct {
	cfg       *Config
	completer Completer
	exports   *preview.BlobStore
}

// NewServer creates a Server; all dependencies are required
func NewServer(cfg *Config, completer Completer, exports *preview.BlobStore) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if completer == nil {
		return nil, errors.New("completer is required")
	}
	if exports == nil {
		return nil, errors.New("export store is required")
	}
	return &Server{cfg: cfg, completer: completer, exports: exports}, nil
}

// SetupRouter configures and returns the application router
func (s *Server) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// Add global middlewares
	r.Use(CorsMiddleware(s.cfg.AllowedOrigins))
	r.Use(LoggingMiddleware)

	r.HandleFunc("/preview/export/{id}", s.downloadHandler).Methods(http.MethodGet, http.MethodOptions)

	// Routes that take a JSON body
	api := r.PathPrefix("").Subrouter()
	api.Use(JSONBodyMiddleware(maxBodyBytes))

	api.HandleFunc("/any", s.suggestionHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/preview/document", s.previewDocumentHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/preview/export", s.exportHandler).Methods(http.MethodPost, http.MethodOptions)

	return r
}

func (s *Server) suggestionHandler(w http.ResponseWriter, r *http.Request) {
	req, err := readSuggestionRequest(r)
	if err != nil {
		LogResponse("/any", "Invalid request format", err)
		EncodeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	LogRequest("/any", fmt.Sprintf("Received %s content (%d bytes)", req.Type, len(req.Content)))

	prompt := BuildPrompt(req.Type, req.Content)

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		LogResponse("/any", "Error generating suggestion", err)
		EncodeError(w, s.errorMessage(err), http.StatusInternalServerError)
		return
	}

	suggestion := FormatResponse(text, req.Type, req.Content)

	LogResponse("/any", fmt.Sprintf("Suggestion generated (%d bytes)", len(suggestion)), nil)
	EncodeJSON(w, SuggestionResponse{Suggestion: suggestion}, http.StatusOK)
}

// readSuggestionRequest reads the fields leniently: scalars are taken in their
// string form and missing fields are empty.
func readSuggestionRequest(r *http.Request) (SuggestionRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return SuggestionRequest{}, err
	}
	return SuggestionRequest{
		Content: gjson.GetBytes(body, "content").String(),
		Type:    SnippetType(gjson.GetBytes(body, "type").String()),
	}, nil
}

func readPreviewRequest(r *http.Request) (PreviewRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return PreviewRequest{}, err
	}
	return PreviewRequest{
		HTML: gjson.GetBytes(body, "html").String(),
		CSS:  gjson.GetBytes(body, "css").String(),
		JS:   gjson.GetBytes(body, "js").String(),
	}, nil
}

// errorMessage is what a client sees for a failed suggestion
func (s *Server) errorMessage(err error) string {
	if s.cfg.ExposeErrors {
		return err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Suggestion timed out"
	}
	return "Error generating suggestion"
}

func (s *Server) previewDocumentHandler(w http.ResponseWriter, r *http.Request) {
	req, err := readPreviewRequest(r)
	if err != nil {
		LogResponse("/preview/document", "Invalid request format", err)
		EncodeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	document := preview.Document{HTML: req.HTML, CSS: req.CSS, JS: req.JS}.Render(0)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(document)); err != nil {
		log.Errorf("[RESPONSE] failed to write preview document: %v", err)
	}
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	req, err := readPreviewRequest(r)
	if err != nil {
		LogResponse("/preview/export", "Invalid request format", err)
		EncodeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	pane := preview.NewPane(preview.Document{HTML: req.HTML, CSS: req.CSS, JS: req.JS}, false)
	id := pane.Export(s.exports)

	LogResponse("/preview/export", "Export created with ID: "+id, nil)
	EncodeJSON(w, ExportResponse{
		URL:      "/preview/export/" + id,
		Filename: preview.ExportFilename,
	}, http.StatusCreated)
}

func (s *Server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	blob, ok := s.exports.Take(id)
	if !ok {
		LogResponse("/preview/export/{id}", "Export not found with ID: "+id, nil)
		EncodeError(w, "Export not found", http.StatusNotFound)
		return
	}

	LogResponse("/preview/export/{id}", "Export downloaded and revoked: "+id, nil)

	w.Header().Set("Content-Type", blob.Type+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", blob.Name))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob.Data); err != nil {
		log.Errorf("[RESPONSE] failed to write export %s: %v", id, err)
	}
}
