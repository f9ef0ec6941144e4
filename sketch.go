// Package sketch serves the live markup editor: a REST API over the snippet
// store and a websocket channel that drives an editing session per
// connected client.
package sketch

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

//go:embed editor.html
var editorPage []byte

// defaultSaveDebounce is the quiet period before an edit burst is persisted
// and the regenerated markup pushed downstream.
const defaultSaveDebounce = 500 * time.Millisecond

type Handler struct {
	// Store persists snippets. Required.
	Store *Store

	// SaveDebounce overrides the auto-save quiet period.
	SaveDebounce time.Duration

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the handler only once.
	init sync.Once

	// logger is a private logger instance that is used to log internal events.
	logger *slog.Logger
}

// ServeHTTP implements the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.init.Do(func() {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if h.Logger != nil {
			h.logger = h.Logger
		}
	})

	if err := h.handleRequest(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		h.logger.Error("Serve HTTP request", "url", r.URL.Redacted(), "error", err)
	}
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) error {
	p := r.URL.Path
	switch {
	case p == "/":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err := w.Write(editorPage)
		return err
	case p == "/ws":
		return h.serveEditor(w, r)
	case p == "/api/snippets":
		return h.serveSnippets(w, r)
	case strings.HasPrefix(p, "/api/snippets/"):
		return h.serveSnippet(w, r, strings.TrimPrefix(p, "/api/snippets/"))
	default:
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return nil
	}
}

// snippetRequest is the JSON body for create and update calls.
type snippetRequest struct {
	Name   string `json:"name"`
	Markup string `json:"markup"`
}

func (h *Handler) serveSnippets(w http.ResponseWriter, r *http.Request) error {
	switch r.Method {
	case http.MethodGet:
		return writeJSON(w, http.StatusOK, h.Store.List())
	case http.MethodPost:
		var req snippetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return nil
		}
		sn, err := h.Store.Create(req.Name, req.Markup)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusCreated, sn)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil
	}
}

func (h *Handler) serveSnippet(w http.ResponseWriter, r *http.Request, id string) error {
	switch r.Method {
	case http.MethodGet:
		sn, err := h.Store.Get(id)
		if errors.Is(err, ErrSnippetNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return nil
		}
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, sn)
	case http.MethodPut:
		var req snippetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return nil
		}
		sn, err := h.Store.Update(id, req.Name, req.Markup)
		if errors.Is(err, ErrSnippetNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return nil
		}
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, sn)
	case http.MethodDelete:
		err := h.Store.Delete(id)
		if errors.Is(err, ErrSnippetNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return nil
		}
		if err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil
	}
}

func (h *Handler) saveDebounce() time.Duration {
	if h.SaveDebounce > 0 {
		return h.SaveDebounce
	}
	return defaultSaveDebounce
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
