// Package rest serves the read-only pronunciation lookup API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/ninolex-gh/internal/domain"
	"github.com/heartmarshall/ninolex-gh/pkg/ctxutil"
)

// Dictionary is the lookup surface the handlers need.
type Dictionary interface {
	Lookup(word string) (domain.Entry, error)
	EntryCount() (int, error)
	Graphemes() ([]string, error)
}

// LookupHandler serves dictionary lookups.
type LookupHandler struct {
	dict Dictionary
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(dict Dictionary) *LookupHandler {
	return &LookupHandler{dict: dict}
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GraphemesResponse lists the dictionary headwords.
type GraphemesResponse struct {
	Count     int      `json:"count"`
	Graphemes []string `json:"graphemes"`
}

// Lookup answers GET /v1/lookup?word=...
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if strings.TrimSpace(word) == "" {
		err := domain.NewValidationError("word", "query parameter is required")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.dict.Lookup(word)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		ctxutil.LoggerFromCtx(r.Context()).Debug("lookup miss", slog.String("word", word))
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case err != nil:
		h.internalError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, entry)
	}
}

// Graphemes answers GET /v1/graphemes. Count is the number of distinct
// lookup keys and can be smaller than the list.
func (h *LookupHandler) Graphemes(w http.ResponseWriter, r *http.Request) {
	count, err := h.dict.EntryCount()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	graphemes, err := h.dict.Graphemes()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GraphemesResponse{Count: count, Graphemes: graphemes})
}

func (h *LookupHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	ctxutil.LoggerFromCtx(r.Context()).Error("dictionary unavailable", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "dictionary unavailable"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v) //nolint:errcheck
}
