package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/heartmarshall/lettergreep/internal/domain"
	"github.com/heartmarshall/lettergreep/internal/syllable"
	"github.com/heartmarshall/lettergreep/internal/textnorm"
)

// maxBatchTexts caps the number of texts in one batch request.
const maxBatchTexts = 1000

// SyllableHandler serves the syllable counting endpoints.
type SyllableHandler struct {
	counter      *syllable.Counter
	maxBodyBytes int64
	log          *slog.Logger
}

// NewSyllableHandler creates a SyllableHandler. Request bodies larger than
// maxBodyBytes are rejected with 413.
func NewSyllableHandler(counter *syllable.Counter, maxBodyBytes int64, logger *slog.Logger) *SyllableHandler {
	return &SyllableHandler{
		counter:      counter,
		maxBodyBytes: maxBodyBytes,
		log:          logger.With("handler", "syllables"),
	}
}

type textsRequest struct {
	Text  *string  `json:"text"`
	Texts []string `json:"texts"`
}

type wordResponse struct {
	Word       string `json:"word"`
	Normalized string `json:"normalized"`
	Syllables  int    `json:"syllables"`
	Source     string `json:"source"`
}

type wordCountResponse struct {
	Word      string `json:"word"`
	Syllables int    `json:"syllables"`
	Source    string `json:"source"`
}

type textResponse struct {
	Normalized string              `json:"normalized"`
	Syllables  int                 `json:"syllables"`
	Words      []wordCountResponse `json:"words"`
}

type batchResponse struct {
	Syllables int   `json:"syllables"`
	Totals    []int `json:"totals"`
}

// Word handles GET /v1/words/{word}/syllables.
func (h *SyllableHandler) Word(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("word")

	normalized, err := textnorm.Normalize(raw)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	tokens := textnorm.Tokenize(normalized)
	switch len(tokens) {
	case 0:
		writeError(w, http.StatusBadRequest, "word has no letters or digits")
		return
	case 1:
	default:
		writeError(w, http.StatusBadRequest, "expected a single word")
		return
	}

	n, tr := h.counter.CountWordTrace(tokens[0])
	writeJSON(w, http.StatusOK, wordResponse{
		Word:       raw,
		Normalized: tokens[0],
		Syllables:  n,
		Source:     string(tr.Source()),
	})
}

// Texts handles POST /v1/texts/syllables. A body with "text" gets a per-token
// breakdown; a body with "texts" gets one total per text, in order.
func (h *SyllableHandler) Texts(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	// encoding/json replaces invalid UTF-8 with U+FFFD, so check the raw body.
	if !utf8.Valid(body) {
		h.handleError(w, r, fmt.Errorf("request body: %w", domain.ErrInvalidEncoding))
		return
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var req textsRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.Text != nil && req.Texts != nil:
		h.handleError(w, r, domain.NewValidationError("text", "set either text or texts, not both"))
	case req.Text != nil:
		h.single(w, r, *req.Text)
	case req.Texts != nil:
		h.batch(w, r, req.Texts)
	default:
		h.handleError(w, r, domain.NewValidationError("text", "required"))
	}
}

func (h *SyllableHandler) single(w http.ResponseWriter, r *http.Request, text string) {
	a, err := h.counter.Analyze(text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	words := make([]wordCountResponse, len(a.Words))
	for i, wc := range a.Words {
		words[i] = wordCountResponse{Word: wc.Word, Syllables: wc.Syllables, Source: string(wc.Source)}
	}
	writeJSON(w, http.StatusOK, textResponse{
		Normalized: a.Normalized,
		Syllables:  a.Total,
		Words:      words,
	})
}

func (h *SyllableHandler) batch(w http.ResponseWriter, r *http.Request, texts []string) {
	if len(texts) > maxBatchTexts {
		h.handleError(w, r, domain.NewValidationError("texts", fmt.Sprintf("at most %d texts per request", maxBatchTexts)))
		return
	}

	totals, err := h.counter.CountTexts(r.Context(), texts)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	sum := 0
	for _, n := range totals {
		sum += n
	}
	writeJSON(w, http.StatusOK, batchResponse{Syllables: sum, Totals: totals})
}

func (h *SyllableHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEncoding):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case r.Context().Err() != nil:
		h.log.InfoContext(r.Context(), "request canceled", slog.String("error", err.Error()))
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
