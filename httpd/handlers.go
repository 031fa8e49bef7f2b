package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/document"
	"github.com/docdex/docdex/index"
	"github.com/docdex/docdex/query"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello world"))
}

// handleInsert handles POST /indexes/{index}/documents. The body is the
// document itself.
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")

	var doc document.Value
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid document: "+err.Error())
		return
	}

	id, err := s.store.Insert(r.Context(), name, doc)
	if err != nil {
		s.handleStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]uint64{"id": id})
}

type bulkRequest struct {
	Documents []document.Value `json:"documents"`
}

// handleBulk handles POST /indexes/{index}/bulk. The batch is
// all-or-nothing: on failure no document is kept.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "documents must not be empty")
		return
	}

	ids, err := s.store.InsertMany(r.Context(), name, req.Documents)
	if err != nil {
		s.handleStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]uint64{"ids": ids})
}

// handleSetMapping handles PUT /indexes/{index}/mapping.
func (s *Server) handleSetMapping(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")

	var m index.Mapping
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid mapping: "+err.Error())
		return
	}
	for field, f := range m.Fields {
		if !f.Type.Valid() {
			writeError(w, http.StatusBadRequest, "unknown field type for "+strconv.Quote(field))
			return
		}
	}

	if err := s.store.SetMapping(r.Context(), name, m); err != nil {
		s.handleStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch handles GET /indexes/{index}/search with query parameters
// q, limit, fuzz and scores.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")
	params := r.URL.Query()

	req := query.KeywordRequest{
		Query:      params.Get("q"),
		Limit:      intParam(params.Get("limit"), 0),
		Fuzz:       intParam(params.Get("fuzz"), 0),
		WithScores: boolParam(params.Get("scores")),
	}

	res, err := s.store.Search(r.Context(), name, req)
	if err != nil {
		s.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleQuery handles POST /indexes/{index}/query with a structured
// filter/sort/aggregate body.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")

	var req query.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query: "+err.Error())
		return
	}

	res, err := s.store.Query(r.Context(), name, req)
	if err != nil {
		s.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// vectorBody mirrors query.VectorRequest and additionally accepts "k" as
// an alias for "limit"; "limit" wins when both are set.
type vectorBody struct {
	Vector []float32 `json:"vector"`
	Field  string    `json:"field"`
	Limit  int       `json:"limit"`
	K      int       `json:"k"`
	Scores bool      `json:"scores"`
}

// handleVectorSearch handles POST /indexes/{index}/search_vector.
func (s *Server) handleVectorSearch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")

	var body vectorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(body.Vector) == 0 {
		writeError(w, http.StatusBadRequest, "vector must not be empty")
		return
	}

	limit := body.Limit
	if limit == 0 {
		limit = body.K
	}

	res, err := s.store.VectorSearch(r.Context(), name, query.VectorRequest{
		Vector:     body.Vector,
		Field:      body.Field,
		Limit:      limit,
		WithScores: body.Scores,
	})
	if err != nil {
		s.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleStoreError maps store errors onto the wire. A missing collection
// is answered 200 with an error body; anything else is an internal error.
func (s *Server) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, docdex.ErrIndexNotFound) {
		writeError(w, http.StatusOK, docdex.ErrIndexNotFound.Error())
		return
	}
	s.logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func boolParam(raw string) bool {
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}
