package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"filegrip/internal/domain"
	"filegrip/internal/server/metrics"
	"filegrip/internal/server/storage"
)

// pageResponse is the body of /api/search and /api/latest.
type pageResponse struct {
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
	Items   []domain.FileRecord `json:"items"`
}

// linkResponse is the body of /api/send_link/{id}.
type linkResponse struct {
	Link string `json:"link"`
}

// handleSearch serves GET /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	metrics.CountSearchQuery()

	q := domain.Query{
		Text: strings.TrimSpace(r.URL.Query().Get("q")),
		Type: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))),
	}

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		q.Year = year
	}

	switch r.URL.Query().Get("sort") {
	case "", string(domain.SortDesc):
		q.Sort = domain.SortDesc
	case string(domain.SortAsc):
		q.Sort = domain.SortAsc
	default:
		writeError(w, http.StatusBadRequest, "sort must be asc or desc")
		return
	}

	page, perPage := pagination(r)

	records, err := s.store.Search(r.Context(), q, page, perPage)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Page:    page,
		PerPage: perPage,
		Items:   emptyIfNil(records),
	})
}

// handleLatest serves GET /api/latest.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)

	records, err := s.store.Latest(r.Context(), page, perPage)
	if err != nil {
		s.logger.Error("latest failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Page:    page,
		PerPage: perPage,
		Items:   emptyIfNil(records),
	})
}

// handleSendLink serves GET /api/send_link/{id}. The record must exist; the
// link itself is just the configured bot prefix plus the id.
func (s *Server) handleSendLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.logger.Error("record lookup failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, linkResponse{Link: s.botLink + rec.ID})
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pagination(r *http.Request) (page, perPage int) {
	page = 1
	perPage = 20

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		perPage = v
	}
	if perPage > storage.MaxPerPage {
		perPage = storage.MaxPerPage
	}
	return page, perPage
}

func emptyIfNil(records []domain.FileRecord) []domain.FileRecord {
	if records == nil {
		return []domain.FileRecord{}
	}
	return records
}
