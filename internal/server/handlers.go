package server

import (
	"encoding/json"
	"net/http"

	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request",
		zap.String("query", query.Query),
		zap.Int("top_n", query.TopN),
		zap.Float64p("min_score", query.MinScore),
	)
	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		if query.Query == "" {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	qas := s.engine.Corpus()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": qas,
		"total":   len(qas),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"entries":    s.engine.CorpusSize(),
		"dimensions": s.engine.Dimensions(),
		"config": map[string]interface{}{
			"embedding_provider": s.config.Embedding.Provider,
			"embedding_model":    s.config.Embedding.Model,
			"default_top_n":      s.config.Search.DefaultTopN,
			"default_min_score":  s.config.Search.DefaultMinScore,
			"corpus_path":        s.config.Corpus.Path,
			"corpus_watch":       s.config.Corpus.Watch,
		},
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encoding failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
