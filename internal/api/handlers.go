package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/sumtree/internal/parser"
)

type processRequest struct {
	Path  string `json:"path"`
	Force bool   `json:"force"`
}

// handleProcess runs the full pipeline for a document, synchronously, and
// returns the resulting tree. Cache hits return without any model calls.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}
	if !parser.IsSupportedExtension(req.Path) {
		jsonError(w, "unsupported file type", http.StatusBadRequest)
		return
	}

	tree, err := s.orchestrator.Process(r.Context(), req.Path, req.Force)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "document not found: "+req.Path, http.StatusNotFound)
			return
		}
		s.log.Error("processing failed", "document", req.Path, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tree)
}

// handleDocument returns the cached tree for a document by name.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tree := s.orchestrator.Cache().Load(name)
	if tree == nil {
		jsonError(w, "document not processed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tree)
}

// handleLevel returns one abstraction level of a cached tree, in reading
// order. This is the zoom operation a viewer performs.
func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || level < 0 {
		jsonError(w, "level must be a non-negative integer", http.StatusBadRequest)
		return
	}

	tree := s.orchestrator.Cache().Load(name)
	if tree == nil {
		jsonError(w, "document not processed", http.StatusNotFound)
		return
	}
	if level > tree.MaxLevel() {
		jsonError(w, "level exceeds tree depth", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document":  tree.Metadata.Filename,
		"level":     level,
		"max_level": tree.MaxLevel(),
		"chunks":    tree.Level(level),
	})
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.client == nil || s.client.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"model": s.client.Model(),
		"stats": s.client.Stats.Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
