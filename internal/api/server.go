package api

import (
	"fmt"
	"net"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"

	"fastpath/internal/lookup"
	"fastpath/internal/metrics"
	"fastpath/pkg/matcher"
)

const maxBodyBytes = 32 << 20

type EntriesRequest struct {
	Entries []matcher.Entry `json:"entries"`
}

type Server struct {
	addr     string
	verbose  bool
	maxConns int
	handler  *lookup.Handler
}

func NewServer(addr string, verbose bool, maxConns int, handler *lookup.Handler) *Server {
	return &Server{
		addr:     addr,
		verbose:  verbose,
		maxConns: maxConns,
		handler:  handler,
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/entries", s.handleInsert)
	mux.HandleFunc("PUT /api/entries", s.handleReplace)
	mux.HandleFunc("DELETE /api/entries", s.handleClear)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/size", s.handleSize)
	return mux
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("api listen on %s: %w", s.addr, err)
	}
	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}

	log.Info().Msgf("API server listening on %s", s.addr)

	return http.Serve(ln, s.Handler())
}

func (s *Server) decodeEntries(w http.ResponseWriter, r *http.Request) ([]matcher.Entry, bool) {
	var req EntriesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeDecode).Inc()
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return req.Entries, true
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	entries, ok := s.decodeEntries(w, r)
	if !ok {
		return
	}
	if len(entries) == 0 {
		http.Error(w, "Entries cannot be empty", http.StatusBadRequest)
		return
	}

	size := s.handler.Insert(entries)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"inserted": len(entries),
		"size":     size,
	})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	entries, ok := s.decodeEntries(w, r)
	if !ok {
		return
	}
	if s.verbose {
		log.Info().Msgf("Received replace request with %d entries", len(entries))
	}

	size := s.handler.Replace(entries, metrics.SourceAPI)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"inserted": len(entries),
		"size":     size,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.handler.Clear()
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "size": 0})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("q") {
		http.Error(w, "Missing query parameter q", http.StatusBadRequest)
		return
	}

	resp := lookup.NewResponse(s.handler.Search(q.Get("q"), "http"))
	status := http.StatusOK
	if !resp.Matched {
		status = http.StatusNotFound
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleSize(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"size": s.handler.Size()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeClientWrite).Inc()
		log.Err(err).Msg("Failed to write API response")
	}
}
