package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/aissantos/finansix-web-sub000/pkg/config"
	"github.com/aissantos/finansix-web-sub000/pkg/csv"
	"github.com/aissantos/finansix-web-sub000/pkg/dedup"
	"github.com/aissantos/finansix-web-sub000/pkg/models"
	"github.com/aissantos/finansix-web-sub000/pkg/parser"
)

// Server exposes the statement parsing and deduplication engine over HTTP.
type Server struct {
	config   *config.Config
	logger   *log.Logger
	mux      *http.ServeMux
	registry *parser.Registry

	// parsed transactions cached per filename for later CSV download
	results sync.Map
}

// New creates a new HTTP server.
func New(config *config.Config, logger *log.Logger) *Server {
	return &Server{
		config:   config,
		logger:   logger,
		mux:      http.NewServeMux(),
		registry: parser.NewRegistry(logger),
	}
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/", s.withLogging(s.handleStatus))
	s.mux.HandleFunc("/api/parse", s.withLogging(s.handleParse))
	s.mux.HandleFunc("/api/dedup", s.withLogging(s.handleDedup))
	s.mux.HandleFunc("/api/files/", s.withLogging(s.handleFiles))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// ---------------- parse handler ----------------

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	text, filename, err := readStatement(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to read statement text", err)
		return
	}

	result := s.registry.Parse(text)
	sort.Slice(result.Transactions, func(i, j int) bool {
		return result.Transactions[i].Date < result.Transactions[j].Date
	})

	csvName := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".csv"
	s.results.Store(csvName, result.Transactions)

	s.logger.Info("statement processed", "file", filename,
		"bank", result.BankName, "transactions", len(result.Transactions))

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"file":   csvName,
		"data":   result,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// readStatement accepts either a multipart "statement" file upload or the
// raw request body as the statement text.
func readStatement(r *http.Request) (text, filename string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("statement")
		if err != nil {
			return "", "", err
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", "", err
		}
		return string(data), header.Filename, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", "", err
	}
	return string(data), "statement.txt", nil
}

// ---------------- dedup handler ----------------

type dedupRequest struct {
	Imported  []models.Transaction         `json:"imported"`
	Existing  []models.ExistingTransaction `json:"existing"`
	Threshold int                          `json:"threshold"`
}

func (s *Server) handleDedup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req dedupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	threshold := req.Threshold
	if threshold <= 0 {
		threshold = s.config.Threshold
	}

	matches := dedup.FindDuplicates(req.Imported, req.Existing, threshold)
	s.logger.Info("dedup complete", "imported", len(req.Imported),
		"existing", len(req.Existing), "matches", len(matches))

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"matches": matches,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// ---------------- file download handler ----------------

// handleFiles serves the generated CSV for a previously parsed statement.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if filename == "" {
		s.respondError(w, r, http.StatusBadRequest, "filename required", nil)
		return
	}

	value, ok := s.results.Load(filename)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "file not found", nil)
		return
	}
	txs, ok := value.([]models.Transaction)
	if !ok {
		s.respondError(w, r, http.StatusInternalServerError, "internal type assertion error", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(csv.Create(txs, nil)); err != nil {
		s.logger.Warn("failed to write csv response", "err", err)
	}
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
