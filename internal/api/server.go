// Package api exposes the gate check and tow sheet pipelines as a small
// REST service. Every request is an isolated pipeline run over the files
// it uploads; the server keeps no state between requests.
package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gatecheck/internal/pipeline"
	"gatecheck/internal/report"
	"gatecheck/internal/tow"
)

// maxUploadBytes bounds one multipart upload. A day's schedule is tiny;
// anything near this limit is the wrong file.
const maxUploadBytes = 16 << 20

// Server serves the pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
	log    *zap.Logger
	port   int
}

// Config holds server settings.
type Config struct {
	Port int
}

// New creates a Server around a pipeline Runner.
func New(runner *pipeline.Runner, log *zap.Logger, cfg Config) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{runner: runner, log: log, port: cfg.Port}
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	addr := ":" + strconv.Itoa(s.port)
	s.log.Info("gatecheck API starting", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Router())
}

// Router returns the configured chi router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/gatecheck", s.handleGateCheck)
		r.Post("/towsheet", s.handleTowSheet)
	})

	return r
}

// runResponse is the JSON envelope for one pipeline run.
type runResponse struct {
	RequestID string           `json:"request_id"`
	Sections  []report.Section `json:"sections"`

	// Instructions is set only for tow sheet runs.
	Instructions []tow.Instruction `json:"instructions,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleGateCheck runs the mismatch and rule-check flows over an uploaded
// plan and feed. Multipart fields: "plan" (file), "feed" (file), "date"
// (YYYY-MM-DD, the day the plan was generated for).
func (s *Server) handleGateCheck(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", r.FormValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	plan, planName, ok := formFile(w, r, "plan")
	if !ok {
		return
	}
	feed, feedName, ok := formFile(w, r, "feed")
	if !ok {
		return
	}

	sections, err := s.runner.GateCheck(r.Context(),
		pipeline.Input{Name: planName, Reader: plan},
		pipeline.Input{Name: feedName, Reader: feed},
		date)
	if err != nil {
		s.log.Warn("gate check failed", zap.String("request_id", reqID), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.log.Info("gate check done", zap.String("request_id", reqID), zap.Int("sections", len(sections)))
	writeJSON(w, http.StatusOK, runResponse{RequestID: reqID, Sections: sections})
}

// handleTowSheet runs tow inference over an uploaded turnaround schedule.
// Multipart field: "schedule" (file). With ?format=csv the response is the
// downloadable tow sheet instead of JSON.
func (s *Server) handleTowSheet(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}

	schedule, name, ok := formFile(w, r, "schedule")
	if !ok {
		return
	}

	sections, instructions, err := s.runner.TowSheet(r.Context(), pipeline.Input{Name: name, Reader: schedule})
	if err != nil {
		s.log.Warn("tow sheet failed", zap.String("request_id", reqID), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.log.Info("tow sheet done", zap.String("request_id", reqID), zap.Int("instructions", len(instructions)))

	if r.URL.Query().Get("format") == "csv" {
		var buf bytes.Buffer
		if err := tow.WriteCSV(&buf, instructions); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="tow_sheet.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	writeJSON(w, http.StatusOK, runResponse{RequestID: reqID, Sections: sections, Instructions: instructions})
}

// formFile fetches one uploaded file, writing the error response itself
// when the field is missing.
func formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing upload field "+strconv.Quote(field))
		return nil, "", false
	}
	return file, header.Filename, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
