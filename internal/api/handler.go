package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"flightriskradar/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const errModelRequired = "Aircraft model parameter is required"

// Resolver maps a free-text model to a canonical code and its record.
// ok is false when the generic fallback is returned.
type Resolver interface {
	Lookup(model string) (code string, record models.AircraftRecord, ok bool)
}

// Handler serves aircraft image lookups
type Handler struct {
	resolver Resolver
	logger   *slog.Logger
}

// NewHandler creates a new aircraft images handler
func NewHandler(resolver Resolver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		resolver: resolver,
		logger:   logger.With("component", "api"),
	}
}

// Routes returns the router for the service. The lookup is served at the
// root path, where existing cloud function clients call it, and under
// /api/aircraft-images.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.recoverJSON)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Path %s not found", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed", r.Method))
	})

	r.Get("/healthz", h.GetHealth)

	for _, path := range []string{"/", "/api/aircraft-images"} {
		r.Options(path, h.Preflight)
		r.Get(path, h.GetAircraftImage)
	}

	return r
}

// Preflight answers CORS preflight requests with an empty body
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type")
	header.Set("Access-Control-Max-Age", "3600")
	w.WriteHeader(http.StatusNoContent)
}

// GetAircraftImage returns the image record for the model query parameter
func (h *Handler) GetAircraftImage(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	if model == "" {
		writeError(w, http.StatusBadRequest, errModelRequired)
		return
	}

	code, record, ok := h.resolver.Lookup(model)
	h.logger.Debug("Resolved aircraft model",
		"model", model,
		"code", code,
		"matched", ok,
		"request_id", middleware.GetReqID(r.Context()),
	)

	WriteJSON(w, http.StatusOK, models.AircraftImageResponse{
		Success:       true,
		AircraftModel: model,
		AircraftCode:  code,
		Data:          record,
	})
}

// GetHealth reports that the service is up
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recoverJSON turns a panic in a handler into a 500 failure body
func (h *Handler) recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			var msg string
			switch v := rec.(type) {
			case error:
				msg = v.Error()
			default:
				msg = fmt.Sprint(v)
			}

			h.logger.Error("Request failed",
				"path", r.URL.Path,
				"error", msg,
				"request_id", middleware.GetReqID(r.Context()),
			)
			writeError(w, http.StatusInternalServerError, msg)
		}()

		next.ServeHTTP(w, r)
	})
}

// WriteJSON writes a JSON response with the cross-origin header set
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(models.ErrorResponse{Success: false, Error: err.Error()})
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, models.ErrorResponse{Success: false, Error: message})
}
