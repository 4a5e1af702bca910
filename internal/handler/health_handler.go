package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Beneli93/kvs-backend/internal/store"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store    *store.Store
	dataFile string
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(st *store.Store, dataFile string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:    st,
		dataFile: dataFile,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Customers int    `json:"customers"`
	DataFile  string `json:"data_file"`
}

// Health handles GET /health. The data file missing is healthy (first
// run, nothing persisted yet); an existing file that cannot be opened
// for writing is not, since the next mutation could not be persisted.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Customers: h.store.Len(),
		DataFile:  h.dataFile,
	}

	// Append mode probes writability without touching the contents.
	f, err := os.OpenFile(h.dataFile, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if !os.IsNotExist(err) {
			h.logger.Error("data file health check failed", slog.String("error", err.Error()))
			response.Status = "unhealthy"
			respondJSON(w, http.StatusServiceUnavailable, response)
			return
		}
	} else {
		f.Close()
	}

	respondSuccess(w, response)
}
