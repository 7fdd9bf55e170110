// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/swiri/internal/domain/classifier"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// ModelStatusProvider reports whether classification is available.
type ModelStatusProvider interface {
	ModelStatus() classifier.Status
}

// StatsHandler handles stats and model status requests.
type StatsHandler struct {
	statsProvider StatsProvider
	modelProvider ModelStatusProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, modelProvider ModelStatusProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, modelProvider: modelProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}

// HandleModel handles GET /api/model requests.
func (h *StatsHandler) HandleModel(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.modelProvider.ModelStatus())
}
