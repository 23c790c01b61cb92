package handler

import (
	"net/http"

	"github.com/osse101/seedling/internal/logger"
	"github.com/osse101/seedling/internal/tree"
)

// HarvestRequest is the optional body of POST /api/harvest and /api/tree/reset.
// A body that does not decode counts as no credential.
type HarvestRequest struct {
	Password string `json:"pw"`
}

// TreeHandler serves the shared seedling
type TreeHandler struct {
	treeSvc tree.Service
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeSvc tree.Service) *TreeHandler {
	return &TreeHandler{treeSvc: treeSvc}
}

// GetTree returns the current state
// @Summary Get seedling state
// @Tags tree
// @Produce json
// @Success 200 {object} domain.TreeState
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /api/tree [get]
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	st, err := h.treeSvc.GetState(r.Context())
	if err != nil {
		respondServiceError(w, r, "get_tree", err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// Water attempts today's watering. Rule rejections are 200 with allowed=false.
// @Summary Water the seedling
// @Tags tree
// @Produce json
// @Success 200 {object} domain.WaterResult
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /api/water [post]
func (h *TreeHandler) Water(w http.ResponseWriter, r *http.Request) {
	res, err := h.treeSvc.Water(r.Context())
	if err != nil {
		respondServiceError(w, r, "water", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Harvest resets a ripe seedling. Credential via x-admin-pw header or body pw.
// @Summary Harvest the seedling
// @Tags tree
// @Accept json
// @Produce json
// @Param X-Admin-Pw header string false "Admin password"
// @Param request body HarvestRequest false "Admin password in body"
// @Success 200 {object} domain.HarvestResult
// @Failure 403 {object} ErrorResponse "Wrong credential"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /api/harvest [post]
func (h *TreeHandler) Harvest(w http.ResponseWriter, r *http.Request) {
	res, err := h.treeSvc.Harvest(r.Context(), adminCredential(r, bodyCredential(w, r)))
	if err != nil {
		respondServiceError(w, r, "harvest", err)
		return
	}

	logger.FromContext(r.Context()).Debug("Harvest handled", "ok", res.OK, "harvest_count", res.HarvestCount)
	respondJSON(w, http.StatusOK, res)
}

// Reset reinitialises the seedling, lifetime harvest count included
// @Summary Reset the seedling
// @Tags tree
// @Accept json
// @Produce json
// @Param X-Admin-Pw header string false "Admin password"
// @Param request body HarvestRequest false "Admin password in body"
// @Success 200 {object} domain.TreeState
// @Failure 403 {object} ErrorResponse "Wrong credential"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /api/tree/reset [post]
func (h *TreeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	st, err := h.treeSvc.Reset(r.Context(), adminCredential(r, bodyCredential(w, r)))
	if err != nil {
		respondServiceError(w, r, "reset", err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}
