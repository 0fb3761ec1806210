package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cajafund/cajafund/internal/adapter/http/dto"
	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/usecase"
)

// FundConfigService defines the behavior needed by FundConfigHandler.
type FundConfigService interface {
	Current(ctx context.Context) (*domain.FundConfiguration, error)
	Update(ctx context.Context, input usecase.UpdateFundConfigInput) (*domain.FundConfiguration, error)
	Reload(ctx context.Context) error
}

// FundConfigHandler handles fund configuration HTTP requests.
type FundConfigHandler struct {
	configUC FundConfigService
}

// NewFundConfigHandler creates a new FundConfigHandler.
func NewFundConfigHandler(configUC FundConfigService) *FundConfigHandler {
	return &FundConfigHandler{configUC: configUC}
}

// Get returns the current fund configuration.
func (h *FundConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configUC.Current(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get configuration", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FundConfigFromDomain(cfg))
}

// Update replaces the fund configuration. Already approved loans keep the
// rate stamped on them.
func (h *FundConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFundConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cfg, err := h.configUC.Update(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update configuration", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FundConfigFromDomain(cfg))
}

// Reload drops the cached configuration copy.
func (h *FundConfigHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.configUC.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reload configuration", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
