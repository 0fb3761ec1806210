package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cajafund/cajafund/internal/adapter/http/dto"
	"github.com/cajafund/cajafund/internal/usecase"
)

// RepaymentService defines the behavior needed by RepaymentHandler.
type RepaymentService interface {
	RecordPayment(ctx context.Context, installmentID string, input usecase.RecordPaymentInput) (*usecase.PaymentResult, error)
}

// RepaymentHandler handles installment payment HTTP requests.
type RepaymentHandler struct {
	repaymentUC RepaymentService
}

// NewRepaymentHandler creates a new RepaymentHandler.
func NewRepaymentHandler(repaymentUC RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{repaymentUC: repaymentUC}
}

// Pay marks an installment as paid. Paying the final open installment
// terminates the loan and distributes its interest.
func (h *RepaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing installment ID", "")
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.repaymentUC.RecordPayment(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromUseCase(result))
}
