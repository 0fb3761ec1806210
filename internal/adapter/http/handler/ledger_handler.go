package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cajafund/cajafund/internal/adapter/http/dto"
	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	AppendEntry(ctx context.Context, input usecase.AppendEntryInput) (*domain.LedgerEntry, error)
	EditEntry(ctx context.Context, id string, input usecase.EditEntryInput) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error)
	Totals(ctx context.Context, stream domain.Stream, from, to time.Time) (*domain.StreamTotals, error)
	MissingPeriods(ctx context.Context, memberID string, anchor time.Time) ([]domain.Month, error)
	CheckStream(ctx context.Context, stream domain.Stream) (*usecase.StreamCheck, error)
	RecalculateStream(ctx context.Context, stream domain.Stream) (int, error)
}

// LedgerHandler handles ledger stream HTTP requests. The same handler
// serves member savings streams and the fund-wide administrative stream;
// the stream is resolved from the route.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// streamFromRequest resolves the addressed stream. Routes mounted under
// /members/{id} address the member's savings stream; everything else is
// the administrative stream.
func streamFromRequest(r *http.Request) domain.Stream {
	if memberID := chi.URLParam(r, "id"); memberID != "" {
		return domain.SavingsStream(memberID)
	}

	return domain.AdminExpenseStream()
}

// Append appends an entry to the addressed stream.
func (h *LedgerHandler) Append(w http.ResponseWriter, r *http.Request) {
	var req dto.AppendEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerUC.AppendEntry(r.Context(), req.ToUseCaseInput(streamFromRequest(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to append entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Edit replaces the detail fields of one entry. Balances are left as they
// are; the check and recalculate endpoints are the repair path.
func (h *LedgerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.EditEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerUC.EditEntry(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to edit entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists the addressed stream's entries in reverse ledger order.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledgerUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		Stream: streamFromRequest(r),
		Limit:  parseIntQuery(r, "limit", usecase.DefaultPageLimit),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Totals aggregates the addressed stream over a date range. The range
// defaults to everything up to today.
func (h *LedgerHandler) Totals(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateQuery(r, "from", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'from' date (use YYYY-MM-DD)", err.Error())
		return
	}

	to, err := parseDateQuery(r, "to", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'to' date (use YYYY-MM-DD)", err.Error())
		return
	}

	totals, err := h.ledgerUC.Totals(r.Context(), streamFromRequest(r), from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalsFromDomain(totals))
}

// MissingPeriods reports the months without a savings contribution for a
// member, through the anchor month (today when absent).
func (h *LedgerHandler) MissingPeriods(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "missing member ID", "")
		return
	}

	anchor, err := parseDateQuery(r, "anchor", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'anchor' date (use YYYY-MM-DD)", err.Error())
		return
	}

	months, err := h.ledgerUC.MissingPeriods(r.Context(), memberID, anchor)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute missing periods", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MissingPeriodsFromDomain(memberID, months))
}

// Check recomputes the addressed stream's running balances and reports the
// entries whose cached balance diverges.
func (h *LedgerHandler) Check(w http.ResponseWriter, r *http.Request) {
	check, err := h.ledgerUC.CheckStream(r.Context(), streamFromRequest(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check stream", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StreamCheckFromUseCase(check))
}

// Recalculate rewrites the addressed stream's cached balances.
func (h *LedgerHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	fixed, err := h.ledgerUC.RecalculateStream(r.Context(), streamFromRequest(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to recalculate stream", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"fixed": fixed})
}
