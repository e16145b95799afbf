package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	ledgerUC domain.LedgerUsecase
}

func NewLedgerHandler(ledgerUC domain.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

type recordProfitRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date"`
}

func (h *LedgerHandler) RecordProfit(w http.ResponseWriter, r *http.Request) {
	var req recordProfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	input := domain.RecordProfitInput{
		ClientID: chi.URLParam(r, "clientID"),
		Amount:   req.Amount,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	distribution, err := h.ledgerUC.RecordProfit(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, distribution)
}

type profitEntryResponse struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Profit      decimal.Decimal `json:"profit"`
	ClientShare decimal.Decimal `json:"client_share"`
	OwnerShare  decimal.Decimal `json:"owner_share"`
	Bonus       decimal.Decimal `json:"bonus"`
	Date        time.Time       `json:"date"`
}

func (h *LedgerHandler) GetProfitHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledgerUC.GetProfitHistory(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]profitEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, profitEntryResponse{
			ID:          entry.ID,
			ClientID:    entry.ClientID,
			Profit:      entry.Profit,
			ClientShare: entry.ClientShare,
			OwnerShare:  entry.OwnerShare,
			Bonus:       entry.Bonus,
			Date:        entry.Date,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

type requestWithdrawalRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method"`
	Details string          `json:"details"`
}

func (h *LedgerHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req requestWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	withdrawalID, err := h.ledgerUC.RequestWithdrawal(r.Context(), domain.RequestWithdrawalInput{
		ClientID: chi.URLParam(r, "clientID"),
		Amount:   req.Amount,
		Method:   req.Method,
		Details:  req.Details,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"withdrawal_id": withdrawalID})
}

type transitionWithdrawalRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
	Note   string `json:"note"`
}

func (h *LedgerHandler) TransitionWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req transitionWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	err := h.ledgerUC.TransitionWithdrawal(r.Context(), domain.TransitionWithdrawalInput{
		WithdrawalID: chi.URLParam(r, "withdrawalID"),
		NewStatus:    domain.WithdrawalStatus(req.Status),
		Actor:        req.Actor,
		Note:         req.Note,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

type withdrawalResponse struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method,omitempty"`
	Details     string          `json:"details,omitempty"`
	Status      string          `json:"status"`
	Note        string          `json:"note,omitempty"`
	RequestedAt time.Time       `json:"requested_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	ProcessedBy string          `json:"processed_by,omitempty"`
}

func toWithdrawalResponses(withdrawals []*domain.Withdrawal) []withdrawalResponse {
	out := make([]withdrawalResponse, 0, len(withdrawals))
	for _, wd := range withdrawals {
		out = append(out, withdrawalResponse{
			ID:          wd.ID,
			ClientID:    wd.ClientID,
			Amount:      wd.Amount,
			Method:      wd.Method,
			Details:     wd.Details,
			Status:      string(wd.Status),
			Note:        wd.Note,
			RequestedAt: wd.RequestedAt,
			ProcessedAt: wd.ProcessedAt,
			ProcessedBy: wd.ProcessedBy,
		})
	}
	return out
}

func (h *LedgerHandler) GetWithdrawalHistory(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.ledgerUC.GetWithdrawalHistory(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toWithdrawalResponses(withdrawals))
}

// ListWithdrawals serves the processing queue, filtered by ?status=. An
// empty filter defaults to Pending, the queue the owner works through.
func (h *LedgerHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	status := domain.WithdrawalStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.WithdrawalPending
	}
	withdrawals, err := h.ledgerUC.ListWithdrawalsByStatus(r.Context(), status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toWithdrawalResponses(withdrawals))
}
