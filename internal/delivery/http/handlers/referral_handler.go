package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/shopspring/decimal"
)

type ReferralHandler struct {
	referralUC domain.ReferralUsecase
}

func NewReferralHandler(referralUC domain.ReferralUsecase) *ReferralHandler {
	return &ReferralHandler{referralUC: referralUC}
}

type bonusShareResponse struct {
	Level     int             `json:"level"`
	PioneerID string          `json:"pioneer_id"`
	Rate      decimal.Decimal `json:"rate"`
}

func (h *ReferralHandler) GetBonusPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.referralUC.BonusPlan(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]bonusShareResponse, 0, len(plan))
	for _, share := range plan {
		out = append(out, bonusShareResponse{
			Level:     share.Level,
			PioneerID: share.PioneerID,
			Rate:      share.Rate,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *ReferralHandler) GetDownlineTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.referralUC.DownlineTree(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tree)
}

func (h *ReferralHandler) GetDownlineCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.referralUC.DownlineCount(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *ReferralHandler) GetReferralEarnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := h.referralUC.ReferralEarnings(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]decimal.Decimal{"earnings": earnings})
}
