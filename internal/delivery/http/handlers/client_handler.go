package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/usecase"
	"github.com/shopspring/decimal"
)

type ClientHandler struct {
	clientUC *usecase.DefaultClientUsecase
}

func NewClientHandler(clientUC *usecase.DefaultClientUsecase) *ClientHandler {
	return &ClientHandler{clientUC: clientUC}
}

type createClientRequest struct {
	Name         string          `json:"name"`
	Tier         string          `json:"tier"`
	Accounts     string          `json:"accounts"`
	MobileNumber string          `json:"mobile_number"`
	Address      string          `json:"address"`
	StartBalance decimal.Decimal `json:"start_balance"`
	ReferrerCode string          `json:"referrer_code"`
	Expiry       *time.Time      `json:"expiry"`
	Notes        string          `json:"notes"`
}

type updateClientRequest struct {
	Name         string     `json:"name"`
	Tier         string     `json:"tier"`
	Accounts     string     `json:"accounts"`
	MobileNumber string     `json:"mobile_number"`
	Address      string     `json:"address"`
	ReferrerCode string     `json:"referrer_code"`
	Expiry       *time.Time `json:"expiry"`
	Notes        string     `json:"notes"`
}

type clientResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Tier                string          `json:"tier"`
	Accounts            string          `json:"accounts"`
	MobileNumber        string          `json:"mobile_number"`
	Address             string          `json:"address"`
	StartBalance        decimal.Decimal `json:"start_balance"`
	CurrentEquity       decimal.Decimal `json:"current_equity"`
	WithdrawableBalance decimal.Decimal `json:"withdrawable_balance"`
	ReferrerID          string          `json:"referrer_id,omitempty"`
	ReferralCode        string          `json:"referral_code"`
	Expiry              *time.Time      `json:"expiry,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

func toClientResponse(client *domain.Client) clientResponse {
	return clientResponse{
		ID:                  client.ID,
		Name:                client.Name,
		Tier:                string(client.Tier),
		Accounts:            client.Accounts,
		MobileNumber:        client.MobileNumber,
		Address:             client.Address,
		StartBalance:        client.StartBalance,
		CurrentEquity:       client.CurrentEquity,
		WithdrawableBalance: client.WithdrawableBalance,
		ReferrerID:          client.ReferrerID,
		ReferralCode:        client.ReferralCode,
		Expiry:              client.Expiry,
		Notes:               client.Notes,
		CreatedAt:           client.CreatedAt,
	}
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	client, err := h.clientUC.CreateClient(r.Context(), usecase.CreateClientInput{
		Name:                 req.Name,
		Tier:                 domain.ClientTier(req.Tier),
		Accounts:             req.Accounts,
		MobileNumber:         req.MobileNumber,
		Address:              req.Address,
		StartBalance:         req.StartBalance,
		ReferrerReferralCode: req.ReferrerCode,
		Expiry:               req.Expiry,
		Notes:                req.Notes,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toClientResponse(client))
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	client, err := h.clientUC.UpdateClient(r.Context(), usecase.UpdateClientInput{
		ClientID:             chi.URLParam(r, "clientID"),
		Name:                 req.Name,
		Tier:                 domain.ClientTier(req.Tier),
		Accounts:             req.Accounts,
		MobileNumber:         req.MobileNumber,
		Address:              req.Address,
		ReferrerReferralCode: req.ReferrerCode,
		Expiry:               req.Expiry,
		Notes:                req.Notes,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientUC.GetClient(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientUC.ListClients(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, toClientResponse(client))
	}
	respondJSON(w, http.StatusOK, out)
}

type setCredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *ClientHandler) SetCredentials(w http.ResponseWriter, r *http.Request) {
	var req setCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	if err := h.clientUC.SetPortalCredentials(r.Context(), chi.URLParam(r, "clientID"), req.Username, req.Password); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *ClientHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	clientID, err := h.clientUC.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: fmt.Sprintf("authentication failed: %v", err)})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"client_id": clientID})
}
