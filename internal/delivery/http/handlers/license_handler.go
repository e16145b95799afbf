package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/usecase"
)

type LicenseHandler struct {
	licenseUC *usecase.DefaultLicenseUsecase
}

func NewLicenseHandler(licenseUC *usecase.DefaultLicenseUsecase) *LicenseHandler {
	return &LicenseHandler{licenseUC: licenseUC}
}

type issueLicenseRequest struct {
	Expiry    time.Time `json:"expiry"`
	Version   string    `json:"version"`
	AllowLive bool      `json:"allow_live"`
}

type licenseResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Key       string    `json:"key"`
	EncData   string    `json:"enc_data"`
	Version   string    `json:"version"`
	AllowLive bool      `json:"allow_live"`
	IssuedAt  time.Time `json:"issued_at"`
	Expiry    time.Time `json:"expiry"`
}

func toLicenseResponse(license *domain.License) licenseResponse {
	return licenseResponse{
		ID:        license.ID,
		ClientID:  license.ClientID,
		Key:       license.Key,
		EncData:   license.EncData,
		Version:   license.Version,
		AllowLive: license.AllowLive,
		IssuedAt:  license.IssuedAt,
		Expiry:    license.Expiry,
	}
}

func (h *LicenseHandler) IssueLicense(w http.ResponseWriter, r *http.Request) {
	var req issueLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Expiry.IsZero() {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "expiry is required"})
		return
	}

	license, err := h.licenseUC.IssueLicense(r.Context(), usecase.IssueLicenseInput{
		ClientID:  chi.URLParam(r, "clientID"),
		Expiry:    req.Expiry,
		Version:   req.Version,
		AllowLive: req.AllowLive,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toLicenseResponse(license))
}

func (h *LicenseHandler) ListLicenses(w http.ResponseWriter, r *http.Request) {
	licenses, err := h.licenseUC.ListLicenses(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]licenseResponse, 0, len(licenses))
	for _, license := range licenses {
		out = append(out, toLicenseResponse(license))
	}
	respondJSON(w, http.StatusOK, out)
}
