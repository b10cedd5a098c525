package http

import (
	"encoding/json"
	"net/http"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/security"
)

func principalWallet(r *http.Request) (int64, domain.WalletType) {
	claims := claimsFrom(r)
	if claims == nil {
		return 0, ""
	}
	if claims.PrincipalType == security.PrincipalBusiness {
		return claims.PrincipalID, domain.WalletTypeBusiness
	}
	return claims.PrincipalID, domain.WalletTypeCustomer
}

func (h *Handler) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	principalID, walletType := principalWallet(r)
	wallet, err := h.walletSvc.GetWallet(r.Context(), principalID, walletType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	principalID, walletType := principalWallet(r)
	page, pageSize := pagination(r)

	entries, total, err := h.walletSvc.ListEntries(r.Context(), principalID, walletType, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   total,
		"page":    page,
	})
}

type topUpRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) handleTopUp(w http.ResponseWriter, r *http.Request) {
	principalID, walletType := principalWallet(r)

	var req topUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wallet, err := h.walletSvc.TopUp(r.Context(), principalID, walletType, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}
