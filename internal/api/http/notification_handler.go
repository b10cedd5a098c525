package http

import (
	"net/http"
)

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	principalID, walletType := principalWallet(r)
	page, pageSize := pagination(r)

	notes, total, err := h.noteSvc.GetNotifications(r.Context(), principalID, walletType, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notes,
		"total":         total,
		"page":          page,
	})
}

func (h *Handler) handleMarkAsRead(w http.ResponseWriter, r *http.Request) {
	principalID, _ := principalWallet(r)

	if err := h.noteSvc.MarkAsRead(r.Context(), principalID, pathID(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
