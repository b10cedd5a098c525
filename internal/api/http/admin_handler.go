package http

import (
	"net/http"
)

// handleRunSweep triggers the overdue sweep outside its schedule.
// Restricted to business principals.
func (h *Handler) handleRunSweep(w http.ResponseWriter, r *http.Request) {
	if requireBusiness(w, r) == 0 {
		return
	}

	report, err := h.settlementSvc.RunOverdueSweep(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
