package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"greenloop-backend/internal/settlement"
)

type createBorrowRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *Handler) handleCreateBorrow(w http.ResponseWriter, r *http.Request) {
	customerID := requireCustomer(w, r)
	if customerID == 0 {
		return
	}

	var req createBorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	bt, err := h.borrowSvc.CreateBorrow(r.Context(), customerID, req.ProductID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bt)
}

func (h *Handler) handleListBorrows(w http.ResponseWriter, r *http.Request) {
	customerID := requireCustomer(w, r)
	if customerID == 0 {
		return
	}

	page, pageSize := pagination(r)
	state := r.URL.Query().Get("state")

	borrows, total, err := h.borrowSvc.ListBorrows(r.Context(), customerID, state, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"borrows": borrows,
		"total":   total,
		"page":    page,
	})
}

func (h *Handler) handleGetBorrow(w http.ResponseWriter, r *http.Request) {
	customerID := requireCustomer(w, r)
	if customerID == 0 {
		return
	}

	bt, err := h.borrowSvc.GetBorrow(r.Context(), customerID, pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bt)
}

func (h *Handler) handleConfirmPickup(w http.ResponseWriter, r *http.Request) {
	customerID := requireCustomer(w, r)
	if customerID == 0 {
		return
	}

	bt, err := h.borrowSvc.ConfirmPickup(r.Context(), customerID, pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bt)
}

func (h *Handler) handleCancelBorrow(w http.ResponseWriter, r *http.Request) {
	customerID := requireCustomer(w, r)
	if customerID == 0 {
		return
	}

	bt, err := h.borrowSvc.CancelBorrow(r.Context(), customerID, pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bt)
}

type initiateReturnRequest struct {
	Observations settlement.Observations `json:"observations"`
}

// handleInitiateReturn is called from the business-side station after
// the returned unit has been inspected face by face.
func (h *Handler) handleInitiateReturn(w http.ResponseWriter, r *http.Request) {
	customerID := requireCustomer(w, r)
	if customerID == 0 {
		return
	}

	var req initiateReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.settlementSvc.InitiateReturn(r.Context(), customerID, pathID(r), req.Observations)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func pagination(r *http.Request) (int32, int32) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return int32(page), int32(pageSize)
}
