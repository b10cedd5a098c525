package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"greenloop-backend/internal/security"
	"greenloop-backend/internal/service"
)

// Handler bundles every service the HTTP surface exposes.
type Handler struct {
	borrowSvc     service.BorrowService
	settlementSvc service.SettlementService
	walletSvc     service.WalletService
	noteSvc       service.NotificationService
	tokens        security.TokenManager
}

func NewHandler(
	borrowSvc service.BorrowService,
	settlementSvc service.SettlementService,
	walletSvc service.WalletService,
	noteSvc service.NotificationService,
	tokens security.TokenManager,
) *Handler {
	return &Handler{
		borrowSvc:     borrowSvc,
		settlementSvc: settlementSvc,
		walletSvc:     walletSvc,
		noteSvc:       noteSvc,
		tokens:        tokens,
	}
}

// Router wires all routes. Everything under /api/v1 except /health
// requires a bearer token.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(h.authMiddleware)

	api.HandleFunc("/borrows", h.handleCreateBorrow).Methods(http.MethodPost)
	api.HandleFunc("/borrows", h.handleListBorrows).Methods(http.MethodGet)
	api.HandleFunc("/borrows/{id:[0-9]+}", h.handleGetBorrow).Methods(http.MethodGet)
	api.HandleFunc("/borrows/{id:[0-9]+}/pickup", h.handleConfirmPickup).Methods(http.MethodPost)
	api.HandleFunc("/borrows/{id:[0-9]+}/cancel", h.handleCancelBorrow).Methods(http.MethodPost)
	api.HandleFunc("/borrows/{id:[0-9]+}/return", h.handleInitiateReturn).Methods(http.MethodPost)

	api.HandleFunc("/wallet", h.handleGetWallet).Methods(http.MethodGet)
	api.HandleFunc("/wallet/entries", h.handleListEntries).Methods(http.MethodGet)
	api.HandleFunc("/wallet/topup", h.handleTopUp).Methods(http.MethodPost)

	api.HandleFunc("/notifications", h.handleListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.handleMarkAsRead).Methods(http.MethodPost)

	api.HandleFunc("/admin/sweep", h.handleRunSweep).Methods(http.MethodPost)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
