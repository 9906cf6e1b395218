package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"suitrental-backend/internal/security"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth      *AuthHandler
	Client    *ClientHandler
	Inventory *InventoryHandler
	Rental    *RentalHandler
	Sale      *SaleHandler
	Report    *ReportHandler
	Settings  *SettingsHandler
}

// NewRouter builds the full route table. Everything except login, health and
// artifact downloads sits behind the auth middleware.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/reports/files/{key}", h.Report.Download).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)
	api.HandleFunc("/auth/users", h.Auth.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/auth/users", h.Auth.CreateUser).Methods(http.MethodPost)

	api.HandleFunc("/dashboard/summary", h.Report.Summary).Methods(http.MethodGet)

	api.HandleFunc("/clients", h.Client.List).Methods(http.MethodGet)
	api.HandleFunc("/clients", h.Client.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients/{dni}", h.Client.Update).Methods(http.MethodPatch)
	api.HandleFunc("/clients/{dni}", h.Client.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/clients/trash/list", h.Client.ListTrash).Methods(http.MethodGet)

	api.HandleFunc("/inventory/articles", h.Inventory.ListArticles).Methods(http.MethodGet)
	api.HandleFunc("/inventory/articles/{id}/state", h.Inventory.TransitionArticle).Methods(http.MethodPatch)
	api.HandleFunc("/inventory/articles/{id}/maintenance", h.Inventory.EnterMaintenance).Methods(http.MethodPost)
	api.HandleFunc("/inventory/articles/{id}/history", h.Inventory.ArticleHistory).Methods(http.MethodGet)
	api.HandleFunc("/inventory/suits", h.Inventory.ListSuits).Methods(http.MethodGet)
	api.HandleFunc("/inventory/suits", h.Inventory.CreateSuit).Methods(http.MethodPost)
	api.HandleFunc("/inventory/suits/{id}", h.Inventory.UpdateSuit).Methods(http.MethodPatch)

	api.HandleFunc("/rentals", h.Rental.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals", h.Rental.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}", h.Rental.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/return", h.Rental.Close).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/items/{itemId}/state", h.Rental.CloseItem).Methods(http.MethodPost)

	api.HandleFunc("/sales", h.Sale.List).Methods(http.MethodGet)
	api.HandleFunc("/sales", h.Sale.Create).Methods(http.MethodPost)
	api.HandleFunc("/sales/{id}/return", h.Sale.RegisterReturn).Methods(http.MethodPost)

	api.HandleFunc("/reports", h.Report.Generate).Methods(http.MethodPost)
	api.HandleFunc("/reports/history", h.Report.History).Methods(http.MethodGet)

	api.HandleFunc("/settings", h.Settings.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.Settings.Update).Methods(http.MethodPut)

	return r
}
