package http

import (
	"net/http"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	rentals, err := h.rentalSvc.ListRentals(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type rentalItemRequest struct {
	ArticleID     int32  `json:"article_id"`
	ArticleTypeID int32  `json:"article_type_id"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"price_cents"`
}

type createRentalRequest struct {
	ClientDNI     string              `json:"client_dni"`
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	TotalCents    int64               `json:"total_cents"`
	DepositCents  int64               `json:"deposit_cents"`
	PaymentMethod string              `json:"payment_method"`
	Notes         string              `json:"notes"`
	Items         []rentalItemRequest `json:"items"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := service.CreateRentalInput{
		ClientDNI:     req.ClientDNI,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalCents:    req.TotalCents,
		DepositCents:  req.DepositCents,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{
			ArticleID:     item.ArticleID,
			ArticleTypeID: item.ArticleTypeID,
			Description:   item.Description,
			PriceCents:    item.PriceCents,
		})
	}

	claims := operatorFromContext(r.Context())
	rental, err := h.rentalSvc.CreateRental(r.Context(), claims.UserID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

type closeRentalRequest struct {
	Status domain.RentalStatus `json:"status"`
}

func (h *RentalHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req closeRentalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := operatorFromContext(r.Context())
	rental, err := h.rentalSvc.CloseRental(r.Context(), claims.UserID, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type closeItemRequest struct {
	Status        domain.RentalItemStatus `json:"status"`
	RetainedCents int64                   `json:"retained_cents"`
	Comment       string                  `json:"comment"`
}

func (h *RentalHandler) CloseItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}
	var req closeItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := operatorFromContext(r.Context())
	item, err := h.rentalSvc.CloseRentalItem(r.Context(), claims.UserID, service.CloseItemInput{
		ItemID:        itemID,
		Status:        req.Status,
		RetainedCents: req.RetainedCents,
		Comment:       req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
