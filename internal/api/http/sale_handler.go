package http

import (
	"net/http"

	"suitrental-backend/internal/service"
)

type SaleHandler struct {
	saleSvc service.SaleService
}

func NewSaleHandler(saleSvc service.SaleService) *SaleHandler {
	return &SaleHandler{saleSvc: saleSvc}
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.saleSvc.ListSales(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

type createSaleRequest struct {
	ClientDNI     string              `json:"client_dni"`
	TotalCents    int64               `json:"total_cents"`
	PaymentMethod string              `json:"payment_method"`
	Notes         string              `json:"notes"`
	Items         []rentalItemRequest `json:"items"`
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := service.CreateSaleInput{
		ClientDNI:     req.ClientDNI,
		TotalCents:    req.TotalCents,
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
	sale, err := h.saleSvc.CreateSale(r.Context(), claims.UserID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

type saleReturnRequest struct {
	ArticleID int32  `json:"article_id"`
	Reason    string `json:"reason"`
}

func (h *SaleHandler) RegisterReturn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req saleReturnRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ret, err := h.saleSvc.RegisterSaleReturn(r.Context(), id, req.ArticleID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ret)
}
