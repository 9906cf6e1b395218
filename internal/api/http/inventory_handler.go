package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
	"suitrental-backend/internal/service"
)

type InventoryHandler struct {
	inventorySvc service.InventoryService
}

func NewInventoryHandler(inventorySvc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation
	}
	return int32(id), nil
}

func (h *InventoryHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ArticleFilter{
		State:  domain.ArticleState(q.Get("state")),
		Search: q.Get("search"),
	}
	if raw := q.Get("type"); raw != "" {
		typeID, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeError(w, domain.ErrValidation)
			return
		}
		filter.TypeID = int32(typeID)
	}

	articles, err := h.inventorySvc.ListArticles(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

type transitionRequest struct {
	State     domain.ArticleState `json:"state"`
	HoldHours *int32              `json:"hold_hours,omitempty"`
	Reason    string              `json:"reason"`
	Comment   string              `json:"comment"`
}

func (h *InventoryHandler) TransitionArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req transitionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := operatorFromContext(r.Context())
	article, err := h.inventorySvc.TransitionArticle(r.Context(), claims.UserID, service.TransitionInput{
		ArticleID: id,
		Target:    req.State,
		HoldHours: req.HoldHours,
		Reason:    req.Reason,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

type maintenanceRequest struct {
	Hours   int32  `json:"hours"`
	Comment string `json:"comment"`
}

func (h *InventoryHandler) EnterMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req maintenanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := operatorFromContext(r.Context())
	article, err := h.inventorySvc.EnterMaintenance(r.Context(), claims.UserID, id, req.Hours, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *InventoryHandler) ArticleHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.inventorySvc.ArticleHistory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *InventoryHandler) ListSuits(w http.ResponseWriter, r *http.Request) {
	suits, err := h.inventorySvc.ListSuits(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suits)
}

type suitRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Active      *bool              `json:"active,omitempty"`
	Pieces      []domain.SuitPiece `json:"pieces"`
}

func (h *InventoryHandler) CreateSuit(w http.ResponseWriter, r *http.Request) {
	var req suitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	suit := &domain.Suit{
		Name:        req.Name,
		Description: req.Description,
		Pieces:      req.Pieces,
	}
	if err := h.inventorySvc.CreateSuit(r.Context(), suit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, suit)
}

func (h *InventoryHandler) UpdateSuit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req suitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	suit, err := h.inventorySvc.UpdateSuit(r.Context(), &domain.Suit{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Active:      active,
	}, req.Pieces)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suit)
}
