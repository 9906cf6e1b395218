package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/service"
)

type ClientHandler struct {
	clientSvc service.ClientService
}

func NewClientHandler(clientSvc service.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

type clientListResponse struct {
	Data  []domain.Client `json:"data"`
	Count int32           `json:"count"`
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 32)
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 32)

	clients, count, err := h.clientSvc.ListClients(r.Context(), q.Get("search"), int32(limit), int32(offset))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientListResponse{Data: clients, Count: count})
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := decodeBody(r, &client); err != nil {
		writeError(w, err)
		return
	}
	if err := h.clientSvc.CreateClient(r.Context(), &client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := decodeBody(r, &client); err != nil {
		writeError(w, err)
		return
	}
	client.DNI = mux.Vars(r)["dni"]
	if err := h.clientSvc.UpdateClient(r.Context(), &client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clientSvc.DeleteClient(r.Context(), mux.Vars(r)["dni"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	trashed, err := h.clientSvc.ListTrash(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trashed)
}
