package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	"rentacar/internal/service"
)

type RateHandler struct {
	Service *service.RateService
}

func NewRateHandler(svc *service.RateService) *RateHandler {
	return &RateHandler{Service: svc}
}

func (h *RateHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Service.ListRates()
	if err != nil {
		writeError(w, err, "Error al obtener las tarifas")
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (h *RateHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	rate, err := h.Service.GetRate(id)
	if err != nil {
		writeError(w, err, "Error al obtener la tarifa")
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

func (h *RateHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	var rate db.Rate
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	if err := h.Service.CreateRate(&rate); err != nil {
		writeError(w, err, "Error al crear la tarifa")
		return
	}
	writeJSON(w, http.StatusCreated, rate)
}

func (h *RateHandler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	var req entities.UpdateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	rate, err := h.Service.UpdateRate(id, &req)
	if err != nil {
		writeError(w, err, "Error al actualizar la tarifa")
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

func (h *RateHandler) DeleteRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	if err := h.Service.DeleteRate(id); err != nil {
		writeError(w, err, "Error al eliminar la tarifa")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tarifa eliminada exitosamente."})
}
