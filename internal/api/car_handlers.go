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

type CarHandler struct {
	Service *service.CarService
}

func NewCarHandler(svc *service.CarService) *CarHandler {
	return &CarHandler{Service: svc}
}

func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Service.ListCars()
	if err != nil {
		writeError(w, err, "Error al obtener los vehículos")
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	placa := mux.Vars(r)["placa"]
	car, err := h.Service.GetCarByPlaca(placa)
	if err != nil {
		writeError(w, err, "Error al obtener el vehículo")
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	car := db.Car{
		Nombre:          req.Nombre,
		Marca:           req.Marca,
		Modelo:          req.Modelo,
		Anio:            req.Anio,
		Color:           req.Color,
		Placa:           req.Placa,
		Valor:           req.Valor,
		Kilometraje:     req.Kilometraje,
		TipoCombustible: req.TipoCombustible,
		Transmision:     req.Transmision,
		NumeroPuertas:   req.NumeroPuertas,
	}
	car.UltimoChequeo = req.UltimoChequeo
	if err := h.Service.CreateCar(&car); err != nil {
		writeError(w, err, "Error al crear el vehículo")
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	placa := mux.Vars(r)["placa"]
	var req entities.UpdateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	car, err := h.Service.UpdateCar(placa, &req)
	if err != nil {
		writeError(w, err, "Error al actualizar el vehículo")
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	placa := mux.Vars(r)["placa"]
	if err := h.Service.DeleteCar(placa); err != nil {
		writeError(w, err, "Error al eliminar el vehículo")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehículo eliminado exitosamente."})
}

func (h *CarHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	placa := mux.Vars(r)["placa"]
	items, err := h.Service.ListMaintenance(placa)
	if err != nil {
		writeError(w, err, "Error al obtener los mantenimientos")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CarHandler) AddMaintenance(w http.ResponseWriter, r *http.Request) {
	placa := mux.Vars(r)["placa"]
	var req entities.MaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	if req.Fecha == nil || req.Descripcion == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "La fecha y descripción son obligatorias"})
		return
	}
	item, err := h.Service.AddMaintenance(placa, *req.Fecha, *req.Descripcion)
	if err != nil {
		writeError(w, err, "Error al registrar el mantenimiento")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *CarHandler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	var req entities.MaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	if err := h.Service.UpdateMaintenance(id, req.Fecha, req.Descripcion); err != nil {
		writeError(w, err, "Error al actualizar el mantenimiento")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Mantenimiento actualizado exitosamente."})
}

func (h *CarHandler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	if err := h.Service.DeleteMaintenance(id); err != nil {
		writeError(w, err, "Error al eliminar el mantenimiento")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Mantenimiento eliminado exitosamente."})
}
