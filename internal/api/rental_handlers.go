package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentacar/internal/auth"
	"rentacar/internal/db"
	"rentacar/internal/entities"
	"rentacar/internal/service"
)

type RentalHandler struct {
	Service *service.RentalService
}

func NewRentalHandler(svc *service.RentalService) *RentalHandler {
	return &RentalHandler{Service: svc}
}

func (h *RentalHandler) CreateByEmployee(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	resp, err := h.Service.CreateByEmployee(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Error al crear el alquiler")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *RentalHandler) CreateByClient(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}
	var req entities.CreateRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	// El alquiler se factura a la sesión autenticada, no a lo que diga el
	// cuerpo de la petición.
	req.ClienteID = identity.UserID
	resp, err := h.Service.CreateByClient(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Error al crear el alquiler")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *RentalHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	resp, err := h.Service.Authorize(r.Context(), id)
	if err != nil {
		writeError(w, err, "Error al autorizar el alquiler")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RentalHandler) ReturnVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	var req entities.ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	resp, err := h.Service.ReturnVehicle(r.Context(), id, req.Partes)
	if err != nil {
		writeError(w, err, "Error al procesar la devolución")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RentalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	var req entities.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	rental, err := h.Service.UpdateStatus(id, req.Estado)
	if err != nil {
		writeError(w, err, "Ocurrió un error al actualizar el estado de la renta")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Estado de la renta actualizado exitosamente.",
		"rental":  rental,
	})
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.Service.GetRentals()
	if err != nil {
		writeError(w, err, "Error al obtener los alquileres")
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	rental, err := h.Service.GetRental(id)
	if err != nil {
		writeError(w, err, "Error al obtener el alquiler")
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) GetInspections(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "ID inválido"})
		return
	}
	partes, err := h.Service.GetInspections(id)
	if err != nil {
		writeError(w, err, "Error al obtener la inspección")
		return
	}
	writeJSON(w, http.StatusOK, partes)
}

func (h *RentalHandler) GetRentalsByClient(w http.ResponseWriter, r *http.Request) {
	clienteID, err := strconv.Atoi(mux.Vars(r)["clienteId"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "El ID del cliente es obligatorio"})
		return
	}
	// Un cliente sólo puede consultar sus propios alquileres; el personal
	// puede consultar los de cualquier cliente.
	if identity, ok := auth.FromContext(r.Context()); ok && identity.Rol == db.RolCliente {
		clienteID = identity.UserID
	}
	rentals, err := h.Service.GetRentalsByCliente(clienteID)
	if err != nil {
		writeError(w, err, "Error al obtener los alquileres del cliente")
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}
