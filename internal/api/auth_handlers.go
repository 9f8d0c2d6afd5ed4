package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentacar/internal/entities"
	"rentacar/internal/service"
)

type AuthHandler struct {
	Service service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	user, err := h.Service.Register(&req)
	if err != nil {
		writeError(w, err, "Error al registrar el usuario")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Usuario registrado exitosamente.",
		"user":    user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	token, user, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err, "Error al iniciar sesión")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sesión cerrada exitosamente."})
}

// CreateUser is the admin-side counterpart of Register: it can assign any
// role, so the route must stay behind the admin gate.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	user, err := h.Service.CreateUser(&req)
	if err != nil {
		writeError(w, err, "Error al crear el usuario")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Usuario creado exitosamente.",
		"user":    user,
	})
}

func (h *AuthHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	cedula := mux.Vars(r)["cedula"]
	if err := h.Service.DeactivateUser(cedula); err != nil {
		writeError(w, err, "Error al desactivar el usuario")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Usuario desactivado exitosamente."})
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers()
	if err != nil {
		writeError(w, err, "Error al obtener los usuarios")
		return
	}
	writeJSON(w, http.StatusOK, users)
}
