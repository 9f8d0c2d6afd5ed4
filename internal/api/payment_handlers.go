package api

import (
	"net/http"

	"rentacar/internal/service"
)

type PaymentHandler struct {
	Service *service.RentalService
}

func NewPaymentHandler(svc *service.RentalService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// Capture es la URL de retorno de PayPal: el comprador aprobó la orden y
// PayPal redirige con ?token=<orderID>.
func (h *PaymentHandler) Capture(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Falta el token de pago"})
		return
	}
	rental, err := h.Service.HandleCapture(r.Context(), token)
	if err != nil {
		writeError(w, err, "Error al capturar el pago")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Pago procesado exitosamente.",
		"rental":  rental,
	})
}

func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "El pago fue cancelado. Puedes intentarlo nuevamente desde tu reserva.",
	})
}
