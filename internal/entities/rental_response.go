package entities

import "time"

// RentalResponse is the joined read model returned by the list/detail
// endpoints (cliente, auto y tarifa resueltos por nombre).
type RentalResponse struct {
	ID                 int        `json:"id"`
	Codigo             string     `json:"codigo"`
	ClienteID          int        `json:"cliente_id"`
	ClienteNombre      string     `json:"cliente"`
	ClienteEmail       string     `json:"cliente_email,omitempty"`
	ClienteTelefono    string     `json:"cliente_telefono,omitempty"`
	CarID              int        `json:"auto_id"`
	CarNombre          string     `json:"auto"`
	Placa              string     `json:"placa"`
	RateID             int        `json:"tarifa_id"`
	Tarifa             float64    `json:"tarifa"`
	FechaInicio        time.Time  `json:"fecha_inicio"`
	FechaFin           time.Time  `json:"fecha_fin"`
	Estado             string     `json:"estado"`
	Subtotal           float64    `json:"subtotal"`
	Deposito           float64    `json:"deposito"`
	FechaDevolucion    *time.Time `json:"fecha_devolucion,omitempty"`
	PenalizacionDanios float64    `json:"penalizacion_danios"`
	PenalizacionDias   float64    `json:"penalizacion_dias"`
	Total              float64    `json:"total"`
}

// RentalPaymentResponse is returned by the creation/authorization endpoints:
// the persisted rental plus the gateway redirect the caller must follow to
// pay the deposit.
type RentalPaymentResponse struct {
	RentalID   int     `json:"rental_id"`
	Codigo     string  `json:"codigo"`
	Estado     string  `json:"estado"`
	Subtotal   float64 `json:"subtotal"`
	Deposito   float64 `json:"deposito"`
	OrderID    string  `json:"order_id"`
	PaymentURL string  `json:"payment_url"`
}

// ReturnResponse carries the figures computed at return time. PaymentURL is
// empty when the remaining balance was zero or negative and the rental was
// settled locally.
type ReturnResponse struct {
	RentalID           int     `json:"rental_id"`
	PenalizacionDanios float64 `json:"penalizacion_danios"`
	PenalizacionDias   float64 `json:"penalizacion_dias"`
	Total              float64 `json:"total"`
	SaldoPendiente     float64 `json:"saldo_pendiente"`
	OrderID            string  `json:"order_id,omitempty"`
	PaymentURL         string  `json:"payment_url,omitempty"`
}

// ReturnFigures is what the engine computes at return time and stores on the
// payment order, to be applied verbatim when the final capture confirms.
type ReturnFigures struct {
	FechaDevolucion    time.Time             `json:"fecha_devolucion"`
	Partes             []InspectedPartResult `json:"partes"`
	PenalizacionDanios float64               `json:"penalizacion_danios"`
	PenalizacionDias   float64               `json:"penalizacion_dias"`
	Total              float64               `json:"total"`
}

type InspectedPartResult struct {
	Parte        string  `json:"parte"`
	Condicion    string  `json:"condicion"`
	Penalizacion float64 `json:"penalizacion"`
}
