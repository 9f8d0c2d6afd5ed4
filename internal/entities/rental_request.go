package entities

import "time"

type CreateRentalRequest struct {
	ClienteID   int       `json:"cliente"`
	CarID       int       `json:"auto"`
	RateID      int       `json:"tarifa_aplicada"`
	FechaInicio time.Time `json:"fecha_inicio"`
	FechaFin    time.Time `json:"fecha_fin"`
}

type InspectedPartInput struct {
	Parte     string `json:"parte"`
	Condicion string `json:"condicion"` // Correcto | Dañado
}

type ReturnRequest struct {
	Partes []InspectedPartInput `json:"partes"`
}

type UpdateStatusRequest struct {
	Estado string `json:"estado"` // Cancelado | Finalizado
}
