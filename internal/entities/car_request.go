package entities

import "time"

type CreateCarRequest struct {
	Nombre          string     `json:"nombre"`
	Marca           string     `json:"marca"`
	Modelo          string     `json:"modelo"`
	Anio            int        `json:"anio"`
	Color           string     `json:"color"`
	Placa           string     `json:"placa"`
	Valor           float64    `json:"valor"`
	Kilometraje     int        `json:"kilometraje"`
	TipoCombustible string     `json:"tipo_combustible"`
	Transmision     string     `json:"transmision"`
	NumeroPuertas   int        `json:"numero_puertas"`
	UltimoChequeo   *time.Time `json:"ultimo_chequeo,omitempty"`
}

// UpdateCarRequest carries nil for every field the caller did not send.
type UpdateCarRequest struct {
	Nombre          *string    `json:"nombre"`
	Marca           *string    `json:"marca"`
	Modelo          *string    `json:"modelo"`
	Anio            *int       `json:"anio"`
	Color           *string    `json:"color"`
	Valor           *float64   `json:"valor"`
	Kilometraje     *int       `json:"kilometraje"`
	TipoCombustible *string    `json:"tipo_combustible"`
	Transmision     *string    `json:"transmision"`
	NumeroPuertas   *int       `json:"numero_puertas"`
	UltimoChequeo   *time.Time `json:"ultimo_chequeo"`
	Estado          *string    `json:"estado"` // Disponible | Mantenimiento
}

func (r *UpdateCarRequest) IsEmpty() bool {
	return r.Nombre == nil && r.Marca == nil && r.Modelo == nil && r.Anio == nil &&
		r.Color == nil && r.Valor == nil && r.Kilometraje == nil &&
		r.TipoCombustible == nil && r.Transmision == nil && r.NumeroPuertas == nil &&
		r.UltimoChequeo == nil && r.Estado == nil
}

type MaintenanceRequest struct {
	Fecha       *time.Time `json:"fecha"`
	Descripcion *string    `json:"descripcion"`
}

type UpdateRateRequest struct {
	TipoVehiculo *string  `json:"tipo_vehiculo"`
	Duracion     *string  `json:"duracion"`
	Temporada    *string  `json:"temporada"`
	Tarifa       *float64 `json:"tarifa"`
}

func (r *UpdateRateRequest) IsEmpty() bool {
	return r.TipoVehiculo == nil && r.Duracion == nil && r.Temporada == nil && r.Tarifa == nil
}
