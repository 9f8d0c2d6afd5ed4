package entities

import "time"

type DateRange struct {
	Desde time.Time `json:"desde"`
	Hasta time.Time `json:"hasta"`
}

type RentalReportRow struct {
	ID            int       `json:"id"`
	Cliente       string    `json:"cliente"`
	Auto          string    `json:"auto"`
	FechaInicio   time.Time `json:"fecha_inicio"`
	FechaFin      time.Time `json:"fecha_fin"`
	Estado        string    `json:"estado"`
	DiasAlquilado int       `json:"dias_alquilado"`
	Subtotal      float64   `json:"subtotal"`
	Penalizacion  float64   `json:"penalizacion"`
	Total         float64   `json:"total"`
}

type RentalReportTotals struct {
	CantidadRentas          int     `json:"cantidad_rentas"`
	IngresosTotales         float64 `json:"ingresos_totales"`
	PenalizacionesTotales   float64 `json:"penalizaciones_totales"`
	DiasTotalesAlquilados   int     `json:"dias_totales_alquilados"`
	PromedioIngresoPorRenta float64 `json:"promedio_ingreso_por_renta"`
	RentasPendientes        int     `json:"rentas_pendientes"`
	RentasEnCurso           int     `json:"rentas_en_curso"`
	RentasFinalizadas       int     `json:"rentas_finalizadas"`
	RentasCanceladas        int     `json:"rentas_canceladas"`
}

type RentalReport struct {
	RangoFechas DateRange          `json:"rango_fechas"`
	Rentas      []RentalReportRow  `json:"rentas"`
	Totales     RentalReportTotals `json:"totales"`
}

type CarReportRow struct {
	ID                    int     `json:"id"`
	Nombre                string  `json:"nombre"`
	Marca                 string  `json:"marca"`
	Modelo                string  `json:"modelo"`
	Placa                 string  `json:"placa"`
	EstadoActual          string  `json:"estado_actual"`
	Kilometraje           int     `json:"kilometraje"`
	IngresosGenerados     float64 `json:"ingresos_generados"`
	FrecuenciaAlquiler    int     `json:"frecuencia_alquiler"`
	DiasAlquilado         int     `json:"dias_alquilado"`
	PromedioDiarioIngreso float64 `json:"promedio_diario_ingreso"`
}

type CarReportTotals struct {
	AutosAlquilados        int     `json:"autos_alquilados"`
	IngresosTotales        float64 `json:"ingresos_totales"`
	DiasTotalesAlquilados  int     `json:"dias_totales_alquilados"`
	PromedioIngresoPorAuto float64 `json:"promedio_ingreso_por_auto"`
	AutosEnMantenimiento   int     `json:"autos_en_mantenimiento"`
}

type CarReport struct {
	RangoFechas DateRange       `json:"rango_fechas"`
	Autos       []CarReportRow  `json:"autos"`
	Totales     CarReportTotals `json:"totales"`
}

// OverdueRental is the read model the reminder job works on.
type OverdueRental struct {
	RentalID        int
	Codigo          string
	FechaFin        time.Time
	ClienteNombre   string
	ClienteEmail    string
	ClienteTelefono string
	CarNombre       string
	Placa           string
}
