package db

import (
	"database/sql"
	"time"
)

// Estados canónicos de un vehículo.
const (
	CarAvailable   = "Disponible"
	CarRented      = "Alquilado"
	CarDeleted     = "Eliminado"
	CarMaintenance = "Mantenimiento"
)

// Estados canónicos de un alquiler.
const (
	RentalPending    = "Pendiente"
	RentalInProgress = "En curso"
	RentalFinished   = "Finalizado"
	RentalCancelled  = "Cancelado"
)

// Condición de una parte inspeccionada en la devolución.
const (
	PartCorrect = "Correcto"
	PartDamaged = "Dañado"
)

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolEmpleado = "empleado"
	RolCliente  = "cliente"
)

type Car struct {
	ID              int        `json:"id"`
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
	Estado          string     `json:"estado"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Maintenance struct {
	ID          int       `json:"id"`
	CarID       int       `json:"car_id"`
	Fecha       time.Time `json:"fecha"`
	Descripcion string    `json:"descripcion"`
}

type Rate struct {
	ID           int     `json:"id"`
	TipoVehiculo string  `json:"tipo_vehiculo"`
	Duracion     string  `json:"duracion"`  // Diario | Semanal | Mensual
	Temporada    string  `json:"temporada"` // Alta | Media | Baja
	Tarifa       float64 `json:"tarifa"`
}

type Rental struct {
	ID                 int
	Codigo             string
	ClienteID          int
	CarID              int
	RateID             int
	FechaInicio        time.Time
	FechaFin           time.Time
	Estado             string
	Subtotal           float64
	Deposito           float64
	FechaDevolucion    sql.NullTime
	PenalizacionDanios float64
	PenalizacionDias   float64
	Total              float64
	LastOverdueNotice  sql.NullTime
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type RentalInspection struct {
	ID           int     `json:"id"`
	RentalID     int     `json:"rental_id"`
	Parte        string  `json:"parte"`
	Condicion    string  `json:"condicion"` // Correcto | Dañado
	Penalizacion float64 `json:"penalizacion"`
}

// PaymentOrder correlaciona una orden del gateway con el alquiler que la
// originó. El ID de la orden es la clave: el capture callback sólo trae el
// token de PayPal.
type PaymentOrder struct {
	OrderID   string
	RentalID  int
	Kind      string // deposito | final
	Amount    float64
	Status    string // created | captured
	Figures   sql.NullString
	CreatedAt time.Time
}

const (
	OrderKindDeposit = "deposito"
	OrderKindFinal   = "final"

	OrderCreated  = "created"
	OrderCaptured = "captured"
)

type User struct {
	ID           int       `json:"id"`
	Nombre       string    `json:"nombre"`
	Apellido     string    `json:"apellido"`
	Cedula       string    `json:"cedula"`
	Direccion    string    `json:"direccion"`
	Telefono     string    `json:"telefono"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Rol          string    `json:"rol"`    // admin | empleado | cliente
	Estado       string    `json:"estado"` // activo | desactivado
	CreatedAt    time.Time `json:"created_at"`
}
