package repository

import (
	"database/sql"
	"fmt"
	"time"

	"rentacar/internal/entities"
)

type ReportRepository struct {
	DB *sql.DB
}

func NewReportRepository(database *sql.DB) *ReportRepository {
	return &ReportRepository{DB: database}
}

// RentalsInRange returns the rentals whose start date falls inside the range,
// with cliente and auto resolved by name.
func (r *ReportRepository) RentalsInRange(desde, hasta time.Time) ([]entities.RentalReportRow, error) {
	query := `
		SELECT r.id, u.nombre || ' ' || u.apellido, c.nombre,
		       r.fecha_inicio, r.fecha_fin, r.estado,
		       r.subtotal, r.penalizacion_danios + r.penalizacion_dias, r.total
		FROM rentals r
		JOIN users u ON r.cliente_id = u.id
		JOIN cars c ON r.car_id = c.id
		WHERE r.fecha_inicio >= $1 AND r.fecha_inicio <= $2
		ORDER BY r.fecha_inicio`
	rows, err := r.DB.Query(query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("error querying rentals in range: %w", err)
	}
	defer rows.Close()

	var results []entities.RentalReportRow
	for rows.Next() {
		var row entities.RentalReportRow
		if err := rows.Scan(&row.ID, &row.Cliente, &row.Auto,
			&row.FechaInicio, &row.FechaFin, &row.Estado,
			&row.Subtotal, &row.Penalizacion, &row.Total); err != nil {
			return nil, fmt.Errorf("error scanning rental report row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CarStatsInRange returns one row per non-deleted car with the income and
// rental frequency generated inside the range.
func (r *ReportRepository) CarStatsInRange(desde, hasta time.Time) ([]entities.CarReportRow, error) {
	query := `
		SELECT c.id, c.nombre, c.marca, c.modelo, c.placa, c.estado, c.kilometraje,
		       COALESCE(SUM(r.total), 0),
		       COUNT(r.id),
		       COALESCE(SUM(CEIL(EXTRACT(EPOCH FROM (r.fecha_fin - r.fecha_inicio)) / 86400)), 0)
		FROM cars c
		LEFT JOIN rentals r
			ON r.car_id = c.id
			AND r.fecha_inicio >= $1 AND r.fecha_inicio <= $2
		WHERE c.estado <> 'Eliminado'
		GROUP BY c.id
		ORDER BY c.placa`
	rows, err := r.DB.Query(query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("error querying car stats in range: %w", err)
	}
	defer rows.Close()

	var results []entities.CarReportRow
	for rows.Next() {
		var row entities.CarReportRow
		if err := rows.Scan(&row.ID, &row.Nombre, &row.Marca, &row.Modelo, &row.Placa,
			&row.EstadoActual, &row.Kilometraje,
			&row.IngresosGenerados, &row.FrecuenciaAlquiler, &row.DiasAlquilado); err != nil {
			return nil, fmt.Errorf("error scanning car report row: %w", err)
		}
		if row.DiasAlquilado > 0 {
			row.PromedioDiarioIngreso = row.IngresosGenerados / float64(row.DiasAlquilado)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountCarsInMaintenance is used by the fleet report totals.
func (r *ReportRepository) CountCarsInMaintenance() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM cars WHERE estado = 'Mantenimiento'`).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("error counting cars in maintenance: %w", err)
	}
	return count, nil
}
