package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"rentacar/internal/db"
	"rentacar/internal/entities"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// CancelPendingOlderThan cancels every rental still in Pendiente created
// before the cutoff (deposit order never captured) and returns their IDs.
func (r *JobRepository) CancelPendingOlderThan(cutoff time.Time) ([]int, error) {
	query := `
		UPDATE rentals SET estado = $1, updated_at = NOW()
		WHERE estado = $2 AND created_at < $3
		RETURNING id`
	rows, err := r.DB.Query(query, db.RentalCancelled, db.RentalPending, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error cancelling stale pending rentals: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning cancelled rental ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetOverdueRentals returns En curso rentals past their end date that have
// not been reminded within the last 24 hours.
func (r *JobRepository) GetOverdueRentals(now time.Time) ([]entities.OverdueRental, error) {
	query := `
		SELECT r.id, r.codigo, r.fecha_fin,
		       u.nombre || ' ' || u.apellido, u.email, u.telefono,
		       c.nombre, c.placa
		FROM rentals r
		JOIN users u ON r.cliente_id = u.id
		JOIN cars c ON r.car_id = c.id
		WHERE r.estado = $1
		  AND r.fecha_fin < $2
		  AND (r.last_overdue_notice IS NULL OR r.last_overdue_notice < $2 - interval '24 hours')
		ORDER BY r.fecha_fin`
	rows, err := r.DB.Query(query, db.RentalInProgress, now)
	if err != nil {
		return nil, fmt.Errorf("error querying overdue rentals: %w", err)
	}
	defer rows.Close()

	var overdue []entities.OverdueRental
	for rows.Next() {
		var o entities.OverdueRental
		if err := rows.Scan(&o.RentalID, &o.Codigo, &o.FechaFin,
			&o.ClienteNombre, &o.ClienteEmail, &o.ClienteTelefono,
			&o.CarNombre, &o.Placa); err != nil {
			return nil, fmt.Errorf("error scanning overdue rental: %w", err)
		}
		overdue = append(overdue, o)
	}
	return overdue, rows.Err()
}

func (r *JobRepository) MarkOverdueNotified(ids []int, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(
		`UPDATE rentals SET last_overdue_notice = $1 WHERE id = ANY($2)`,
		at, pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("error marking overdue rentals notified: %w", err)
	}
	return nil
}
