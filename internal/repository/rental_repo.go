package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentacar/internal/db"
	"rentacar/internal/entities"
)

type RentalRepository interface {
	Create(rental *db.Rental) error
	GetByID(id int) (*db.Rental, error)
	GetResponseByID(id int) (*entities.RentalResponse, error)
	List() ([]entities.RentalResponse, error)
	ListByCliente(clienteID int) ([]entities.RentalResponse, error)
	// HasOverlap reports whether any non-terminal rental for the car
	// intersects [inicio, fin], bounds inclusive.
	HasOverlap(carID int, inicio, fin time.Time) (bool, error)
	SetEstado(id int, estado string) error
	// Finalize applies the return figures and flips the rental to
	// Finalizado in one transaction.
	Finalize(id int, figures entities.ReturnFigures) error
	ListInspections(rentalID int) ([]db.RentalInspection, error)
}

type rentalRepository struct {
	DB *sql.DB
}

func NewRentalRepository(database *sql.DB) RentalRepository {
	return &rentalRepository{DB: database}
}

func (r *rentalRepository) Create(rental *db.Rental) error {
	query := `
		INSERT INTO rentals
		(codigo, cliente_id, car_id, rate_id, fecha_inicio, fecha_fin, estado, subtotal, deposito, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		rental.Codigo, rental.ClienteID, rental.CarID, rental.RateID,
		rental.FechaInicio, rental.FechaFin, rental.Estado,
		rental.Subtotal, rental.Deposito, rental.Total,
	).Scan(&rental.ID, &rental.CreatedAt, &rental.UpdatedAt)
}

func (r *rentalRepository) GetByID(id int) (*db.Rental, error) {
	var rental db.Rental
	query := `
		SELECT id, codigo, cliente_id, car_id, rate_id, fecha_inicio, fecha_fin, estado,
		       subtotal, deposito, fecha_devolucion, penalizacion_danios, penalizacion_dias,
		       total, last_overdue_notice, created_at, updated_at
		FROM rentals WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&rental.ID, &rental.Codigo, &rental.ClienteID, &rental.CarID, &rental.RateID,
		&rental.FechaInicio, &rental.FechaFin, &rental.Estado,
		&rental.Subtotal, &rental.Deposito, &rental.FechaDevolucion,
		&rental.PenalizacionDanios, &rental.PenalizacionDias,
		&rental.Total, &rental.LastOverdueNotice, &rental.CreatedAt, &rental.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying rental %d: %w", id, err)
	}
	return &rental, nil
}

const rentalResponseQuery = `
	SELECT r.id, r.codigo,
	       r.cliente_id, u.nombre || ' ' || u.apellido, u.email, u.telefono,
	       r.car_id, c.nombre, c.placa,
	       r.rate_id, t.tarifa,
	       r.fecha_inicio, r.fecha_fin, r.estado, r.subtotal, r.deposito,
	       r.fecha_devolucion, r.penalizacion_danios, r.penalizacion_dias, r.total
	FROM rentals r
	JOIN users u ON r.cliente_id = u.id
	JOIN cars c ON r.car_id = c.id
	JOIN rates t ON r.rate_id = t.id`

func scanRentalResponse(scanner interface{ Scan(...any) error }) (*entities.RentalResponse, error) {
	var res entities.RentalResponse
	var devolucion sql.NullTime
	err := scanner.Scan(
		&res.ID, &res.Codigo,
		&res.ClienteID, &res.ClienteNombre, &res.ClienteEmail, &res.ClienteTelefono,
		&res.CarID, &res.CarNombre, &res.Placa,
		&res.RateID, &res.Tarifa,
		&res.FechaInicio, &res.FechaFin, &res.Estado, &res.Subtotal, &res.Deposito,
		&devolucion, &res.PenalizacionDanios, &res.PenalizacionDias, &res.Total,
	)
	if err != nil {
		return nil, err
	}
	if devolucion.Valid {
		res.FechaDevolucion = &devolucion.Time
	}
	return &res, nil
}

func (r *rentalRepository) GetResponseByID(id int) (*entities.RentalResponse, error) {
	res, err := scanRentalResponse(r.DB.QueryRow(rentalResponseQuery+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying rental %d: %w", id, err)
	}
	return res, nil
}

func (r *rentalRepository) List() ([]entities.RentalResponse, error) {
	return r.queryResponses(rentalResponseQuery + ` ORDER BY r.fecha_inicio DESC`)
}

func (r *rentalRepository) ListByCliente(clienteID int) ([]entities.RentalResponse, error) {
	return r.queryResponses(rentalResponseQuery+` WHERE r.cliente_id = $1 ORDER BY r.fecha_inicio DESC`, clienteID)
}

func (r *rentalRepository) queryResponses(query string, args ...any) ([]entities.RentalResponse, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing rentals: %w", err)
	}
	defer rows.Close()

	var results []entities.RentalResponse
	for rows.Next() {
		res, err := scanRentalResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning rental: %w", err)
		}
		results = append(results, *res)
	}
	return results, rows.Err()
}

func (r *rentalRepository) HasOverlap(carID int, inicio, fin time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rentals
			WHERE car_id = $1
			  AND estado IN ($2, $3)
			  AND fecha_inicio <= $5
			  AND fecha_fin >= $4
		)`
	var exists bool
	err := r.DB.QueryRow(query, carID, db.RentalPending, db.RentalInProgress, inicio, fin).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking rental overlap for car %d: %w", carID, err)
	}
	return exists, nil
}

func (r *rentalRepository) SetEstado(id int, estado string) error {
	result, err := r.DB.Exec(
		`UPDATE rentals SET estado = $2, updated_at = NOW() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("error setting estado '%s' on rental %d: %w", estado, id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *rentalRepository) Finalize(id int, figures entities.ReturnFigures) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting finalize transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE rentals SET
			estado = $2, fecha_devolucion = $3,
			penalizacion_danios = $4, penalizacion_dias = $5, total = $6,
			updated_at = NOW()
		WHERE id = $1`
	if _, err := tx.Exec(query, id, db.RentalFinished, figures.FechaDevolucion,
		figures.PenalizacionDanios, figures.PenalizacionDias, figures.Total); err != nil {
		return fmt.Errorf("error finalizing rental %d: %w", id, err)
	}

	for _, parte := range figures.Partes {
		if _, err := tx.Exec(
			`INSERT INTO rental_inspections (rental_id, parte, condicion, penalizacion) VALUES ($1, $2, $3, $4)`,
			id, parte.Parte, parte.Condicion, parte.Penalizacion,
		); err != nil {
			return fmt.Errorf("error inserting inspection for rental %d: %w", id, err)
		}
	}

	return tx.Commit()
}

func (r *rentalRepository) ListInspections(rentalID int) ([]db.RentalInspection, error) {
	rows, err := r.DB.Query(
		`SELECT id, rental_id, parte, condicion, penalizacion FROM rental_inspections WHERE rental_id = $1 ORDER BY id`,
		rentalID)
	if err != nil {
		return nil, fmt.Errorf("error listing inspections for rental %d: %w", rentalID, err)
	}
	defer rows.Close()

	var inspections []db.RentalInspection
	for rows.Next() {
		var ins db.RentalInspection
		if err := rows.Scan(&ins.ID, &ins.RentalID, &ins.Parte, &ins.Condicion, &ins.Penalizacion); err != nil {
			return nil, fmt.Errorf("error scanning inspection: %w", err)
		}
		inspections = append(inspections, ins)
	}
	return inspections, rows.Err()
}
