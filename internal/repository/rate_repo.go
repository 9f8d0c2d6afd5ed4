package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"rentacar/internal/db"
)

type RateRepository interface {
	Create(rate *db.Rate) error
	GetByID(id int) (*db.Rate, error)
	List() ([]db.Rate, error)
	Update(rate *db.Rate) error
	Delete(id int) error
}

type rateRepository struct {
	DB *sql.DB
}

func NewRateRepository(database *sql.DB) RateRepository {
	return &rateRepository{DB: database}
}

func (r *rateRepository) Create(rate *db.Rate) error {
	return r.DB.QueryRow(
		`INSERT INTO rates (tipo_vehiculo, duracion, temporada, tarifa) VALUES ($1, $2, $3, $4) RETURNING id`,
		rate.TipoVehiculo, rate.Duracion, rate.Temporada, rate.Tarifa,
	).Scan(&rate.ID)
}

func (r *rateRepository) GetByID(id int) (*db.Rate, error) {
	var rate db.Rate
	err := r.DB.QueryRow(
		`SELECT id, tipo_vehiculo, duracion, temporada, tarifa FROM rates WHERE id = $1`, id,
	).Scan(&rate.ID, &rate.TipoVehiculo, &rate.Duracion, &rate.Temporada, &rate.Tarifa)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying rate %d: %w", id, err)
	}
	return &rate, nil
}

func (r *rateRepository) List() ([]db.Rate, error) {
	rows, err := r.DB.Query(`SELECT id, tipo_vehiculo, duracion, temporada, tarifa FROM rates ORDER BY tipo_vehiculo, duracion`)
	if err != nil {
		return nil, fmt.Errorf("error listing rates: %w", err)
	}
	defer rows.Close()

	var rates []db.Rate
	for rows.Next() {
		var rate db.Rate
		if err := rows.Scan(&rate.ID, &rate.TipoVehiculo, &rate.Duracion, &rate.Temporada, &rate.Tarifa); err != nil {
			return nil, fmt.Errorf("error scanning rate: %w", err)
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func (r *rateRepository) Update(rate *db.Rate) error {
	result, err := r.DB.Exec(
		`UPDATE rates SET tipo_vehiculo = $2, duracion = $3, temporada = $4, tarifa = $5 WHERE id = $1`,
		rate.ID, rate.TipoVehiculo, rate.Duracion, rate.Temporada, rate.Tarifa,
	)
	if err != nil {
		return fmt.Errorf("error updating rate %d: %w", rate.ID, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *rateRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM rates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting rate %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
