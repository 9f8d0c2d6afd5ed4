package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentacar/internal/db"
)

type CarRepository interface {
	Create(car *db.Car) error
	GetByID(id int) (*db.Car, error)
	GetByPlaca(placa string) (*db.Car, error)
	List() ([]db.Car, error)
	Update(car *db.Car) error
	SetEstado(id int, estado string) error
	ListMaintenance(carID int) ([]db.Maintenance, error)
	AddMaintenance(carID int, fecha time.Time, descripcion string) (*db.Maintenance, error)
	UpdateMaintenance(id int, fecha *time.Time, descripcion *string) error
	DeleteMaintenance(id int) error
}

type carRepository struct {
	DB *sql.DB
}

func NewCarRepository(database *sql.DB) CarRepository {
	return &carRepository{DB: database}
}

const carColumns = `id, nombre, marca, modelo, anio, color, placa, valor, kilometraje,
	tipo_combustible, transmision, numero_puertas, ultimo_chequeo, estado, created_at, updated_at`

func scanCar(row *sql.Row) (*db.Car, error) {
	var c db.Car
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Marca, &c.Modelo, &c.Anio, &c.Color, &c.Placa,
		&c.Valor, &c.Kilometraje, &c.TipoCombustible, &c.Transmision,
		&c.NumeroPuertas, &c.UltimoChequeo, &c.Estado, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carRepository) Create(car *db.Car) error {
	query := `
		INSERT INTO cars
		(nombre, marca, modelo, anio, color, placa, valor, kilometraje, tipo_combustible, transmision, numero_puertas, ultimo_chequeo, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		car.Nombre, car.Marca, car.Modelo, car.Anio, car.Color, car.Placa,
		car.Valor, car.Kilometraje, car.TipoCombustible, car.Transmision,
		car.NumeroPuertas, car.UltimoChequeo, car.Estado,
	).Scan(&car.ID, &car.CreatedAt, &car.UpdatedAt)
}

func (r *carRepository) GetByID(id int) (*db.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE id = $1`, carColumns)
	car, err := scanCar(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying car %d: %w", id, err)
	}
	return car, nil
}

func (r *carRepository) GetByPlaca(placa string) (*db.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE placa = $1`, carColumns)
	car, err := scanCar(r.DB.QueryRow(query, placa))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying car with placa '%s': %w", placa, err)
	}
	return car, nil
}

func (r *carRepository) List() ([]db.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE estado <> '%s' ORDER BY placa`, carColumns, db.CarDeleted)
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing cars: %w", err)
	}
	defer rows.Close()

	var cars []db.Car
	for rows.Next() {
		var c db.Car
		if err := rows.Scan(
			&c.ID, &c.Nombre, &c.Marca, &c.Modelo, &c.Anio, &c.Color, &c.Placa,
			&c.Valor, &c.Kilometraje, &c.TipoCombustible, &c.Transmision,
			&c.NumeroPuertas, &c.UltimoChequeo, &c.Estado, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning car: %w", err)
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *carRepository) Update(car *db.Car) error {
	query := `
		UPDATE cars SET
			nombre = $2, marca = $3, modelo = $4, anio = $5, color = $6,
			valor = $7, kilometraje = $8, tipo_combustible = $9, transmision = $10,
			numero_puertas = $11, ultimo_chequeo = $12, estado = $13, updated_at = NOW()
		WHERE id = $1`
	_, err := r.DB.Exec(query,
		car.ID, car.Nombre, car.Marca, car.Modelo, car.Anio, car.Color,
		car.Valor, car.Kilometraje, car.TipoCombustible, car.Transmision,
		car.NumeroPuertas, car.UltimoChequeo, car.Estado,
	)
	if err != nil {
		return fmt.Errorf("error updating car %d: %w", car.ID, err)
	}
	return nil
}

func (r *carRepository) SetEstado(id int, estado string) error {
	result, err := r.DB.Exec(`UPDATE cars SET estado = $2, updated_at = NOW() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("error setting estado '%s' on car %d: %w", estado, id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *carRepository) ListMaintenance(carID int) ([]db.Maintenance, error) {
	rows, err := r.DB.Query(
		`SELECT id, car_id, fecha, descripcion FROM car_maintenance WHERE car_id = $1 ORDER BY fecha DESC`, carID)
	if err != nil {
		return nil, fmt.Errorf("error listing maintenance for car %d: %w", carID, err)
	}
	defer rows.Close()

	var entries []db.Maintenance
	for rows.Next() {
		var m db.Maintenance
		if err := rows.Scan(&m.ID, &m.CarID, &m.Fecha, &m.Descripcion); err != nil {
			return nil, fmt.Errorf("error scanning maintenance entry: %w", err)
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

func (r *carRepository) AddMaintenance(carID int, fecha time.Time, descripcion string) (*db.Maintenance, error) {
	m := &db.Maintenance{CarID: carID, Fecha: fecha, Descripcion: descripcion}
	err := r.DB.QueryRow(
		`INSERT INTO car_maintenance (car_id, fecha, descripcion) VALUES ($1, $2, $3) RETURNING id`,
		carID, fecha, descripcion,
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("error inserting maintenance for car %d: %w", carID, err)
	}
	return m, nil
}

func (r *carRepository) UpdateMaintenance(id int, fecha *time.Time, descripcion *string) error {
	result, err := r.DB.Exec(
		`UPDATE car_maintenance SET fecha = COALESCE($2, fecha), descripcion = COALESCE($3, descripcion) WHERE id = $1`,
		id, fecha, descripcion,
	)
	if err != nil {
		return fmt.Errorf("error updating maintenance %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *carRepository) DeleteMaintenance(id int) error {
	result, err := r.DB.Exec(`DELETE FROM car_maintenance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting maintenance %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
