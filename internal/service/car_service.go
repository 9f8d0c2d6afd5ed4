package service

import (
	"database/sql"
	"errors"
	"time"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
)

type CarService struct {
	Repo repository.CarRepository
}

func NewCarService(repo repository.CarRepository) *CarService {
	return &CarService{Repo: repo}
}

func (s *CarService) ListCars() ([]db.Car, error) {
	return s.Repo.List()
}

func (s *CarService) GetCarByPlaca(placa string) (*db.Car, error) {
	car, err := s.Repo.GetByPlaca(placa)
	if err != nil {
		return nil, err
	}
	if car == nil || car.Estado == db.CarDeleted {
		return nil, apperrors.NewNotFound("No se encontró el carro")
	}
	return car, nil
}

func (s *CarService) CreateCar(car *db.Car) error {
	if car.Placa == "" || car.Nombre == "" || car.Marca == "" || car.Modelo == "" || car.Valor <= 0 {
		return apperrors.NewValidation("Faltan datos obligatorios del vehículo")
	}
	existing, err := s.Repo.GetByPlaca(car.Placa)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewConflict("Ya existe un vehículo con esa placa")
	}
	if car.Estado == "" {
		car.Estado = db.CarAvailable
	}
	return s.Repo.Create(car)
}

func (s *CarService) UpdateCar(placa string, req *entities.UpdateCarRequest) (*db.Car, error) {
	car, err := s.GetCarByPlaca(placa)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, apperrors.NewValidation("No hay datos para actualizar")
	}

	if req.Nombre != nil {
		car.Nombre = *req.Nombre
	}
	if req.Marca != nil {
		car.Marca = *req.Marca
	}
	if req.Modelo != nil {
		car.Modelo = *req.Modelo
	}
	if req.Anio != nil {
		car.Anio = *req.Anio
	}
	if req.Color != nil {
		car.Color = *req.Color
	}
	if req.Valor != nil {
		car.Valor = *req.Valor
	}
	if req.Kilometraje != nil {
		car.Kilometraje = *req.Kilometraje
	}
	if req.TipoCombustible != nil {
		car.TipoCombustible = *req.TipoCombustible
	}
	if req.Transmision != nil {
		car.Transmision = *req.Transmision
	}
	if req.NumeroPuertas != nil {
		car.NumeroPuertas = *req.NumeroPuertas
	}
	if req.UltimoChequeo != nil {
		car.UltimoChequeo = req.UltimoChequeo
	}
	if req.Estado != nil {
		// Alquilado y Eliminado se manejan por el ciclo de renta y el
		// borrado, no por esta vía.
		if *req.Estado != db.CarAvailable && *req.Estado != db.CarMaintenance {
			return nil, apperrors.NewValidation("Estado inválido. Usa 'Disponible' o 'Mantenimiento'.")
		}
		if car.Estado == db.CarRented {
			return nil, apperrors.NewConflict("El vehículo está alquilado y no puede cambiar de estado")
		}
		car.Estado = *req.Estado
	}

	if err := s.Repo.Update(car); err != nil {
		return nil, err
	}
	return car, nil
}

// DeleteCar soft-deletes the vehicle. Deletion is blocked while the car is
// handed out.
func (s *CarService) DeleteCar(placa string) error {
	car, err := s.GetCarByPlaca(placa)
	if err != nil {
		return err
	}
	if car.Estado == db.CarRented {
		return apperrors.NewConflict("El vehículo está alquilado y no puede eliminarse")
	}
	return s.Repo.SetEstado(car.ID, db.CarDeleted)
}

func (s *CarService) ListMaintenance(placa string) ([]db.Maintenance, error) {
	car, err := s.GetCarByPlaca(placa)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListMaintenance(car.ID)
}

func (s *CarService) AddMaintenance(placa string, fecha time.Time, descripcion string) (*db.Maintenance, error) {
	if fecha.IsZero() || descripcion == "" {
		return nil, apperrors.NewValidation("La fecha y descripción son obligatorias")
	}
	car, err := s.GetCarByPlaca(placa)
	if err != nil {
		return nil, err
	}
	return s.Repo.AddMaintenance(car.ID, fecha, descripcion)
}

func (s *CarService) UpdateMaintenance(id int, fecha *time.Time, descripcion *string) error {
	if fecha == nil && descripcion == nil {
		return apperrors.NewValidation("No hay datos para actualizar")
	}
	err := s.Repo.UpdateMaintenance(id, fecha, descripcion)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound("No se encontró el mantenimiento con el ID proporcionado")
	}
	return err
}

func (s *CarService) DeleteMaintenance(id int) error {
	err := s.Repo.DeleteMaintenance(id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound("No se encontró el mantenimiento con el ID proporcionado")
	}
	return err
}
