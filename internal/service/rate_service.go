package service

import (
	"database/sql"
	"errors"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
)

var (
	validDuraciones = map[string]bool{"Diario": true, "Semanal": true, "Mensual": true}
	validTemporadas = map[string]bool{"Alta": true, "Media": true, "Baja": true}
)

type RateService struct {
	Repo repository.RateRepository
}

func NewRateService(repo repository.RateRepository) *RateService {
	return &RateService{Repo: repo}
}

func (s *RateService) ListRates() ([]db.Rate, error) {
	return s.Repo.List()
}

func (s *RateService) GetRate(id int) (*db.Rate, error) {
	rate, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, apperrors.NewNotFound("No se encontró la tarifa")
	}
	return rate, nil
}

func (s *RateService) CreateRate(rate *db.Rate) error {
	if rate.TipoVehiculo == "" || rate.Tarifa <= 0 {
		return apperrors.NewValidation("Faltan datos obligatorios de la tarifa")
	}
	if !validDuraciones[rate.Duracion] {
		return apperrors.NewValidation("Duración inválida. Usa 'Diario', 'Semanal' o 'Mensual'.")
	}
	if !validTemporadas[rate.Temporada] {
		return apperrors.NewValidation("Temporada inválida. Usa 'Alta', 'Media' o 'Baja'.")
	}
	return s.Repo.Create(rate)
}

func (s *RateService) UpdateRate(id int, req *entities.UpdateRateRequest) (*db.Rate, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewValidation("No hay datos para actualizar")
	}
	rate, err := s.GetRate(id)
	if err != nil {
		return nil, err
	}

	if req.TipoVehiculo != nil {
		rate.TipoVehiculo = *req.TipoVehiculo
	}
	if req.Duracion != nil {
		if !validDuraciones[*req.Duracion] {
			return nil, apperrors.NewValidation("Duración inválida. Usa 'Diario', 'Semanal' o 'Mensual'.")
		}
		rate.Duracion = *req.Duracion
	}
	if req.Temporada != nil {
		if !validTemporadas[*req.Temporada] {
			return nil, apperrors.NewValidation("Temporada inválida. Usa 'Alta', 'Media' o 'Baja'.")
		}
		rate.Temporada = *req.Temporada
	}
	if req.Tarifa != nil {
		rate.Tarifa = *req.Tarifa
	}

	if err := s.Repo.Update(rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *RateService) DeleteRate(id int) error {
	err := s.Repo.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound("No se ha encontrado la tarifa")
	}
	return err
}
