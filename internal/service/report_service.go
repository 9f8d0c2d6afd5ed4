package service

import (
	"time"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
)

type ReportService struct {
	Repo *repository.ReportRepository
	now  func() time.Time
}

func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{Repo: repo, now: time.Now}
}

// resolveRange turns a report period (diario, semanal, mensual, rango) into
// a concrete date range ending now.
func (s *ReportService) resolveRange(period, startDate, endDate string) (entities.DateRange, error) {
	now := s.now()
	switch period {
	case "diario":
		desde := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return entities.DateRange{Desde: desde, Hasta: now}, nil
	case "semanal":
		desde := now.AddDate(0, 0, -int(now.Weekday()))
		desde = time.Date(desde.Year(), desde.Month(), desde.Day(), 0, 0, 0, 0, now.Location())
		return entities.DateRange{Desde: desde, Hasta: now}, nil
	case "mensual":
		desde := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return entities.DateRange{Desde: desde, Hasta: now}, nil
	case "rango":
		if startDate == "" || endDate == "" {
			return entities.DateRange{}, apperrors.NewValidation("Debe proporcionar startDate y endDate para el rango de fechas")
		}
		desde, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return entities.DateRange{}, apperrors.NewValidation("startDate inválida, formato esperado AAAA-MM-DD")
		}
		hasta, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return entities.DateRange{}, apperrors.NewValidation("endDate inválida, formato esperado AAAA-MM-DD")
		}
		return entities.DateRange{Desde: desde, Hasta: hasta.AddDate(0, 0, 1)}, nil
	default:
		return entities.DateRange{}, apperrors.NewValidation("Periodo no válido (diario, semanal, mensual, rango)")
	}
}

func (s *ReportService) RentalReport(period, startDate, endDate string) (*entities.RentalReport, error) {
	dateRange, err := s.resolveRange(period, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repo.RentalsInRange(dateRange.Desde, dateRange.Hasta)
	if err != nil {
		return nil, err
	}

	report := &entities.RentalReport{
		RangoFechas: dateRange,
		Rentas:      []entities.RentalReportRow{},
	}
	for _, row := range rows {
		row.DiasAlquilado = rentalDays(row.FechaInicio, row.FechaFin)
		report.Rentas = append(report.Rentas, row)

		report.Totales.IngresosTotales += row.Total
		report.Totales.PenalizacionesTotales += row.Penalizacion
		report.Totales.DiasTotalesAlquilados += row.DiasAlquilado
		switch row.Estado {
		case db.RentalPending:
			report.Totales.RentasPendientes++
		case db.RentalInProgress:
			report.Totales.RentasEnCurso++
		case db.RentalFinished:
			report.Totales.RentasFinalizadas++
		case db.RentalCancelled:
			report.Totales.RentasCanceladas++
		}
	}
	report.Totales.CantidadRentas = len(report.Rentas)
	if report.Totales.CantidadRentas > 0 {
		report.Totales.PromedioIngresoPorRenta = report.Totales.IngresosTotales / float64(report.Totales.CantidadRentas)
	}
	return report, nil
}

func (s *ReportService) CarReport(period, startDate, endDate string) (*entities.CarReport, error) {
	dateRange, err := s.resolveRange(period, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repo.CarStatsInRange(dateRange.Desde, dateRange.Hasta)
	if err != nil {
		return nil, err
	}
	enMantenimiento, err := s.Repo.CountCarsInMaintenance()
	if err != nil {
		return nil, err
	}

	report := &entities.CarReport{
		RangoFechas: dateRange,
		Autos:       []entities.CarReportRow{},
	}
	report.Totales.AutosEnMantenimiento = enMantenimiento
	for _, row := range rows {
		report.Autos = append(report.Autos, row)
		if row.FrecuenciaAlquiler > 0 {
			report.Totales.AutosAlquilados++
		}
		report.Totales.IngresosTotales += row.IngresosGenerados
		report.Totales.DiasTotalesAlquilados += row.DiasAlquilado
	}
	if len(report.Autos) > 0 {
		report.Totales.PromedioIngresoPorAuto = report.Totales.IngresosTotales / float64(len(report.Autos))
	}
	return report, nil
}
