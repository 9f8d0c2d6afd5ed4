package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar/internal/db"
	"rentacar/internal/entities"
)

func newMockRepo(t *testing.T) (RentalRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewRentalRepository(conn), mock
}

func TestRentalCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO rentals`).
		WithArgs("abc-123", 1, 2, 3, sqlmock.AnyArg(), sqlmock.AnyArg(),
			db.RentalPending, 900.0, 270.0, 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(7, now, now))

	rental := &db.Rental{
		Codigo:      "abc-123",
		ClienteID:   1,
		CarID:       2,
		RateID:      3,
		FechaInicio: now,
		FechaFin:    now.AddDate(0, 0, 9),
		Estado:      db.RentalPending,
		Subtotal:    900,
		Deposito:    270,
	}
	require.NoError(t, repo.Create(rental))
	assert.Equal(t, 7, rental.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM rentals WHERE id`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rental, err := repo.GetByID(99)
	require.NoError(t, err)
	assert.Nil(t, rental)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOverlap(t *testing.T) {
	repo, mock := newMockRepo(t)

	inicio := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fin := inicio.AddDate(0, 0, 9)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(2, db.RentalPending, db.RentalInProgress, inicio, fin).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	overlap, err := repo.HasOverlap(2, inicio, fin)
	require.NoError(t, err)
	assert.True(t, overlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetEstadoMissingRental(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE rentals SET estado`).
		WithArgs(42, db.RentalCancelled).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetEstado(42, db.RentalCancelled)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizeWritesRentalAndInspections(t *testing.T) {
	repo, mock := newMockRepo(t)

	devolucion := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	figures := entities.ReturnFigures{
		FechaDevolucion: devolucion,
		Partes: []entities.InspectedPartResult{
			{Parte: "Puerta", Condicion: db.PartDamaged, Penalizacion: 1000},
		},
		PenalizacionDanios: 1000,
		PenalizacionDias:   3000,
		Total:              4900,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rentals SET`).
		WithArgs(7, db.RentalFinished, devolucion, 1000.0, 3000.0, 4900.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO rental_inspections`).
		WithArgs(7, "Puerta", db.PartDamaged, 1000.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Finalize(7, figures))
	assert.NoError(t, mock.ExpectationsWereMet())
}
