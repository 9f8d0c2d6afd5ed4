package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
)

// --- fakes ---

type fakeRentalRepo struct {
	rentals map[int]*db.Rental
	nextID  int
	overlap bool
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{rentals: map[int]*db.Rental{}, nextID: 1}
}

func (f *fakeRentalRepo) Create(rental *db.Rental) error {
	rental.ID = f.nextID
	f.nextID++
	copia := *rental
	f.rentals[rental.ID] = &copia
	return nil
}

func (f *fakeRentalRepo) GetByID(id int) (*db.Rental, error) {
	r, ok := f.rentals[id]
	if !ok {
		return nil, nil
	}
	copia := *r
	return &copia, nil
}

func (f *fakeRentalRepo) GetResponseByID(id int) (*entities.RentalResponse, error) {
	r, ok := f.rentals[id]
	if !ok {
		return nil, nil
	}
	return &entities.RentalResponse{ID: r.ID, Codigo: r.Codigo, Estado: r.Estado}, nil
}

func (f *fakeRentalRepo) List() ([]entities.RentalResponse, error)       { return nil, nil }
func (f *fakeRentalRepo) ListByCliente(int) ([]entities.RentalResponse, error) {
	return nil, nil
}

func (f *fakeRentalRepo) HasOverlap(int, time.Time, time.Time) (bool, error) {
	return f.overlap, nil
}

func (f *fakeRentalRepo) SetEstado(id int, estado string) error {
	r, ok := f.rentals[id]
	if !ok {
		return errors.New("rental not found")
	}
	r.Estado = estado
	return nil
}

func (f *fakeRentalRepo) Finalize(id int, figures entities.ReturnFigures) error {
	r, ok := f.rentals[id]
	if !ok {
		return errors.New("rental not found")
	}
	r.Estado = db.RentalFinished
	r.PenalizacionDanios = figures.PenalizacionDanios
	r.PenalizacionDias = figures.PenalizacionDias
	r.Total = figures.Total
	return nil
}

func (f *fakeRentalRepo) ListInspections(int) ([]db.RentalInspection, error) { return nil, nil }

type fakeCarRepo struct {
	cars map[int]*db.Car
}

func (f *fakeCarRepo) Create(*db.Car) error { return nil }
func (f *fakeCarRepo) GetByID(id int) (*db.Car, error) {
	c, ok := f.cars[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}
func (f *fakeCarRepo) GetByPlaca(string) (*db.Car, error) { return nil, nil }
func (f *fakeCarRepo) List() ([]db.Car, error)            { return nil, nil }
func (f *fakeCarRepo) Update(*db.Car) error               { return nil }
func (f *fakeCarRepo) SetEstado(id int, estado string) error {
	c, ok := f.cars[id]
	if !ok {
		return errors.New("car not found")
	}
	c.Estado = estado
	return nil
}
func (f *fakeCarRepo) ListMaintenance(int) ([]db.Maintenance, error) { return nil, nil }
func (f *fakeCarRepo) AddMaintenance(int, time.Time, string) (*db.Maintenance, error) {
	return nil, nil
}
func (f *fakeCarRepo) UpdateMaintenance(int, *time.Time, *string) error { return nil }
func (f *fakeCarRepo) DeleteMaintenance(int) error                      { return nil }

type fakeRateRepo struct {
	rates map[int]*db.Rate
}

func (f *fakeRateRepo) Create(*db.Rate) error { return nil }
func (f *fakeRateRepo) GetByID(id int) (*db.Rate, error) {
	r, ok := f.rates[id]
	if !ok {
		return nil, nil
	}
	return r, nil
}
func (f *fakeRateRepo) List() ([]db.Rate, error) { return nil, nil }
func (f *fakeRateRepo) Update(*db.Rate) error    { return nil }
func (f *fakeRateRepo) Delete(int) error         { return nil }

type fakeUserRepo struct {
	users map[int]*db.User
}

func (f *fakeUserRepo) Create(*db.User) error { return nil }
func (f *fakeUserRepo) GetByID(id int) (*db.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(string) (*db.User, error)  { return nil, nil }
func (f *fakeUserRepo) GetByCedula(string) (*db.User, error) { return nil, nil }
func (f *fakeUserRepo) List() ([]db.User, error)             { return nil, nil }
func (f *fakeUserRepo) Deactivate(string) error              { return nil }

type fakeOrderRepo struct {
	orders map[string]*db.PaymentOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*db.PaymentOrder{}}
}

func (f *fakeOrderRepo) Create(order *db.PaymentOrder) error {
	copia := *order
	f.orders[order.OrderID] = &copia
	return nil
}

func (f *fakeOrderRepo) GetByOrderID(orderID string) (*db.PaymentOrder, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	copia := *o
	return &copia, nil
}

func (f *fakeOrderRepo) MarkCaptured(orderID string) (bool, error) {
	o, ok := f.orders[orderID]
	if !ok || o.Status != db.OrderCreated {
		return false, nil
	}
	o.Status = db.OrderCaptured
	return true, nil
}

type fakeGateway struct {
	nextOrder  int
	createErr  error
	captureErr error
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount float64, _, _, _ string) (*PaymentOrderResult, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextOrder++
	id := fmt.Sprintf("ORD-%d", f.nextOrder)
	return &PaymentOrderResult{OrderID: id, ApproveURL: "https://paypal.test/approve/" + id}, nil
}

func (f *fakeGateway) CaptureOrder(_ context.Context, _ string) (string, error) {
	if f.captureErr != nil {
		return "", f.captureErr
	}
	return "COMPLETED", nil
}

type fixture struct {
	svc     *RentalService
	rentals *fakeRentalRepo
	cars    *fakeCarRepo
	orders  *fakeOrderRepo
	gateway *fakeGateway
}

func newFixture() *fixture {
	rentals := newFakeRentalRepo()
	cars := &fakeCarRepo{cars: map[int]*db.Car{
		1: {ID: 1, Nombre: "Corolla", Placa: "ABC-1234", Valor: 20000, Estado: db.CarAvailable},
	}}
	rates := &fakeRateRepo{rates: map[int]*db.Rate{
		1: {ID: 1, TipoVehiculo: "Sedan", Duracion: "Diario", Temporada: "Alta", Tarifa: 100},
	}}
	users := &fakeUserRepo{users: map[int]*db.User{
		1: {ID: 1, Nombre: "Ana", Apellido: "Vera", Email: "ana@test.ec"},
	}}
	orders := newFakeOrderRepo()
	gateway := &fakeGateway{}
	svc := NewRentalService(rentals, cars, rates, users, orders, gateway, nil)
	return &fixture{svc: svc, rentals: rentals, cars: cars, orders: orders, gateway: gateway}
}

func validRequest() *entities.CreateRentalRequest {
	return &entities.CreateRentalRequest{
		ClienteID:   1,
		CarID:       1,
		RateID:      1,
		FechaInicio: date(1),
		FechaFin:    date(10),
	}
}

// --- tests ---

func TestCreateByClientStaysPending(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateByClient(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, db.RentalPending, resp.Estado)
	assert.Equal(t, 900.0, resp.Subtotal)
	assert.Equal(t, 270.0, resp.Deposito)
	assert.NotEmpty(t, resp.PaymentURL)
	// El auto no cambia hasta que el depósito se capture.
	assert.Equal(t, db.CarAvailable, f.cars.cars[1].Estado)
}

func TestCreateByEmployeeActivatesImmediately(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateByEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, db.RentalInProgress, resp.Estado)
	assert.Equal(t, db.CarRented, f.cars.cars[1].Estado)
	assert.NotEmpty(t, resp.OrderID)
}

func TestCreateRejectsOverlap(t *testing.T) {
	f := newFixture()
	f.rentals.overlap = true

	_, err := f.svc.CreateByClient(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
	assert.Empty(t, f.rentals.rentals)
}

func TestCreateRejectsInvertedDates(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.FechaInicio, req.FechaFin = req.FechaFin, req.FechaInicio

	_, err := f.svc.CreateByClient(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestCreateRejectsDeletedCar(t *testing.T) {
	f := newFixture()
	f.cars.cars[1].Estado = db.CarDeleted

	_, err := f.svc.CreateByClient(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestCreateGatewayFailureLeavesPending(t *testing.T) {
	f := newFixture()
	f.gateway.createErr = errors.New("paypal down")

	_, err := f.svc.CreateByEmployee(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusOf(err))

	// La renta queda en Pendiente para reintentar o ser cancelada por el
	// job de limpieza; el auto nunca se marcó alquilado.
	require.Len(t, f.rentals.rentals, 1)
	assert.Equal(t, db.RentalPending, f.rentals.rentals[1].Estado)
	assert.Equal(t, db.CarAvailable, f.cars.cars[1].Estado)
}

func TestAuthorizeOnlyPending(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.CreateByEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.svc.Authorize(context.Background(), resp.RentalID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
}

func TestDepositCaptureActivatesRental(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.CreateByClient(context.Background(), validRequest())
	require.NoError(t, err)

	rental, err := f.svc.HandleCapture(context.Background(), resp.OrderID)
	require.NoError(t, err)

	assert.Equal(t, db.RentalInProgress, rental.Estado)
	assert.Equal(t, db.CarRented, f.cars.cars[1].Estado)
}

func TestCaptureIsIdempotent(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.CreateByClient(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.svc.HandleCapture(context.Background(), resp.OrderID)
	require.NoError(t, err)

	// La redirección reentregada encuentra la orden consumida.
	_, err = f.svc.HandleCapture(context.Background(), resp.OrderID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
	assert.Equal(t, db.RentalInProgress, f.rentals.rentals[resp.RentalID].Estado)
}

func TestCaptureUnknownOrder(t *testing.T) {
	f := newFixture()

	_, err := f.svc.HandleCapture(context.Background(), "ORD-nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestReturnRequiresActiveRental(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.CreateByClient(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.svc.ReturnVehicle(context.Background(), resp.RentalID, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
}

func TestReturnLateWithDamage(t *testing.T) {
	f := newFixture()
	f.svc.now = func() time.Time { return date(13) }

	created, err := f.svc.CreateByEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	partes := []entities.InspectedPartInput{
		{Parte: "Puerta", Condicion: db.PartDamaged},
		{Parte: "Llanta", Condicion: db.PartCorrect},
	}
	resp, err := f.svc.ReturnVehicle(context.Background(), created.RentalID, partes)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, resp.PenalizacionDanios)
	assert.Equal(t, 3000.0, resp.PenalizacionDias)
	assert.Equal(t, 4900.0, resp.Total)
	assert.Equal(t, 4630.0, resp.SaldoPendiente)
	require.NotEmpty(t, resp.OrderID)

	// Sigue En curso hasta que el pago final se capture.
	assert.Equal(t, db.RentalInProgress, f.rentals.rentals[created.RentalID].Estado)
	assert.Equal(t, db.CarRented, f.cars.cars[1].Estado)

	// El capture final cierra la renta y libera el auto.
	rental, err := f.svc.HandleCapture(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, db.RentalFinished, rental.Estado)
	assert.Equal(t, db.CarAvailable, f.cars.cars[1].Estado)
	assert.Equal(t, 4900.0, f.rentals.rentals[created.RentalID].Total)
}

func TestReturnOnTimeStillOwesBalance(t *testing.T) {
	f := newFixture()
	f.svc.now = func() time.Time { return date(10) }

	created, err := f.svc.CreateByEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	resp, err := f.svc.ReturnVehicle(context.Background(), created.RentalID, nil)
	require.NoError(t, err)

	// Sin penalizaciones el saldo es subtotal menos depósito.
	assert.Equal(t, 630.0, resp.SaldoPendiente)
	assert.NotEmpty(t, resp.OrderID)
}

func TestReturnDepositCoversTotal(t *testing.T) {
	f := newFixture()
	f.svc.now = func() time.Time { return date(10) }

	created, err := f.svc.CreateByEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	// Simula un depósito que cubre el total: el ajuste queda en caja y la
	// renta se cierra sin orden de pago.
	f.rentals.rentals[created.RentalID].Deposito = 900

	resp, err := f.svc.ReturnVehicle(context.Background(), created.RentalID, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.SaldoPendiente)
	assert.Empty(t, resp.OrderID)
	assert.Equal(t, db.RentalFinished, f.rentals.rentals[created.RentalID].Estado)
	assert.Equal(t, db.CarAvailable, f.cars.cars[1].Estado)
}

func TestAdminOverrideFreesCar(t *testing.T) {
	f := newFixture()
	created, err := f.svc.CreateByEmployee(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, db.CarRented, f.cars.cars[1].Estado)

	rental, err := f.svc.UpdateStatus(created.RentalID, db.RentalCancelled)
	require.NoError(t, err)

	assert.Equal(t, db.RentalCancelled, rental.Estado)
	assert.Equal(t, db.CarAvailable, f.cars.cars[1].Estado)
}

func TestAdminOverrideRejectsTerminal(t *testing.T) {
	f := newFixture()
	created, err := f.svc.CreateByEmployee(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(created.RentalID, db.RentalCancelled)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(created.RentalID, db.RentalFinished)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
}

func TestAdminOverrideRejectsOtherStates(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateStatus(1, db.RentalPending)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}
