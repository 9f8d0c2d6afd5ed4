package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar/internal/auth"
	"rentacar/internal/db"
	"rentacar/internal/entities"
	"rentacar/internal/service"
)

// Stubs over the repository interfaces, enough for the rental endpoints.

type stubRentalRepo struct {
	created         *db.Rental
	listedClienteID int
}

func (s *stubRentalRepo) Create(rental *db.Rental) error {
	rental.ID = 1
	copia := *rental
	s.created = &copia
	return nil
}
func (s *stubRentalRepo) GetByID(int) (*db.Rental, error) { return nil, nil }
func (s *stubRentalRepo) GetResponseByID(id int) (*entities.RentalResponse, error) {
	return &entities.RentalResponse{ID: id}, nil
}
func (s *stubRentalRepo) List() ([]entities.RentalResponse, error) { return nil, nil }
func (s *stubRentalRepo) ListByCliente(clienteID int) ([]entities.RentalResponse, error) {
	s.listedClienteID = clienteID
	return []entities.RentalResponse{{ID: 1, ClienteID: clienteID}}, nil
}
func (s *stubRentalRepo) HasOverlap(int, time.Time, time.Time) (bool, error) { return false, nil }
func (s *stubRentalRepo) SetEstado(int, string) error                        { return nil }
func (s *stubRentalRepo) Finalize(int, entities.ReturnFigures) error         { return nil }
func (s *stubRentalRepo) ListInspections(int) ([]db.RentalInspection, error) { return nil, nil }

type stubCarRepo struct{}

func (stubCarRepo) Create(*db.Car) error { return nil }
func (stubCarRepo) GetByID(id int) (*db.Car, error) {
	return &db.Car{ID: id, Valor: 20000, Estado: db.CarAvailable}, nil
}
func (stubCarRepo) GetByPlaca(string) (*db.Car, error)                         { return nil, nil }
func (stubCarRepo) List() ([]db.Car, error)                                    { return nil, nil }
func (stubCarRepo) Update(*db.Car) error                                       { return nil }
func (stubCarRepo) SetEstado(int, string) error                                { return nil }
func (stubCarRepo) ListMaintenance(int) ([]db.Maintenance, error)              { return nil, nil }
func (stubCarRepo) AddMaintenance(int, time.Time, string) (*db.Maintenance, error) {
	return nil, nil
}
func (stubCarRepo) UpdateMaintenance(int, *time.Time, *string) error { return nil }
func (stubCarRepo) DeleteMaintenance(int) error                      { return nil }

type stubRateRepo struct{}

func (stubRateRepo) Create(*db.Rate) error { return nil }
func (stubRateRepo) GetByID(id int) (*db.Rate, error) {
	return &db.Rate{ID: id, Tarifa: 100}, nil
}
func (stubRateRepo) List() ([]db.Rate, error) { return nil, nil }
func (stubRateRepo) Update(*db.Rate) error    { return nil }
func (stubRateRepo) Delete(int) error         { return nil }

type stubUserRepo struct{}

func (stubUserRepo) Create(*db.User) error { return nil }
func (stubUserRepo) GetByID(id int) (*db.User, error) {
	return &db.User{ID: id, Nombre: "Ana"}, nil
}
func (stubUserRepo) GetByEmail(string) (*db.User, error)  { return nil, nil }
func (stubUserRepo) GetByCedula(string) (*db.User, error) { return nil, nil }
func (stubUserRepo) List() ([]db.User, error)             { return nil, nil }
func (stubUserRepo) Deactivate(string) error              { return nil }

type stubOrderRepo struct{}

func (stubOrderRepo) Create(*db.PaymentOrder) error                 { return nil }
func (stubOrderRepo) GetByOrderID(string) (*db.PaymentOrder, error) { return nil, nil }
func (stubOrderRepo) MarkCaptured(string) (bool, error)             { return true, nil }

type stubGateway struct{}

func (stubGateway) CreateOrder(context.Context, float64, string, string, string) (*service.PaymentOrderResult, error) {
	return &service.PaymentOrderResult{OrderID: "ORD-1", ApproveURL: "https://paypal.test/approve/ORD-1"}, nil
}
func (stubGateway) CaptureOrder(context.Context, string) (string, error) { return "COMPLETED", nil }

func newRentalHandlerFixture() (*RentalHandler, *stubRentalRepo) {
	rentals := &stubRentalRepo{}
	svc := service.NewRentalService(rentals, stubCarRepo{}, stubRateRepo{}, stubUserRepo{}, stubOrderRepo{}, stubGateway{}, nil)
	return NewRentalHandler(svc), rentals
}

func asCliente(r *http.Request, userID int) *http.Request {
	identity := &auth.Identity{UserID: userID, Rol: db.RolCliente}
	return r.WithContext(auth.WithIdentity(r.Context(), identity))
}

func TestCreateByClientBillsTheSession(t *testing.T) {
	h, rentals := newRentalHandlerFixture()

	// El cuerpo intenta facturar a otro cliente.
	body := `{"cliente": 999, "auto": 1, "tarifa_aplicada": 1,
		"fecha_inicio": "2025-01-01T00:00:00Z", "fecha_fin": "2025-01-10T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/rentals/cliente", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateByClient(rec, asCliente(req, 7))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, rentals.created)
	assert.Equal(t, 7, rentals.created.ClienteID)
}

func TestCreateByClientRequiresIdentity(t *testing.T) {
	h, rentals := newRentalHandlerFixture()

	body := `{"cliente": 7, "auto": 1, "tarifa_aplicada": 1,
		"fecha_inicio": "2025-01-01T00:00:00Z", "fecha_fin": "2025-01-10T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/rentals/cliente", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateByClient(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, rentals.created)
}

func TestGetRentalsByClientScopesClienteToOwn(t *testing.T) {
	h, rentals := newRentalHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/rentals/cliente/999", nil)
	req = mux.SetURLVars(req, map[string]string{"clienteId": "999"})
	rec := httptest.NewRecorder()

	h.GetRentalsByClient(rec, asCliente(req, 7))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, rentals.listedClienteID)
}

func TestGetRentalsByClientStaffSeesAnyone(t *testing.T) {
	h, rentals := newRentalHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/rentals/cliente/999", nil)
	req = mux.SetURLVars(req, map[string]string{"clienteId": "999"})
	identity := &auth.Identity{UserID: 3, Rol: db.RolEmpleado}
	req = req.WithContext(auth.WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()

	h.GetRentalsByClient(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 999, rentals.listedClienteID)
}
