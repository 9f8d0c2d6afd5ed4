package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/im7mortal/kmutex"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
)

const paymentCurrency = "USD"

// RentalService drives the rental lifecycle: creation, deposit
// authorization, capture callbacks, return inspection and the admin
// override.
type RentalService struct {
	rentals repository.RentalRepository
	cars    repository.CarRepository
	rates   repository.RateRepository
	users   repository.UserRepository
	orders  repository.PaymentOrderRepository
	gateway PaymentGateway
	sender  *SenderService

	// carLock serializes the overlap check + insert per vehicle so two
	// concurrent requests cannot both pass the conflict check.
	carLock *kmutex.Kmutex

	now func() time.Time
}

func NewRentalService(
	rentals repository.RentalRepository,
	cars repository.CarRepository,
	rates repository.RateRepository,
	users repository.UserRepository,
	orders repository.PaymentOrderRepository,
	gateway PaymentGateway,
	sender *SenderService,
) *RentalService {
	return &RentalService{
		rentals: rentals,
		cars:    cars,
		rates:   rates,
		users:   users,
		orders:  orders,
		gateway: gateway,
		sender:  sender,
		carLock: kmutex.New(),
		now:     time.Now,
	}
}

// CreateByEmployee creates and immediately activates a rental at the
// counter: the vehicle is handed over on the spot, the deposit link is
// returned for the client to pay.
func (s *RentalService) CreateByEmployee(ctx context.Context, req *entities.CreateRentalRequest) (*entities.RentalPaymentResponse, error) {
	return s.create(ctx, req, true)
}

// CreateByClient creates a rental in Pendiente; it only activates when the
// deposit capture callback arrives.
func (s *RentalService) CreateByClient(ctx context.Context, req *entities.CreateRentalRequest) (*entities.RentalPaymentResponse, error) {
	return s.create(ctx, req, false)
}

func (s *RentalService) create(ctx context.Context, req *entities.CreateRentalRequest, activateNow bool) (*entities.RentalPaymentResponse, error) {
	if req.ClienteID <= 0 || req.CarID <= 0 || req.RateID <= 0 || req.FechaInicio.IsZero() || req.FechaFin.IsZero() {
		return nil, apperrors.NewValidation("Faltan datos obligatorios")
	}
	if !req.FechaFin.After(req.FechaInicio) {
		return nil, apperrors.NewValidation("La fecha de fin debe ser posterior a la fecha de inicio")
	}

	cliente, err := s.users.GetByID(req.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, apperrors.NewNotFound("Cliente no encontrado")
	}

	car, err := s.cars.GetByID(req.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil || car.Estado == db.CarDeleted {
		return nil, apperrors.NewNotFound("El vehículo no está disponible")
	}

	rate, err := s.rates.GetByID(req.RateID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, apperrors.NewNotFound("No se encontró la tarifa")
	}

	s.carLock.Lock(req.CarID)
	defer s.carLock.Unlock(req.CarID)

	overlap, err := s.rentals.HasOverlap(req.CarID, req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperrors.NewConflict("El vehículo ya está reservado en ese rango de fechas")
	}
	if activateNow && car.Estado != db.CarAvailable {
		return nil, apperrors.NewConflict("El vehículo no está disponible")
	}

	days := rentalDays(req.FechaInicio, req.FechaFin)
	subtotal := computeSubtotal(rate.Tarifa, days)
	deposito := computeDeposit(subtotal)

	rental := &db.Rental{
		Codigo:      uuid.NewString(),
		ClienteID:   req.ClienteID,
		CarID:       req.CarID,
		RateID:      req.RateID,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Estado:      db.RentalPending,
		Subtotal:    subtotal,
		Deposito:    deposito,
	}
	if err := s.rentals.Create(rental); err != nil {
		return nil, fmt.Errorf("error creating rental: %w", err)
	}

	// A gateway failure here leaves the rental in Pendiente: it can be
	// retried through the authorize endpoint, or gets cancelled by the
	// cleanup job.
	order, err := s.createDepositOrder(ctx, rental)
	if err != nil {
		return nil, err
	}

	if activateNow {
		if err := s.rentals.SetEstado(rental.ID, db.RentalInProgress); err != nil {
			return nil, fmt.Errorf("error activating rental %d: %w", rental.ID, err)
		}
		if err := s.cars.SetEstado(car.ID, db.CarRented); err != nil {
			return nil, fmt.Errorf("error marking car %d rented: %w", car.ID, err)
		}
		rental.Estado = db.RentalInProgress
	}

	return &entities.RentalPaymentResponse{
		RentalID:   rental.ID,
		Codigo:     rental.Codigo,
		Estado:     rental.Estado,
		Subtotal:   rental.Subtotal,
		Deposito:   rental.Deposito,
		OrderID:    order.OrderID,
		PaymentURL: order.ApproveURL,
	}, nil
}

// Authorize re-requests the deposit payment for a rental still in
// Pendiente (initial order creation failed or the client never paid).
func (s *RentalService) Authorize(ctx context.Context, rentalID int) (*entities.RentalPaymentResponse, error) {
	rental, err := s.rentals.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, apperrors.NewNotFound("No se encontró el alquiler")
	}
	if rental.Estado != db.RentalPending {
		return nil, apperrors.NewInvalidState("El alquiler no está en estado pendiente")
	}

	car, err := s.cars.GetByID(rental.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, apperrors.NewNotFound("No se encontró el vehículo")
	}

	order, err := s.createDepositOrder(ctx, rental)
	if err != nil {
		return nil, err
	}

	return &entities.RentalPaymentResponse{
		RentalID:   rental.ID,
		Codigo:     rental.Codigo,
		Estado:     rental.Estado,
		Subtotal:   rental.Subtotal,
		Deposito:   rental.Deposito,
		OrderID:    order.OrderID,
		PaymentURL: order.ApproveURL,
	}, nil
}

func (s *RentalService) createDepositOrder(ctx context.Context, rental *db.Rental) (*PaymentOrderResult, error) {
	description := fmt.Sprintf("Depósito alquiler %s", rental.Codigo)
	order, err := s.gateway.CreateOrder(ctx, rental.Deposito, paymentCurrency, description, rental.Codigo)
	if err != nil {
		log.Printf("Error creando orden de depósito para alquiler %d: %v", rental.ID, err)
		return nil, apperrors.NewUpstream("Error al crear el pago")
	}

	po := &db.PaymentOrder{
		OrderID:  order.OrderID,
		RentalID: rental.ID,
		Kind:     db.OrderKindDeposit,
		Amount:   rental.Deposito,
		Status:   db.OrderCreated,
	}
	if err := s.orders.Create(po); err != nil {
		return nil, fmt.Errorf("error persisting payment order %s: %w", order.OrderID, err)
	}
	return order, nil
}

// ReturnVehicle computes the damage and late penalties for an active
// rental and requests the final payment. Rental and vehicle state only
// change when the capture callback confirms; a non-positive balance is
// settled locally and finalized right away.
func (s *RentalService) ReturnVehicle(ctx context.Context, rentalID int, partes []entities.InspectedPartInput) (*entities.ReturnResponse, error) {
	rental, err := s.rentals.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, apperrors.NewNotFound("No se encontró el alquiler")
	}
	if rental.Estado != db.RentalInProgress {
		return nil, apperrors.NewInvalidState("El vehículo ya fue devuelto o no está en uso")
	}

	car, err := s.cars.GetByID(rental.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, apperrors.NewNotFound("No se encontró el vehículo")
	}

	now := s.now().UTC()

	var resultados []entities.InspectedPartResult
	var danios float64
	for _, parte := range partes {
		var penalizacion float64
		if parte.Condicion == db.PartDamaged {
			penalizacion = damagePenaltyFor(parte.Parte, car.Valor)
		}
		danios += penalizacion
		resultados = append(resultados, entities.InspectedPartResult{
			Parte:        parte.Parte,
			Condicion:    parte.Condicion,
			Penalizacion: penalizacion,
		})
	}
	danios = round2(danios)

	_, dias := latePenalty(car.Valor, rental.FechaFin, now)

	total := round2(rental.Subtotal + danios + dias)
	saldo := round2(total - rental.Deposito)

	figures := entities.ReturnFigures{
		FechaDevolucion:    now,
		Partes:             resultados,
		PenalizacionDanios: danios,
		PenalizacionDias:   dias,
		Total:              total,
	}

	resp := &entities.ReturnResponse{
		RentalID:           rental.ID,
		PenalizacionDanios: danios,
		PenalizacionDias:   dias,
		Total:              total,
		SaldoPendiente:     saldo,
	}

	if saldo <= 0 {
		// Nothing left to collect: the deposit covers the total.
		if err := s.finalize(rental, figures); err != nil {
			return nil, err
		}
		return resp, nil
	}

	description := fmt.Sprintf("Pago final alquiler %s", rental.Codigo)
	order, err := s.gateway.CreateOrder(ctx, saldo, paymentCurrency, description, rental.Codigo)
	if err != nil {
		log.Printf("Error creando orden final para alquiler %d: %v", rental.ID, err)
		return nil, apperrors.NewUpstream("Error al crear el pago")
	}

	rawFigures, err := json.Marshal(figures)
	if err != nil {
		return nil, fmt.Errorf("error serializing return figures: %w", err)
	}
	po := &db.PaymentOrder{
		OrderID:  order.OrderID,
		RentalID: rental.ID,
		Kind:     db.OrderKindFinal,
		Amount:   saldo,
		Status:   db.OrderCreated,
	}
	po.Figures.String = string(rawFigures)
	po.Figures.Valid = true
	if err := s.orders.Create(po); err != nil {
		return nil, fmt.Errorf("error persisting payment order %s: %w", order.OrderID, err)
	}

	resp.OrderID = order.OrderID
	resp.PaymentURL = order.ApproveURL
	return resp, nil
}

// HandleCapture is the gateway's return callback. The order token is the
// correlation key: it resolves to the rental and to whether this was a
// deposit or a final payment. Redelivered callbacks find the order already
// consumed and do not re-apply transitions.
func (s *RentalService) HandleCapture(ctx context.Context, token string) (*entities.RentalResponse, error) {
	order, err := s.orders.GetByOrderID(token)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NewNotFound("No se encontró la orden de pago")
	}

	status, err := s.gateway.CaptureOrder(ctx, token)
	if err != nil {
		log.Printf("Error capturando orden %s: %v", token, err)
		return nil, apperrors.NewUpstream("Error al capturar el pago")
	}
	if status != "COMPLETED" {
		return nil, apperrors.NewUpstream(fmt.Sprintf("El pago no se completó (estado %s)", status))
	}

	captured, err := s.orders.MarkCaptured(token)
	if err != nil {
		return nil, err
	}
	if !captured {
		return nil, apperrors.NewInvalidState("El pago ya fue procesado")
	}

	rental, err := s.rentals.GetByID(order.RentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, apperrors.NewNotFound("No se encontró el alquiler")
	}

	switch order.Kind {
	case db.OrderKindDeposit:
		if err := s.applyDepositCapture(rental); err != nil {
			return nil, err
		}
	case db.OrderKindFinal:
		if err := s.applyFinalCapture(rental, order); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown payment order kind '%s'", order.Kind)
	}

	return s.rentals.GetResponseByID(rental.ID)
}

func (s *RentalService) applyDepositCapture(rental *db.Rental) error {
	switch rental.Estado {
	case db.RentalPending:
		if err := s.rentals.SetEstado(rental.ID, db.RentalInProgress); err != nil {
			return err
		}
		if err := s.cars.SetEstado(rental.CarID, db.CarRented); err != nil {
			return err
		}
		s.notifyStatus(rental.ID, db.RentalInProgress)
		return nil
	case db.RentalInProgress:
		// Employee fast path: the rental was activated at creation, the
		// deposit capture only confirms the money.
		return nil
	default:
		return apperrors.NewInvalidState("El alquiler no admite este pago")
	}
}

func (s *RentalService) applyFinalCapture(rental *db.Rental, order *db.PaymentOrder) error {
	if rental.Estado != db.RentalInProgress {
		return apperrors.NewInvalidState("El alquiler no está en curso")
	}
	if !order.Figures.Valid {
		return fmt.Errorf("payment order %s has no return figures", order.OrderID)
	}

	var figures entities.ReturnFigures
	if err := json.Unmarshal([]byte(order.Figures.String), &figures); err != nil {
		return fmt.Errorf("error parsing return figures for order %s: %w", order.OrderID, err)
	}
	return s.finalize(rental, figures)
}

func (s *RentalService) finalize(rental *db.Rental, figures entities.ReturnFigures) error {
	if err := s.rentals.Finalize(rental.ID, figures); err != nil {
		return err
	}
	if err := s.cars.SetEstado(rental.CarID, db.CarAvailable); err != nil {
		return err
	}
	s.notifyStatus(rental.ID, db.RentalFinished)
	return nil
}

// UpdateStatus is the administrative override: it moves a rental to
// Cancelado or Finalizado without payment capture and frees the vehicle.
func (s *RentalService) UpdateStatus(rentalID int, estado string) (*entities.RentalResponse, error) {
	if estado != db.RentalCancelled && estado != db.RentalFinished {
		return nil, apperrors.NewValidation("Estado inválido. Usa 'Cancelado' o 'Finalizado'.")
	}

	rental, err := s.rentals.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, apperrors.NewNotFound("No se encontró la renta especificada")
	}
	if rental.Estado == db.RentalFinished || rental.Estado == db.RentalCancelled {
		return nil, apperrors.NewInvalidState("La renta ya está en un estado terminal")
	}

	if err := s.rentals.SetEstado(rentalID, estado); err != nil {
		return nil, err
	}

	// The vehicle update is best effort: a missing car is logged and
	// skipped, not fatal.
	car, err := s.cars.GetByID(rental.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		log.Printf("Alquiler %d actualizado a '%s' pero el vehículo %d no existe", rentalID, estado, rental.CarID)
	} else if err := s.cars.SetEstado(car.ID, db.CarAvailable); err != nil {
		return nil, err
	}

	s.notifyStatus(rentalID, estado)
	return s.rentals.GetResponseByID(rentalID)
}

func (s *RentalService) GetRentals() ([]entities.RentalResponse, error) {
	return s.rentals.List()
}

func (s *RentalService) GetRental(id int) (*entities.RentalResponse, error) {
	res, err := s.rentals.GetResponseByID(id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, apperrors.NewNotFound("Alquiler no encontrado")
	}
	return res, nil
}

func (s *RentalService) GetRentalsByCliente(clienteID int) ([]entities.RentalResponse, error) {
	rentals, err := s.rentals.ListByCliente(clienteID)
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, apperrors.NewNotFound("No se encontraron alquileres para este cliente")
	}
	return rentals, nil
}

func (s *RentalService) GetInspections(rentalID int) ([]db.RentalInspection, error) {
	return s.rentals.ListInspections(rentalID)
}

func (s *RentalService) notifyStatus(rentalID int, estado string) {
	if s.sender == nil {
		return
	}
	res, err := s.rentals.GetResponseByID(rentalID)
	if err != nil || res == nil {
		log.Printf("No se pudo cargar el alquiler %d para notificar: %v", rentalID, err)
		return
	}
	s.sender.SendRentalEmail(*res, estado)
	s.sender.SendRentalSMS(*res, estado)
}
