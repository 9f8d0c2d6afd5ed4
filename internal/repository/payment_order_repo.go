package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"rentacar/internal/db"
)

type PaymentOrderRepository interface {
	Create(order *db.PaymentOrder) error
	GetByOrderID(orderID string) (*db.PaymentOrder, error)
	// MarkCaptured flips the order to captured exactly once. The second
	// call for the same order returns false, which is what makes the
	// capture callback safe under redelivery.
	MarkCaptured(orderID string) (bool, error)
}

type paymentOrderRepository struct {
	DB *sql.DB
}

func NewPaymentOrderRepository(database *sql.DB) PaymentOrderRepository {
	return &paymentOrderRepository{DB: database}
}

func (r *paymentOrderRepository) Create(order *db.PaymentOrder) error {
	query := `
		INSERT INTO payment_orders (order_id, rental_id, kind, amount, status, figures)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	return r.DB.QueryRow(query,
		order.OrderID, order.RentalID, order.Kind, order.Amount, order.Status, order.Figures,
	).Scan(&order.CreatedAt)
}

func (r *paymentOrderRepository) GetByOrderID(orderID string) (*db.PaymentOrder, error) {
	var order db.PaymentOrder
	err := r.DB.QueryRow(
		`SELECT order_id, rental_id, kind, amount, status, figures, created_at
		 FROM payment_orders WHERE order_id = $1`, orderID,
	).Scan(&order.OrderID, &order.RentalID, &order.Kind, &order.Amount, &order.Status, &order.Figures, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying payment order '%s': %w", orderID, err)
	}
	return &order, nil
}

func (r *paymentOrderRepository) MarkCaptured(orderID string) (bool, error) {
	result, err := r.DB.Exec(
		`UPDATE payment_orders SET status = $2 WHERE order_id = $1 AND status = $3`,
		orderID, db.OrderCaptured, db.OrderCreated,
	)
	if err != nil {
		return false, fmt.Errorf("error marking payment order '%s' captured: %w", orderID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return affected == 1, nil
}
