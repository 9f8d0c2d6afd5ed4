package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/plutov/paypal/v4"
)

// Per-call budget for gateway requests. A hung gateway call fails fast
// instead of blocking the request.
const gatewayTimeout = 10 * time.Second

// PaymentOrderResult is what the engine needs back from the gateway: the
// order ID used as correlation key and the link the payer is redirected to.
type PaymentOrderResult struct {
	OrderID    string
	ApproveURL string
}

// PaymentGateway is the contract the rental lifecycle depends on.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount float64, currency, description, referenceID string) (*PaymentOrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (string, error)
}

type PayPalService struct {
	client    *paypal.Client
	returnURL string
	cancelURL string
}

func NewPayPalService() (*PayPalService, error) {
	clientID := os.Getenv("PAYPAL_CLIENT_ID")
	secret := os.Getenv("PAYPAL_CLIENT_SECRET")
	if clientID == "" || secret == "" {
		return nil, fmt.Errorf("PAYPAL_CLIENT_ID / PAYPAL_CLIENT_SECRET not set")
	}

	apiBase := os.Getenv("PAYPAL_API_BASE")
	if apiBase == "" {
		apiBase = paypal.APIBaseSandBox
	}

	client, err := paypal.NewClient(clientID, secret, apiBase)
	if err != nil {
		return nil, fmt.Errorf("error creating PayPal client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
	defer cancel()
	if _, err := client.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("error obtaining PayPal access token: %w", err)
	}

	returnURL := os.Getenv("PAYPAL_RETURN_URL")
	if returnURL == "" {
		returnURL = "http://localhost:8080/payments/capture"
	}
	cancelURL := os.Getenv("PAYPAL_CANCEL_URL")
	if cancelURL == "" {
		cancelURL = "http://localhost:8080/payments/cancel"
	}

	return &PayPalService{client: client, returnURL: returnURL, cancelURL: cancelURL}, nil
}

func (s *PayPalService) CreateOrder(ctx context.Context, amount float64, currency, description, referenceID string) (*PaymentOrderResult, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	units := []paypal.PurchaseUnitRequest{
		{
			ReferenceID: referenceID,
			Description: description,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: currency,
				Value:    fmt.Sprintf("%.2f", amount),
			},
		},
	}
	appContext := &paypal.ApplicationContext{
		ReturnURL: s.returnURL,
		CancelURL: s.cancelURL,
	}

	order, err := s.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appContext)
	if err != nil {
		return nil, fmt.Errorf("error creating PayPal order: %w", err)
	}

	var approveURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approveURL = link.Href
			break
		}
	}
	if approveURL == "" {
		return nil, fmt.Errorf("PayPal order %s has no approve link", order.ID)
	}

	return &PaymentOrderResult{OrderID: order.ID, ApproveURL: approveURL}, nil
}

func (s *PayPalService) CaptureOrder(ctx context.Context, orderID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	resp, err := s.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return "", fmt.Errorf("error capturing PayPal order %s: %w", orderID, err)
	}
	return string(resp.Status), nil
}
