// Package payment defines the provider contract payment methods plug into,
// and the session service that drives providers through the payment lifecycle.
package payment

import (
	"context"

	"hairven/internal/models"
)

// Payment statuses stamped by provider operations.
const (
	StatusInitiated = "initiated"
	StatusPending   = "pending"
	StatusCaptured  = "captured"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

// Webhook actions a provider can report.
const (
	WebhookActionNotSupported = "not_supported"
	WebhookActionAuthorized   = "authorized"
	WebhookActionCaptured     = "captured"
	WebhookActionFailed       = "failed"
)

// SessionContext carries order and customer context into provider calls.
type SessionContext struct {
	CustomerEmail string                 `json:"customer_email"`
	OrderNumber   string                 `json:"order_number"`
	Order         map[string]interface{} `json:"order"`
	Customer      map[string]interface{} `json:"customer"`
}

type InitiateInput struct {
	Amount       int64
	CurrencyCode string
	Context      SessionContext
}

type InitiateOutput struct {
	ID   string
	Data map[string]interface{}
}

type AuthorizeInput struct {
	Data    map[string]interface{}
	Context SessionContext
}

type AuthorizeOutput struct {
	Data   map[string]interface{}
	Status string
}

type OperationInput struct {
	Data map[string]interface{}
}

type OperationOutput struct {
	Data map[string]interface{}
}

type UpdateInput struct {
	Data         map[string]interface{}
	Amount       *int64
	CurrencyCode string
}

type RefundInput struct {
	Data   map[string]interface{}
	Amount *int64
}

type StatusOutput struct {
	Status string
}

type WebhookData struct {
	SessionID string `json:"session_id"`
	Amount    int64  `json:"amount"`
}

type WebhookActionResult struct {
	Action string      `json:"action"`
	Data   WebhookData `json:"data"`
}

// Provider is the contract a payment method must satisfy to be driven by the
// session service. Operations may be invoked on a session in any state; no
// transition table is enforced here, callers decide call order.
type Provider interface {
	Identifier() string

	InitiatePayment(ctx context.Context, input InitiateInput) (InitiateOutput, error)
	AuthorizePayment(ctx context.Context, input AuthorizeInput) (AuthorizeOutput, error)
	CapturePayment(ctx context.Context, input OperationInput) (OperationOutput, error)
	CancelPayment(ctx context.Context, input OperationInput) (OperationOutput, error)
	DeletePayment(ctx context.Context, input OperationInput) (OperationOutput, error)
	RetrievePayment(ctx context.Context, input OperationInput) (OperationOutput, error)
	UpdatePayment(ctx context.Context, input UpdateInput) (OperationOutput, error)
	RefundPayment(ctx context.Context, input RefundInput) (OperationOutput, error)
	GetPaymentStatus(ctx context.Context, input OperationInput) (StatusOutput, error)
	GetWebhookActionAndData(ctx context.Context, payload map[string]interface{}) (WebhookActionResult, error)
}

// SessionRepository is the persistence dependency of the session service.
type SessionRepository interface {
	Create(ctx context.Context, session *models.PaymentSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentSession, error)
	Update(ctx context.Context, session *models.PaymentSession) error
	Delete(ctx context.Context, sessionID string) error
}
