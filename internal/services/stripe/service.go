// Package stripe implements the card payment provider on top of Stripe
// PaymentIntents. Unlike the manual EFT provider, its operations can fail and
// those failures surface to the session service.
package stripe

import (
	"context"
	"fmt"

	"hairven/internal/services/payment"

	stripego "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
	"github.com/stripe/stripe-go/v72/refund"
	"go.uber.org/zap"
)

// ProviderID identifies the Stripe provider in the payment registry.
const ProviderID = "stripe"

type Options struct {
	APIKey string
}

type Service struct {
	logger *zap.SugaredLogger
}

func NewService(options Options, logger *zap.Logger) *Service {
	stripego.Key = options.APIKey
	return &Service{logger: logger.Sugar()}
}

func (s *Service) Identifier() string { return ProviderID }

// InitiatePayment creates a manual-capture PaymentIntent for the amount.
func (s *Service) InitiatePayment(ctx context.Context, input payment.InitiateInput) (payment.InitiateOutput, error) {
	params := &stripego.PaymentIntentParams{
		Amount:        stripego.Int64(input.Amount),
		Currency:      stripego.String(input.CurrencyCode),
		CaptureMethod: stripego.String(string(stripego.PaymentIntentCaptureMethodManual)),
	}
	params.Context = ctx
	if input.Context.CustomerEmail != "" {
		params.ReceiptEmail = stripego.String(input.Context.CustomerEmail)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return payment.InitiateOutput{}, fmt.Errorf("create payment intent: %w", err)
	}

	s.logger.Infow("stripe payment initiated", "intent_id", intent.ID)
	return payment.InitiateOutput{
		ID:   intent.ID,
		Data: intentData(intent),
	}, nil
}

// AuthorizePayment refreshes the intent and maps its status.
func (s *Service) AuthorizePayment(ctx context.Context, input payment.AuthorizeInput) (payment.AuthorizeOutput, error) {
	intent, err := s.getIntent(ctx, input.Data)
	if err != nil {
		return payment.AuthorizeOutput{}, err
	}
	return payment.AuthorizeOutput{
		Data:   intentData(intent),
		Status: mapIntentStatus(intent.Status),
	}, nil
}

func (s *Service) CapturePayment(ctx context.Context, input payment.OperationInput) (payment.OperationOutput, error) {
	params := &stripego.PaymentIntentCaptureParams{}
	params.Context = ctx

	intent, err := paymentintent.Capture(intentID(input.Data), params)
	if err != nil {
		return payment.OperationOutput{}, fmt.Errorf("capture payment intent: %w", err)
	}
	return payment.OperationOutput{Data: intentData(intent)}, nil
}

func (s *Service) CancelPayment(ctx context.Context, input payment.OperationInput) (payment.OperationOutput, error) {
	params := &stripego.PaymentIntentCancelParams{}
	params.Context = ctx

	intent, err := paymentintent.Cancel(intentID(input.Data), params)
	if err != nil {
		return payment.OperationOutput{}, fmt.Errorf("cancel payment intent: %w", err)
	}
	return payment.OperationOutput{Data: intentData(intent)}, nil
}

// DeletePayment cancels the intent unless it already reached a final state.
func (s *Service) DeletePayment(ctx context.Context, input payment.OperationInput) (payment.OperationOutput, error) {
	intent, err := s.getIntent(ctx, input.Data)
	if err != nil {
		return payment.OperationOutput{}, err
	}
	if intent.Status == stripego.PaymentIntentStatusSucceeded ||
		intent.Status == stripego.PaymentIntentStatusCanceled {
		return payment.OperationOutput{Data: intentData(intent)}, nil
	}
	return s.CancelPayment(ctx, input)
}

func (s *Service) RetrievePayment(ctx context.Context, input payment.OperationInput) (payment.OperationOutput, error) {
	intent, err := s.getIntent(ctx, input.Data)
	if err != nil {
		return payment.OperationOutput{}, err
	}
	return payment.OperationOutput{Data: intentData(intent)}, nil
}

func (s *Service) UpdatePayment(ctx context.Context, input payment.UpdateInput) (payment.OperationOutput, error) {
	params := &stripego.PaymentIntentParams{}
	params.Context = ctx
	if input.Amount != nil {
		params.Amount = stripego.Int64(*input.Amount)
	}
	if input.CurrencyCode != "" {
		params.Currency = stripego.String(input.CurrencyCode)
	}

	intent, err := paymentintent.Update(intentID(input.Data), params)
	if err != nil {
		return payment.OperationOutput{}, fmt.Errorf("update payment intent: %w", err)
	}
	return payment.OperationOutput{Data: intentData(intent)}, nil
}

func (s *Service) RefundPayment(ctx context.Context, input payment.RefundInput) (payment.OperationOutput, error) {
	params := &stripego.RefundParams{
		PaymentIntent: stripego.String(intentID(input.Data)),
	}
	params.Context = ctx
	if input.Amount != nil {
		params.Amount = stripego.Int64(*input.Amount)
	}

	if _, err := refund.New(params); err != nil {
		return payment.OperationOutput{}, fmt.Errorf("refund payment intent: %w", err)
	}
	return s.RetrievePayment(ctx, payment.OperationInput{Data: input.Data})
}

func (s *Service) GetPaymentStatus(ctx context.Context, input payment.OperationInput) (payment.StatusOutput, error) {
	intent, err := s.getIntent(ctx, input.Data)
	if err != nil {
		return payment.StatusOutput{}, err
	}
	return payment.StatusOutput{Status: mapIntentStatus(intent.Status)}, nil
}

// GetWebhookActionAndData maps Stripe event payloads onto webhook actions.
func (s *Service) GetWebhookActionAndData(ctx context.Context, payload map[string]interface{}) (payment.WebhookActionResult, error) {
	eventType, _ := payload["type"].(string)

	result := payment.WebhookActionResult{Action: payment.WebhookActionNotSupported}
	switch eventType {
	case "payment_intent.amount_capturable_updated":
		result.Action = payment.WebhookActionAuthorized
	case "payment_intent.succeeded":
		result.Action = payment.WebhookActionCaptured
	case "payment_intent.payment_failed":
		result.Action = payment.WebhookActionFailed
	default:
		return result, nil
	}

	if data, ok := payload["data"].(map[string]interface{}); ok {
		if object, ok := data["object"].(map[string]interface{}); ok {
			result.Data.SessionID, _ = object["id"].(string)
			if amount, ok := object["amount"].(float64); ok {
				result.Data.Amount = int64(amount)
			}
		}
	}
	return result, nil
}

func (s *Service) getIntent(ctx context.Context, data map[string]interface{}) (*stripego.PaymentIntent, error) {
	params := &stripego.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(intentID(data), params)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}
	return intent, nil
}

func intentID(data map[string]interface{}) string {
	id, _ := data["intent_id"].(string)
	return id
}

func intentData(intent *stripego.PaymentIntent) map[string]interface{} {
	return map[string]interface{}{
		"intent_id":     intent.ID,
		"amount":        intent.Amount,
		"currency_code": string(intent.Currency),
		"status":        string(intent.Status),
		"client_secret": intent.ClientSecret,
	}
}

func mapIntentStatus(status stripego.PaymentIntentStatus) string {
	switch status {
	case stripego.PaymentIntentStatusRequiresCapture:
		return payment.StatusPending
	case stripego.PaymentIntentStatusSucceeded:
		return payment.StatusCaptured
	case stripego.PaymentIntentStatusCanceled:
		return payment.StatusCancelled
	default:
		return payment.StatusInitiated
	}
}
