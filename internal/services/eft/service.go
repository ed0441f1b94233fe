package eft

import (
	"context"
	"time"

	"hairven/internal/services/notification"
	"hairven/internal/services/payment"

	"go.uber.org/zap"
)

// ProviderID identifies the EFT provider in the payment registry.
const ProviderID = "eft"

// Notifier is the notification dependency. A nil Notifier degrades to
// logging the payment instructions instead of emailing them.
type Notifier interface {
	Send(ctx context.Context, n notification.Notification) error
}

// Service implements the payment.Provider contract for manual EFT payments.
// Operations do not validate call order; each one stamps its own status and
// the caller decides which sequences are legal.
type Service struct {
	options  Options
	notifier Notifier
	logger   *zap.SugaredLogger
}

func NewService(options Options, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		options:  options,
		notifier: notifier,
		logger:   logger.Sugar(),
	}
}

func (s *Service) Identifier() string { return ProviderID }

// InitiatePayment creates a fresh payment record with a generated reference.
// The status is left unset until the first lifecycle operation stamps one.
func (s *Service) InitiatePayment(ctx context.Context, input payment.InitiateInput) (payment.InitiateOutput, error) {
	reference := generateReference(input.Context.OrderNumber)

	data := PaymentData{
		Reference:     reference,
		Amount:        input.Amount,
		CurrencyCode:  input.CurrencyCode,
		CustomerEmail: input.Context.CustomerEmail,
		CreatedAt:     time.Now(),
	}

	s.logger.Infow("eft payment initiated", "reference", reference)

	return payment.InitiateOutput{
		ID:   reference,
		Data: data.toMap(),
	}, nil
}

// AuthorizePayment moves the payment to pending and emails the transfer
// instructions. A failed dispatch is logged and swallowed; authorization
// never fails on the notification path.
func (s *Service) AuthorizePayment(ctx context.Context, input payment.AuthorizeInput) (payment.AuthorizeOutput, error) {
	data := paymentDataFromMap(input.Data)

	if err := s.sendPaymentInstructions(ctx, data, input.Context); err != nil {
		s.logger.Errorw("failed to send eft payment instructions", "error", err)
	} else {
		s.logger.Infow("eft payment instructions sent", "reference", data.Reference)
	}

	data.Status = payment.StatusPending
	return payment.AuthorizeOutput{
		Data:   data.toMap(),
		Status: payment.StatusPending,
	}, nil
}

func (s *Service) CapturePayment(ctx context.Context, input payment.OperationInput) (payment.OperationOutput, error) {
	data := paymentDataFromMap(input.Data)
	s.logger.Infow("eft payment captured", "reference", data.Reference)

	data.Status = payment.StatusCaptured
	return payment.OperationOutput{Data: data.toMap()}, nil
}

func (s *Service) CancelPayment(ctx context.Context, input payment.OperationInput) (payment.OperationOutput, error) {
	data := paymentDataFromMap(input.Data)
	s.logger.Infow("eft payment cancelled", "reference", data.Reference)

	data.Status = payment.StatusCancelled
	return payment.OperationOutput{Data: data.toMap()}, nil
}

// DeletePayment acknowledges deletion; discarding the record is the
// caller's effect, not a tracked state.
func (s *Service) DeletePayment(ctx context.Context, input payment.OperationInput) (payment.OperationOutput, error) {
	data := paymentDataFromMap(input.Data)
	s.logger.Infow("eft payment deleted", "reference", data.Reference)

	return payment.OperationOutput{Data: data.toMap()}, nil
}

func (s *Service) RetrievePayment(ctx context.Context, input payment.OperationInput) (payment.OperationOutput, error) {
	data := paymentDataFromMap(input.Data)
	return payment.OperationOutput{Data: data.toMap()}, nil
}

// UpdatePayment overrides amount and currency when supplied, leaving the
// status and reference untouched.
func (s *Service) UpdatePayment(ctx context.Context, input payment.UpdateInput) (payment.OperationOutput, error) {
	data := paymentDataFromMap(input.Data)

	if input.Amount != nil {
		data.Amount = *input.Amount
	}
	if input.CurrencyCode != "" {
		data.CurrencyCode = input.CurrencyCode
	}

	s.logger.Infow("eft payment updated", "reference", data.Reference)
	return payment.OperationOutput{Data: data.toMap()}, nil
}

func (s *Service) RefundPayment(ctx context.Context, input payment.RefundInput) (payment.OperationOutput, error) {
	data := paymentDataFromMap(input.Data)
	s.logger.Infow("eft payment refund processed", "reference", data.Reference)

	data.Status = payment.StatusRefunded
	return payment.OperationOutput{Data: data.toMap()}, nil
}

// GetPaymentStatus always reports pending: there is no confirmation channel
// for manual transfers, the real status is resolved by bank reconciliation.
func (s *Service) GetPaymentStatus(ctx context.Context, input payment.OperationInput) (payment.StatusOutput, error) {
	return payment.StatusOutput{Status: payment.StatusPending}, nil
}

// GetWebhookActionAndData reports that no webhook channel exists for EFT.
func (s *Service) GetWebhookActionAndData(ctx context.Context, payload map[string]interface{}) (payment.WebhookActionResult, error) {
	return payment.WebhookActionResult{
		Action: payment.WebhookActionNotSupported,
		Data: payment.WebhookData{
			SessionID: "",
			Amount:    0,
		},
	}, nil
}

func (s *Service) sendPaymentInstructions(ctx context.Context, data PaymentData, sctx payment.SessionContext) error {
	if s.notifier == nil {
		s.logger.Warnw("notification service not available, falling back to logging")
		s.logger.Infow("eft payment instructions",
			"customer_email", data.CustomerEmail,
			"reference", data.Reference,
			"amount", data.Amount,
			"currency_code", data.CurrencyCode,
		)
		return nil
	}

	if data.CustomerEmail == "" {
		s.logger.Errorw("cannot send eft payment instructions: customer email is missing")
		return nil
	}

	payload := map[string]interface{}{
		"reference":     data.Reference,
		"amount":        data.Amount,
		"currency_code": data.CurrencyCode,
		"order":         sctx.Order,
		"customer":      sctx.Customer,
	}
	if s.options.BankDetails != nil {
		payload["bank_details"] = map[string]interface{}{
			"account_name":   s.options.BankDetails.AccountName,
			"account_number": s.options.BankDetails.AccountNumber,
			"bank_name":      s.options.BankDetails.BankName,
			"branch_code":    s.options.BankDetails.BranchCode,
		}
	}

	if err := s.notifier.Send(ctx, notification.Notification{
		To:       data.CustomerEmail,
		Channel:  notification.ChannelEmail,
		Template: notification.TemplateEftPaymentInstructions,
		Data:     payload,
	}); err != nil {
		// Log the instructions as a fallback so they are not lost entirely.
		s.logger.Infow("eft payment instructions (email failed)",
			"customer_email", data.CustomerEmail,
			"reference", data.Reference,
			"amount", data.Amount,
			"currency_code", data.CurrencyCode,
		)
		return err
	}
	return nil
}
