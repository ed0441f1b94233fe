package payment

import (
	"context"
	"errors"
	"fmt"

	"hairven/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service creates payment sessions and drives the registered providers
// through the lifecycle, persisting whatever data each operation returns.
type Service struct {
	registry *Registry
	sessions SessionRepository
	logger   *zap.SugaredLogger
}

func NewService(registry *Registry, sessions SessionRepository, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		sessions: sessions,
		logger:   logger.Sugar(),
	}
}

// CreateSession initiates a payment with the given provider and persists the
// resulting session.
func (s *Service) CreateSession(ctx context.Context, providerID string, amount int64, currencyCode string, sctx SessionContext) (*models.PaymentSession, error) {
	provider, err := s.registry.Get(providerID)
	if err != nil {
		return nil, err
	}

	out, err := provider.InitiatePayment(ctx, InitiateInput{
		Amount:       amount,
		CurrencyCode: currencyCode,
		Context:      sctx,
	})
	if err != nil {
		return nil, fmt.Errorf("initiate payment: %w", err)
	}

	session := &models.PaymentSession{
		SessionID:     uuid.NewString(),
		ProviderID:    providerID,
		Amount:        amount,
		CurrencyCode:  currencyCode,
		CustomerEmail: sctx.CustomerEmail,
		Status:        StatusInitiated,
		Data:          models.JSON(out.Data),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("persist payment session: %w", err)
	}

	s.logger.Infow("payment session created",
		"session_id", session.SessionID,
		"provider_id", providerID,
	)
	return session, nil
}

// Authorize runs the provider's authorize operation and persists the result.
func (s *Service) Authorize(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	session, provider, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out, err := provider.AuthorizePayment(ctx, AuthorizeInput{
		Data: session.Data,
		Context: SessionContext{
			CustomerEmail: session.CustomerEmail,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("authorize payment: %w", err)
	}

	session.Data = models.JSON(out.Data)
	session.Status = out.Status
	return session, s.sessions.Update(ctx, session)
}

// Capture runs the provider's capture operation and persists the result.
func (s *Service) Capture(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	return s.operate(ctx, sessionID, StatusCaptured, func(p Provider, in OperationInput) (OperationOutput, error) {
		return p.CapturePayment(ctx, in)
	})
}

// Cancel runs the provider's cancel operation and persists the result.
func (s *Service) Cancel(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	return s.operate(ctx, sessionID, StatusCancelled, func(p Provider, in OperationInput) (OperationOutput, error) {
		return p.CancelPayment(ctx, in)
	})
}

// Refund runs the provider's refund operation and persists the result.
func (s *Service) Refund(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	return s.operate(ctx, sessionID, StatusRefunded, func(p Provider, in OperationInput) (OperationOutput, error) {
		return p.RefundPayment(ctx, RefundInput{Data: in.Data})
	})
}

// Update overrides the session amount and currency through the provider.
func (s *Service) Update(ctx context.Context, sessionID string, amount *int64, currencyCode string) (*models.PaymentSession, error) {
	session, provider, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out, err := provider.UpdatePayment(ctx, UpdateInput{
		Data:         session.Data,
		Amount:       amount,
		CurrencyCode: currencyCode,
	})
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	session.Data = models.JSON(out.Data)
	if amount != nil {
		session.Amount = *amount
	}
	if currencyCode != "" {
		session.CurrencyCode = currencyCode
	}
	return session, s.sessions.Update(ctx, session)
}

// Retrieve returns the stored session after a provider round trip.
func (s *Service) Retrieve(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	session, provider, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out, err := provider.RetrievePayment(ctx, OperationInput{Data: session.Data})
	if err != nil {
		return nil, fmt.Errorf("retrieve payment: %w", err)
	}
	session.Data = models.JSON(out.Data)
	return session, nil
}

// Delete runs the provider's delete operation and discards the session row.
// Deletion is the host's terminal effect; providers only acknowledge it.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	session, provider, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	if _, err := provider.DeletePayment(ctx, OperationInput{Data: session.Data}); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *Service) operate(ctx context.Context, sessionID, status string, op func(Provider, OperationInput) (OperationOutput, error)) (*models.PaymentSession, error) {
	session, provider, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out, err := op(provider, OperationInput{Data: session.Data})
	if err != nil {
		return nil, err
	}

	session.Data = models.JSON(out.Data)
	session.Status = status
	return session, s.sessions.Update(ctx, session)
}

func (s *Service) load(ctx context.Context, sessionID string) (*models.PaymentSession, Provider, error) {
	session, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	provider, err := s.registry.Get(session.ProviderID)
	if err != nil {
		return nil, nil, err
	}
	return session, provider, nil
}
