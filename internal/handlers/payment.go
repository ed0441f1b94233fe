package handlers

import (
	"errors"

	"hairven/internal/services/payment"
	"hairven/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	sessions *payment.Service
}

func NewPaymentHandler(sessions *payment.Service) *PaymentHandler {
	return &PaymentHandler{sessions: sessions}
}

// CreateSession initiates a payment with the requested provider.
func (h *PaymentHandler) CreateSession(c *fiber.Ctx) error {
	var input struct {
		ProviderID    string `json:"provider_id"`
		Amount        int64  `json:"amount"`
		CurrencyCode  string `json:"currency_code"`
		CustomerEmail string `json:"customer_email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.ProviderID == "" || input.Amount <= 0 || input.CurrencyCode == "" {
		return response.BadRequest(c, "provider_id, amount and currency_code are required")
	}

	session, err := h.sessions.CreateSession(c.Context(), input.ProviderID, input.Amount, input.CurrencyCode, payment.SessionContext{
		CustomerEmail: input.CustomerEmail,
	})
	if err != nil {
		if errors.Is(err, payment.ErrProviderNotFound) {
			return response.BadRequest(c, "Unknown payment provider")
		}
		return response.ServerError(c, "Failed to create payment session")
	}

	return response.Success(c, "Payment session created", session)
}

// Authorize moves the session through the provider's authorize operation.
func (h *PaymentHandler) Authorize(c *fiber.Ctx) error {
	session, err := h.sessions.Authorize(c.Context(), c.Params("id"))
	return h.respond(c, "Payment authorized", session, err)
}

// Capture moves the session through the provider's capture operation.
func (h *PaymentHandler) Capture(c *fiber.Ctx) error {
	session, err := h.sessions.Capture(c.Context(), c.Params("id"))
	return h.respond(c, "Payment captured", session, err)
}

// Cancel moves the session through the provider's cancel operation.
func (h *PaymentHandler) Cancel(c *fiber.Ctx) error {
	session, err := h.sessions.Cancel(c.Context(), c.Params("id"))
	return h.respond(c, "Payment cancelled", session, err)
}

// Refund moves the session through the provider's refund operation.
func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	session, err := h.sessions.Refund(c.Context(), c.Params("id"))
	return h.respond(c, "Payment refunded", session, err)
}

// UpdateSession overrides the session amount and currency.
func (h *PaymentHandler) UpdateSession(c *fiber.Ctx) error {
	var input struct {
		Amount       *int64 `json:"amount"`
		CurrencyCode string `json:"currency_code"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	session, err := h.sessions.Update(c.Context(), c.Params("id"), input.Amount, input.CurrencyCode)
	return h.respond(c, "Payment session updated", session, err)
}

// GetSession returns the stored session.
func (h *PaymentHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessions.Retrieve(c.Context(), c.Params("id"))
	return h.respond(c, "Payment session retrieved", session, err)
}

// DeleteSession discards the session.
func (h *PaymentHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.sessions.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			return response.NotFound(c, "Payment session not found")
		}
		return response.ServerError(c, "Failed to delete payment session")
	}
	return response.Success(c, "Payment session deleted", nil)
}

func (h *PaymentHandler) respond(c *fiber.Ctx, message string, session interface{}, err error) error {
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			return response.NotFound(c, "Payment session not found")
		}
		return response.ServerError(c, "Payment operation failed")
	}
	return response.Success(c, message, session)
}
