package handlers

import (
	"hairven/internal/services/tax"
	"hairven/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TaxHandler struct {
	provider *tax.Provider
	setup    *tax.SetupService
}

func NewTaxHandler(provider *tax.Provider, setup *tax.SetupService) *TaxHandler {
	return &TaxHandler{
		provider: provider,
		setup:    setup,
	}
}

// CalculateTaxes computes tax lines for the submitted item and shipping
// lines. This is the checkout pipeline's entry point into the tax provider.
func (h *TaxHandler) CalculateTaxes(c *fiber.Ctx) error {
	var input struct {
		ItemLines     []tax.CalculationLine         `json:"item_lines"`
		ShippingLines []tax.ShippingCalculationLine `json:"shipping_lines"`
		Context       tax.CalculationContext        `json:"context"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	taxLines := h.provider.GetTaxLines(input.ItemLines, input.ShippingLines, input.Context)
	return response.Success(c, "Tax lines calculated", taxLines)
}

// SetupTaxes installs the tax regions and rates.
func (h *TaxHandler) SetupTaxes(c *fiber.Ctx) error {
	result, err := h.setup.Setup(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to setup tax configuration")
	}
	return response.Success(c, "Tax setup completed successfully", result)
}

// SetupInfo describes the setup endpoint.
func (h *TaxHandler) SetupInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":     "Hairven Beauty Tax Setup Endpoint",
		"description": "POST to this endpoint to initialize tax regions and rates for Hairven Beauty",
		"usage":       "POST /api/admin/tax/setup",
	})
}
