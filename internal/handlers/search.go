package handlers

import (
	"hairven/internal/services/search"
	"hairven/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	searchService *search.Service
}

func NewSearchHandler(searchService *search.Service) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search queries the product index.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return response.BadRequest(c, "Query parameter q is required")
	}

	docs, err := h.searchService.Search(c.Context(), query)
	if err != nil {
		return response.ServerError(c, "Search failed")
	}
	return response.Success(c, "Search results", docs)
}

// Reindex rebuilds the product index from the catalog.
func (h *SearchHandler) Reindex(c *fiber.Ctx) error {
	count, err := h.searchService.IndexProducts(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to rebuild product index")
	}
	return response.Success(c, "Product index rebuilt", fiber.Map{"indexed": count})
}
