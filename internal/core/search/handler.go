package search

import (
	"shopsearch/internal/core/rank"
	"shopsearch/internal/logger"

	"github.com/gofiber/fiber/v2"
)

const defaultLimit = 50

type Handler struct {
	log     *logger.Logger
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{log: logger.New("SearchHandler"), service: service}
}

type productResponse struct {
	ProductID    string            `json:"productId"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	MRP          float64           `json:"mrp"`
	SellingPrice float64           `json:"sellingPrice"`
	Metadata     map[string]string `json:"metadata"`
	Stock        int               `json:"stock"`
	Score        float64           `json:"score"`
	Breakdown    rank.Breakdown    `json:"breakdown"`
}

// HandleSearch serves GET /product?query=...
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query parameter is required"})
	}

	results := h.service.Search(c.Context(), query, defaultLimit)
	h.log.LogDebugf("query %q returned %d results", query, len(results))

	data := make([]productResponse, 0, len(results))
	for _, r := range results {
		p := r.Product
		data = append(data, productResponse{
			ProductID:    p.ID,
			Title:        p.Title,
			Description:  p.Description,
			MRP:          p.MRP,
			SellingPrice: p.Price,
			Metadata:     p.Metadata,
			Stock:        p.Stock,
			Score:        r.Score,
			Breakdown:    r.Breakdown,
		})
	}
	return c.JSON(fiber.Map{"data": data})
}
