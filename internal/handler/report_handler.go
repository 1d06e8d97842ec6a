package handler

import (
	"time"

	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.service.LowStockProducts(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"low_stock_products": products})
}

func (h *ReportHandler) GetSalesSummary(c *fiber.Ctx) error {
	fromParam := c.Query("from")
	toParam := c.Query("to")
	if fromParam == "" || toParam == "" {
		return c.Status(400).JSON(fiber.Map{"error": "From and to dates are required"})
	}

	from, err := time.Parse("2006-01-02", fromParam)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid from date, use YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", toParam)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid to date, use YYYY-MM-DD"})
	}
	// Include the whole end day.
	to = to.Add(24*time.Hour - time.Nanosecond)

	report, err := h.service.SalesSummaryBetween(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.service.Dashboard(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
