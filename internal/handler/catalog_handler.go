package handler

import (
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	category, err := h.service.GetCategory(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.service.CreateCategory(actor(c), req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"category": category})
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.service.UpdateCategory(actor(c), id, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.service.DeleteCategory(actor(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

func (h *CatalogHandler) GetItemTypes(c *fiber.Ctx) error {
	itemTypes, err := h.service.GetAllItemTypes(c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"item_types": itemTypes})
}

func (h *CatalogHandler) GetItemType(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item type ID"})
	}

	itemType, err := h.service.GetItemType(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"item_type": itemType})
}

func (h *CatalogHandler) CreateItemType(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	itemType, err := h.service.CreateItemType(actor(c), req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"item_type": itemType})
}

func (h *CatalogHandler) UpdateItemType(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item type ID"})
	}

	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	itemType, err := h.service.UpdateItemType(actor(c), id, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"item_type": itemType})
}

func (h *CatalogHandler) DeleteItemType(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item type ID"})
	}

	if err := h.service.DeleteItemType(actor(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item type deleted successfully"})
}
