package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/eatery/internal/services"
)

// RestaurantHandler serves public, unauthenticated restaurant reads.
type RestaurantHandler struct {
	svc *services.RestaurantService
}

// NewRestaurantHandler constructs RestaurantHandler.
func NewRestaurantHandler(svc *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{svc: svc}
}

// GetRestaurant returns a restaurant by its public ID.
func (h *RestaurantHandler) GetRestaurant(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	restaurant, err := h.svc.FetchRestaurant(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "restaurant not found")
		}
		return upstreamError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": restaurant})
}
