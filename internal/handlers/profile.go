package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/eatery/internal/forms"
	"github.com/example/eatery/internal/middleware"
	"github.com/example/eatery/internal/models"
	"github.com/example/eatery/internal/services"
)

// ProfileHandler manages the merchant account profile endpoints.
type ProfileHandler struct {
	svc *services.RestaurantService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(svc *services.RestaurantService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetMyUser returns the stored account profile.
func (h *ProfileHandler) GetMyUser(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.FetchMyUser(c.Context(), accountID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return upstreamError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}

type createUserRequest struct {
	AuthID string `json:"authId"`
	Email  string `json:"email"`
}

// CreateMyUser registers the account profile after first sign-in.
func (h *ProfileHandler) CreateMyUser(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.AuthID == "" || req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "authId and email are required")
	}

	user, err := h.svc.CreateMyUser(c.Context(), accountID, req.AuthID, req.Email)
	if err != nil {
		return upstreamError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}

type updateUserRequest struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// UpdateMyUser validates submitted profile fields and saves them upstream.
// Field errors come back as a 422 with the per-field map, the same contract
// the restaurant form uses.
func (h *ProfileHandler) UpdateMyUser(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	validated, fieldErrs := forms.ValidateProfile(forms.ProfileForm{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		Country:      req.Country,
	})
	if fieldErrs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  fieldErrs,
		})
	}

	user, err := h.svc.UpdateMyUser(c.Context(), accountID, models.UserUpdate{
		Name:         validated.Name,
		AddressLine1: validated.AddressLine1,
		City:         validated.City,
		Country:      validated.Country,
	})
	if err != nil {
		return upstreamError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}
