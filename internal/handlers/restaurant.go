package handlers

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/eatery/internal/forms"
	"github.com/example/eatery/internal/middleware"
	"github.com/example/eatery/internal/services"
	"github.com/example/eatery/internal/session"
)

// MyRestaurantHandler manages the authenticated merchant's restaurant
// profile: prefill, create and update.
type MyRestaurantHandler struct {
	svc      *services.RestaurantService
	telegram *services.TelegramService
}

// NewMyRestaurantHandler constructs MyRestaurantHandler.
func NewMyRestaurantHandler(svc *services.RestaurantService, telegram *services.TelegramService) *MyRestaurantHandler {
	return &MyRestaurantHandler{svc: svc, telegram: telegram}
}

// GetMyRestaurant returns the canonical stored restaurant.
func (h *MyRestaurantHandler) GetMyRestaurant(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	restaurant, err := h.svc.FetchMyRestaurant(c.Context(), accountID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "restaurant not found")
		}
		return upstreamError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": restaurant})
}

// GetMyRestaurantForm returns the display representation used to prefill the
// edit form: two-decimal price strings and the stored image as a URL only.
// A merchant without a restaurant gets blank defaults with one empty menu
// row.
func (h *MyRestaurantHandler) GetMyRestaurantForm(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	form := forms.BlankRestaurantForm()
	restaurant, err := h.svc.FetchMyRestaurant(c.Context(), accountID)
	switch {
	case err == nil:
		form = forms.DisplayRestaurant(*restaurant)
	case errors.Is(err, services.ErrNotFound):
		// keep blank defaults
	default:
		return upstreamError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": formJSON(form)})
}

// CreateMyRestaurant validates a submitted form and creates the restaurant
// upstream.
func (h *MyRestaurantHandler) CreateMyRestaurant(c *fiber.Ctx) error {
	return h.save(c, false)
}

// UpdateMyRestaurant validates a submitted form and updates the restaurant
// upstream.
func (h *MyRestaurantHandler) UpdateMyRestaurant(c *fiber.Ctx) error {
	return h.save(c, true)
}

func (h *MyRestaurantHandler) save(c *fiber.Ctx, update bool) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	mf, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form data")
	}

	image, err := readImageFile(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to read image file")
	}

	form, err := forms.ParseRestaurantForm(mf.Value, image)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := session.New()
	if err := sess.Edit(func(f *forms.RestaurantForm) { *f = form }); err != nil {
		return err
	}

	outcome, err := sess.Submit(c.Context(), h.svc.Saver(accountID, update))
	if err != nil {
		if errors.Is(err, session.ErrSubmitInFlight) {
			return fiber.NewError(fiber.StatusConflict, "a submit is already in flight")
		}
		return upstreamError(err)
	}

	if outcome.FieldErrors != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  outcome.FieldErrors,
		})
	}

	if err := h.telegram.NotifyRestaurantSaved(*outcome.Restaurant, !update); err != nil {
		log.Printf("telegram notification failed: %v", err)
	}

	status := fiber.StatusOK
	if !update {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": outcome.Restaurant})
}

// readImageFile extracts the optional imageFile part. An absent part means
// "keep the stored image" and is reported as nil, not as an empty upload.
func readImageFile(c *fiber.Ctx) (*forms.ImageFile, error) {
	header, err := c.FormFile("imageFile")
	if err != nil {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &forms.ImageFile{Filename: header.Filename, Content: content}, nil
}

func formJSON(f forms.RestaurantForm) fiber.Map {
	items := make([]fiber.Map, 0, len(f.MenuItems))
	for _, item := range f.MenuItems {
		items = append(items, fiber.Map{"name": item.Name, "price": item.Price})
	}

	return fiber.Map{
		"restaurantName":        f.Name,
		"city":                  f.City,
		"country":               f.Country,
		"deliveryPrice":         f.DeliveryPrice,
		"estimatedDeliveryTime": f.EstimatedDeliveryTime,
		"cuisines":              f.Cuisines,
		"menuItems":             items,
		"imageUrl":              f.ImageURL,
	}
}

// upstreamError maps data-service failures to a gateway response. Transport
// failures stay transport failures; they are never folded into field errors.
func upstreamError(err error) error {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		log.Printf("upstream rejected request: %v", apiErr)
		return fiber.NewError(fiber.StatusBadGateway, "upstream service rejected the request")
	}
	log.Printf("upstream request failed: %v", err)
	return fiber.NewError(fiber.StatusBadGateway, "upstream service unavailable")
}
