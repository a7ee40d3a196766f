package forms

import (
	"fmt"
	"strconv"

	"github.com/example/eatery/internal/currency"
	"github.com/example/eatery/internal/models"
	"github.com/example/eatery/internal/wire"
)

// MenuItemAttrs is the attribute order of one menu item on the wire:
// menuItems[i][name], menuItems[i][price]. Fixed by the upstream parser.
var MenuItemAttrs = []string{"name", "price"}

// BlankRestaurantForm is the default edit state for a merchant with no
// restaurant yet: empty fields and a single blank menu row.
func BlankRestaurantForm() RestaurantForm {
	return RestaurantForm{
		Cuisines:  []string{},
		MenuItems: []MenuItemForm{{}},
	}
}

// DisplayRestaurant hydrates a canonical restaurant into its display form:
// minor-unit integers become two-decimal strings, numbers become the strings
// a form field holds, and the stored image arrives as a URL reference only.
// ImageFile stays empty; files never round-trip out of storage.
func DisplayRestaurant(r models.Restaurant) RestaurantForm {
	items := make([]MenuItemForm, 0, len(r.MenuItems))
	for _, item := range r.MenuItems {
		items = append(items, MenuItemForm{
			Name:  item.Name,
			Price: currency.ToDisplayDecimal(item.Price),
		})
	}

	return RestaurantForm{
		Name:                  r.Name,
		City:                  r.City,
		Country:               r.Country,
		DeliveryPrice:         currency.ToDisplayDecimal(r.DeliveryPrice),
		EstimatedDeliveryTime: strconv.Itoa(r.EstimatedDeliveryTime),
		Cuisines:              append([]string{}, r.Cuisines...),
		MenuItems:             items,
		ImageURL:              r.ImageURL,
	}
}

// ParseRestaurantForm rebuilds the display form from submitted multipart
// values plus the optional uploaded image. Scalar fields are copied verbatim;
// cuisines and menuItems are recovered through the indexed list codec, so a
// gap or malformed index is a decode error here, not a silent skip.
func ParseRestaurantForm(values map[string][]string, image *ImageFile) (RestaurantForm, error) {
	cuisines, err := wire.DecodeValues("cuisines", values)
	if err != nil {
		return RestaurantForm{}, fmt.Errorf("decode cuisines: %w", err)
	}

	rawItems, err := wire.DecodeList("menuItems", MenuItemAttrs, values)
	if err != nil {
		return RestaurantForm{}, fmt.Errorf("decode menu items: %w", err)
	}
	items := make([]MenuItemForm, 0, len(rawItems))
	for _, raw := range rawItems {
		items = append(items, MenuItemForm{Name: raw["name"], Price: raw["price"]})
	}

	return RestaurantForm{
		Name:                  firstValue(values, "restaurantName"),
		City:                  firstValue(values, "city"),
		Country:               firstValue(values, "country"),
		DeliveryPrice:         firstValue(values, "deliveryPrice"),
		EstimatedDeliveryTime: firstValue(values, "estimatedDeliveryTime"),
		Cuisines:              cuisines,
		MenuItems:             items,
		ImageURL:              firstValue(values, "imageUrl"),
		ImageFile:             image,
	}, nil
}

// Payload encodes a validated form into the canonical outbound payload:
// prices in minor units, lists flattened through the indexed codec, and the
// imageFile part present only when this edit session uploaded one. An absent
// imageFile key means "keep the stored image"; it is never sent as an empty
// value.
func (v *ValidatedRestaurant) Payload() wire.Payload {
	var p wire.Payload

	p.Append("restaurantName", v.Name)
	p.Append("city", v.City)
	p.Append("country", v.Country)
	p.Append("deliveryPrice", strconv.FormatInt(currency.ToMinorUnits(v.DeliveryPrice), 10))
	p.Append("estimatedDeliveryTime", currency.ToNumericString(v.EstimatedDeliveryTime))

	p.Fields = append(p.Fields, wire.EncodeValues("cuisines", v.Cuisines)...)

	items := make([]map[string]string, 0, len(v.MenuItems))
	for _, item := range v.MenuItems {
		items = append(items, map[string]string{
			"name":  item.Name,
			"price": strconv.FormatInt(currency.ToMinorUnits(item.Price), 10),
		})
	}
	p.Fields = append(p.Fields, wire.EncodeList("menuItems", MenuItemAttrs, items)...)

	if v.ImageFile != nil {
		p.Image = &wire.FileUpload{
			FieldName: "imageFile",
			Filename:  v.ImageFile.Filename,
			Content:   v.ImageFile.Content,
		}
	}
	return p
}

func firstValue(values map[string][]string, key string) string {
	if vals := values[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}
