package forms

import "fmt"

// ImageFile is a new image captured from the form in this edit session.
// Stored images never round-trip back into an ImageFile; only fresh uploads
// do.
type ImageFile struct {
	Filename string
	Content  []byte
}

// MenuItemForm is one editable menu row. Price is a decimal string in major
// units, exactly as typed.
type MenuItemForm struct {
	Name  string
	Price string
}

// RestaurantForm is the display representation of a restaurant profile: the
// transient, human-editable shape with string-held numerics. It lives for one
// edit session and is never authoritative; the canonical entity is
// models.Restaurant.
type RestaurantForm struct {
	Name                  string
	City                  string
	Country               string
	DeliveryPrice         string
	EstimatedDeliveryTime string
	Cuisines              []string
	MenuItems             []MenuItemForm
	ImageURL              string
	ImageFile             *ImageFile
}

// Clone returns a deep copy, so a snapshot taken at submit time is isolated
// from later edits.
func (f RestaurantForm) Clone() RestaurantForm {
	out := f
	out.Cuisines = append([]string(nil), f.Cuisines...)
	out.MenuItems = append([]MenuItemForm(nil), f.MenuItems...)
	if f.ImageFile != nil {
		img := ImageFile{
			Filename: f.ImageFile.Filename,
			Content:  append([]byte(nil), f.ImageFile.Content...),
		}
		out.ImageFile = &img
	}
	return out
}

// ValidatedMenuItem is a menu row that passed validation, price parsed.
type ValidatedMenuItem struct {
	Name  string
	Price float64
}

// ValidatedRestaurant is the outcome of a successful validation pass. All
// numeric fields hold verifiably parsed numbers; the converter stage works
// from these and never re-parses strings. Partial validity is never
// produced.
type ValidatedRestaurant struct {
	Name                  string
	City                  string
	Country               string
	DeliveryPrice         float64
	EstimatedDeliveryTime float64
	Cuisines              []string
	MenuItems             []ValidatedMenuItem
	ImageURL              string
	ImageFile             *ImageFile
}

// Per-field rule tables. Messages are part of the frontend contract and must
// match it verbatim.
var (
	restaurantNameField = TextField{Rules: []Rule{NonEmpty("Restaurant name is required")}}
	cityField           = TextField{Rules: []Rule{NonEmpty("City is required")}}
	countryField        = TextField{Rules: []Rule{NonEmpty("Country is required")}}
	menuItemNameField   = TextField{Rules: []Rule{NonEmpty("Name is required")}}

	deliveryPriceField = NumberField{
		RequiredMessage: "Delivery price is required",
		NumberMessage:   "Delivery price must be a number",
		MinMessage:      "Delivery price must be at least 0",
	}
	estimatedDeliveryTimeField = NumberField{
		RequiredMessage: "Estimated delivery time is required",
		NumberMessage:   "Estimated delivery time must be a number",
		MinMessage:      "Estimated delivery time must be at least 0",
	}
	menuItemPriceField = NumberField{
		RequiredMessage: "Price is required",
		NumberMessage:   "Price must be a number",
		MinMessage:      "Price must be at least 0",
	}
)

// recordRule is a whole-record predicate evaluated after the per-field
// rules. Its failure lands on a single named field even when the predicate
// spans several; the image rule below keeps that single-attachment behavior
// because the frontend renders the message under the file input.
type recordRule struct {
	field   string
	message string
	check   func(f *RestaurantForm) bool
}

var restaurantRecordRules = []recordRule{
	{
		field:   "imageFile",
		message: "Either image URL or image File must be provided",
		check: func(f *RestaurantForm) bool {
			return f.ImageURL != "" || f.ImageFile != nil
		},
	},
}

// ValidateRestaurant checks every field of the form independently and
// returns either a fully validated value or the per-field error map, never
// both.
func ValidateRestaurant(form RestaurantForm) (*ValidatedRestaurant, FieldErrors) {
	errs := FieldErrors{}

	v := &ValidatedRestaurant{
		Name:      form.Name,
		City:      form.City,
		Country:   form.Country,
		Cuisines:  append([]string(nil), form.Cuisines...),
		ImageURL:  form.ImageURL,
		ImageFile: form.ImageFile,
	}

	restaurantNameField.Validate("restaurantName", form.Name, errs)
	cityField.Validate("city", form.City, errs)
	countryField.Validate("country", form.Country, errs)

	if n, ok := deliveryPriceField.Validate("deliveryPrice", form.DeliveryPrice, errs); ok {
		v.DeliveryPrice = n
	}
	if n, ok := estimatedDeliveryTimeField.Validate("estimatedDeliveryTime", form.EstimatedDeliveryTime, errs); ok {
		v.EstimatedDeliveryTime = n
	}

	if len(form.Cuisines) == 0 {
		errs.add("cuisines", "Select at least one cuisine")
	}

	v.MenuItems = make([]ValidatedMenuItem, 0, len(form.MenuItems))
	for i, item := range form.MenuItems {
		menuItemNameField.Validate(fmt.Sprintf("menuItems[%d].name", i), item.Name, errs)
		price, ok := menuItemPriceField.Validate(fmt.Sprintf("menuItems[%d].price", i), item.Price, errs)
		if ok {
			v.MenuItems = append(v.MenuItems, ValidatedMenuItem{Name: item.Name, Price: price})
		}
	}

	for _, r := range restaurantRecordRules {
		if !r.check(&form) {
			errs.add(r.field, r.message)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return v, nil
}
