package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRestaurantForm() RestaurantForm {
	return RestaurantForm{
		Name:                  "Mario's",
		City:                  "Naples",
		Country:               "Italy",
		DeliveryPrice:         "4.50",
		EstimatedDeliveryTime: "30",
		Cuisines:              []string{"Italian", "Pizza"},
		MenuItems: []MenuItemForm{
			{Name: "Burger", Price: "5.00"},
			{Name: "Fries", Price: "2.50"},
		},
		ImageURL: "https://cdn.example.com/marios.png",
	}
}

func TestValidateRestaurantSuccess(t *testing.T) {
	v, errs := ValidateRestaurant(validRestaurantForm())
	require.Nil(t, errs)
	require.NotNil(t, v)

	assert.Equal(t, "Mario's", v.Name)
	assert.Equal(t, 4.5, v.DeliveryPrice)
	assert.Equal(t, 30.0, v.EstimatedDeliveryTime)
	require.Len(t, v.MenuItems, 2)
	assert.Equal(t, ValidatedMenuItem{Name: "Burger", Price: 5}, v.MenuItems[0])
	assert.Equal(t, ValidatedMenuItem{Name: "Fries", Price: 2.5}, v.MenuItems[1])
}

func TestValidateRestaurantRequiredText(t *testing.T) {
	form := validRestaurantForm()
	form.Name = ""
	form.City = "   "
	form.Country = ""

	v, errs := ValidateRestaurant(form)
	assert.Nil(t, v)
	assert.Equal(t, "Restaurant name is required", errs["restaurantName"])
	assert.Equal(t, "City is required", errs["city"])
	assert.Equal(t, "Country is required", errs["country"])
}

func TestValidateRestaurantNumericPipeline(t *testing.T) {
	cases := []struct {
		name  string
		price string
		want  string
	}{
		{"empty", "", "Delivery price is required"},
		{"not a number", "abc", "Delivery price must be a number"},
		{"negative", "-1", "Delivery price must be at least 0"},
		// float sentinels parse under strconv but are not amounts
		{"nan", "NaN", "Delivery price must be a number"},
		{"positive infinity", "Inf", "Delivery price must be a number"},
		{"spelled infinity", "Infinity", "Delivery price must be a number"},
		{"signed infinity", "+Inf", "Delivery price must be a number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validRestaurantForm()
			form.DeliveryPrice = tc.price

			v, errs := ValidateRestaurant(form)
			assert.Nil(t, v)
			assert.Equal(t, tc.want, errs["deliveryPrice"])
		})
	}
}

func TestValidateRestaurantSiblingsIndependent(t *testing.T) {
	form := validRestaurantForm()
	form.Name = ""
	form.EstimatedDeliveryTime = "soon"

	_, errs := ValidateRestaurant(form)
	// one failing field does not mask the other
	assert.Equal(t, "Restaurant name is required", errs["restaurantName"])
	assert.Equal(t, "Estimated delivery time must be a number", errs["estimatedDeliveryTime"])
	assert.False(t, errs.Has("city"))
}

func TestValidateRestaurantCuisines(t *testing.T) {
	form := validRestaurantForm()
	form.Cuisines = nil

	_, errs := ValidateRestaurant(form)
	assert.Equal(t, "Select at least one cuisine", errs["cuisines"])
}

func TestValidateRestaurantMenuItemErrors(t *testing.T) {
	form := validRestaurantForm()
	form.MenuItems = []MenuItemForm{
		{Name: "Burger", Price: "5.00"},
		{Name: "", Price: "free"},
		{Name: "Shake", Price: "-2"},
	}

	v, errs := ValidateRestaurant(form)
	assert.Nil(t, v)
	assert.Equal(t, "Name is required", errs["menuItems[1].name"])
	assert.Equal(t, "Price must be a number", errs["menuItems[1].price"])
	assert.Equal(t, "Price must be at least 0", errs["menuItems[2].price"])
	assert.False(t, errs.Has("menuItems[0].name"))
	assert.False(t, errs.Has("menuItems[0].price"))
}

func TestValidateRestaurantImageRule(t *testing.T) {
	file := &ImageFile{Filename: "hero.png", Content: []byte{1, 2, 3}}

	cases := []struct {
		name    string
		url     string
		file    *ImageFile
		wantErr bool
	}{
		{"both missing", "", nil, true},
		{"url only", "https://cdn.example.com/a.png", nil, false},
		{"file only", "", file, false},
		{"both present", "https://cdn.example.com/a.png", file, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validRestaurantForm()
			form.ImageURL = tc.url
			form.ImageFile = tc.file

			v, errs := ValidateRestaurant(form)
			if tc.wantErr {
				assert.Nil(t, v)
				// the cross-field rule attaches to imageFile only
				assert.Equal(t, "Either image URL or image File must be provided", errs["imageFile"])
				assert.False(t, errs.Has("imageUrl"))
			} else {
				assert.Nil(t, errs)
				assert.NotNil(t, v)
			}
		})
	}
}

func TestCloneIsolation(t *testing.T) {
	form := validRestaurantForm()
	form.ImageFile = &ImageFile{Filename: "a.png", Content: []byte{1}}

	snapshot := form.Clone()
	form.MenuItems[0].Name = "Changed"
	form.Cuisines[0] = "Changed"
	form.ImageFile.Content[0] = 9

	assert.Equal(t, "Burger", snapshot.MenuItems[0].Name)
	assert.Equal(t, "Italian", snapshot.Cuisines[0])
	assert.Equal(t, byte(1), snapshot.ImageFile.Content[0])
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{"b": "second", "a": "first"}
	assert.Equal(t, "a: first; b: second", errs.Error())
}
