package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/eatery/internal/models"
)

func TestValidateProfile(t *testing.T) {
	v, errs := ValidateProfile(ProfileForm{
		Name:         "Sam",
		AddressLine1: "1 High Street",
		City:         "London",
		Country:      "UK",
	})
	require.Nil(t, errs)
	assert.Equal(t, "Sam", v.Name)
	assert.Equal(t, "1 High Street", v.AddressLine1)
}

func TestValidateProfileRequired(t *testing.T) {
	v, errs := ValidateProfile(ProfileForm{})
	assert.Nil(t, v)
	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Address line 1 is required", errs["addressLine1"])
	assert.Equal(t, "City is required", errs["city"])
	assert.Equal(t, "Country is required", errs["country"])
}

func TestDisplayUser(t *testing.T) {
	form := DisplayUser(models.User{
		Email:        "sam@example.com",
		Name:         "Sam",
		AddressLine1: "1 High Street",
		City:         "London",
		Country:      "UK",
	})
	assert.Equal(t, "sam@example.com", form.Email)
	assert.Equal(t, "Sam", form.Name)
}
