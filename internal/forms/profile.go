package forms

import "github.com/example/eatery/internal/models"

// ProfileForm is the editable merchant account profile. Email is shown but
// owned by the auth provider, so it is not validated or submitted.
type ProfileForm struct {
	Email        string
	Name         string
	AddressLine1 string
	City         string
	Country      string
}

// ValidatedProfile is a profile form that passed validation.
type ValidatedProfile struct {
	Name         string
	AddressLine1 string
	City         string
	Country      string
}

var (
	profileNameField    = TextField{Rules: []Rule{NonEmpty("Name is required")}}
	addressLine1Field   = TextField{Rules: []Rule{NonEmpty("Address line 1 is required")}}
	profileCityField    = TextField{Rules: []Rule{NonEmpty("City is required")}}
	profileCountryField = TextField{Rules: []Rule{NonEmpty("Country is required")}}
)

// ValidateProfile checks the profile rule table.
func ValidateProfile(form ProfileForm) (*ValidatedProfile, FieldErrors) {
	errs := FieldErrors{}

	profileNameField.Validate("name", form.Name, errs)
	addressLine1Field.Validate("addressLine1", form.AddressLine1, errs)
	profileCityField.Validate("city", form.City, errs)
	profileCountryField.Validate("country", form.Country, errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return &ValidatedProfile{
		Name:         form.Name,
		AddressLine1: form.AddressLine1,
		City:         form.City,
		Country:      form.Country,
	}, nil
}

// DisplayUser hydrates a stored user into the profile form.
func DisplayUser(u models.User) ProfileForm {
	return ProfileForm{
		Email:        u.Email,
		Name:         u.Name,
		AddressLine1: u.AddressLine1,
		City:         u.City,
		Country:      u.Country,
	}
}
