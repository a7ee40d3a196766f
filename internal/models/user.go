package models

// User is the merchant account profile held by the upstream data service.
// The auth provider owns the identity; AuthID ties the two together.
type User struct {
	ID           string `json:"id"`
	AuthID       string `json:"authId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// UserUpdate is the outbound profile update body. Email and identity fields
// are owned elsewhere and never sent.
type UserUpdate struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	Country      string `json:"country"`
}
