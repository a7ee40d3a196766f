package models

import "time"

// MenuItem is one dish on a restaurant's menu. Price is stored in integer
// minor currency units (cents), never as a decimal.
type MenuItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Restaurant is the canonical restaurant profile as the upstream data
// service stores and returns it. Monetary fields are minor units and the
// image is a remote reference; the editable decimal-string form of the same
// entity lives in the forms package and is never authoritative.
type Restaurant struct {
	ID                    string     `json:"id"`
	AccountID             string     `json:"accountId,omitempty"`
	Name                  string     `json:"restaurantName"`
	City                  string     `json:"city"`
	Country               string     `json:"country"`
	DeliveryPrice         int64      `json:"deliveryPrice"`
	EstimatedDeliveryTime int        `json:"estimatedDeliveryTime"`
	Cuisines              []string   `json:"cuisines"`
	MenuItems             []MenuItem `json:"menuItems"`
	ImageURL              string     `json:"imageUrl"`
	LastUpdated           *time.Time `json:"lastUpdated,omitempty"`
}
