package model

import "strings"

// Address is a delivery address kept in a customer's address book.
type Address struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"-"`
	Province     string `json:"province"`
	City         string `json:"city"`
	District     string `json:"district"`
	Address      string `json:"address"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

// FullAddress joins the address parts in delivery-label order.
func (a Address) FullAddress() string {
	return strings.Join([]string{a.Province, a.City, a.District, a.Address, a.ContactName, a.ContactPhone}, "\n")
}
