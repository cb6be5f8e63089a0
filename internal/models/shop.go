package models

import "strings"

// Shop is one merchant listing scraped from the shop directory page.
type Shop struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Category     string `json:"category,omitempty"`
	VeryPrice    string `json:"veryPrice,omitempty"`
	PaymentRatio string `json:"paymentRatio,omitempty"`
	Link         string `json:"link,omitempty"`

	// Derived by the address classifier
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`

	// Filled from the shop's own page when detail crawling is enabled
	ShopDetail
}

// ShopDetail holds the fields only the shop's detail page carries.
type ShopDetail struct {
	Phone          string   `json:"phone,omitempty"`
	Hours          string   `json:"hours,omitempty"`
	Description    string   `json:"description,omitempty"`
	AddressDetail  string   `json:"address_detail,omitempty"`
	PriceInfo      string   `json:"price_info,omitempty"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
}

// IsZero reports whether no detail field is set.
func (d ShopDetail) IsZero() bool {
	return d.Phone == "" && d.Hours == "" && d.Description == "" &&
		d.AddressDetail == "" && d.PriceInfo == "" && len(d.PaymentMethods) == 0
}

// ShopKey identifies a shop for deduplication.
type ShopKey struct {
	Name    string
	Address string
}

// Key returns the identity key of the shop. Classification fields are not part of it.
func (s Shop) Key() ShopKey {
	return ShopKey{Name: s.Name, Address: s.Address}
}

// IsValid reports whether the shop carries the two required fields.
func (s Shop) IsValid() bool {
	return strings.TrimSpace(s.Name) != "" && strings.TrimSpace(s.Address) != ""
}

// IsClassified reports whether the classifier assigned a country.
func (s Shop) IsClassified() bool {
	return s.Country != ""
}

// ID returns the path-derived identifier the detail view keys on:
// the last non-empty segment of the shop link.
func (s Shop) ID() string {
	link := strings.TrimSpace(s.Link)
	if link == "" {
		return ""
	}
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	link = strings.TrimRight(link, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}
