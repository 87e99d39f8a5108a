package model

import (
	"github.com/shopspring/decimal"
)

// PricePlaces is the number of fractional digits a product price is stored with.
const PricePlaces = 2

// PriceIntegerDigits bounds the integer part of a price, matching the NUMERIC(18,2) column.
const PriceIntegerDigits = 16

var priceLimit = decimal.New(1, PriceIntegerDigits)

func init() {
	// prices travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents an antique store product.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	URL   string          `json:"url"`
	Tag   string          `json:"tag"`
}

// ProductInput carries the replaceable fields of a product for create and update.
// Nil pointers mean the field was absent from the request.
type ProductInput struct {
	Name  *string
	Price *decimal.Decimal
	URL   *string
	Tag   *string
}

// MissingFields returns the names of the required fields that are nil.
func (in ProductInput) MissingFields() []string {
	var missing []string
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.Tag == nil {
		missing = append(missing, "tag")
	}
	return missing
}

// InvalidFields returns the names of present fields whose values cannot be stored.
// A price is out of range once its rounded magnitude needs more than PriceIntegerDigits integer digits.
func (in ProductInput) InvalidFields() []string {
	var invalid []string
	if in.Price != nil && in.Price.Round(PricePlaces).Abs().GreaterThanOrEqual(priceLimit) {
		invalid = append(invalid, "price")
	}
	return invalid
}

// ApplyTo overwrites every field of p except ID.
// A nil URL becomes the empty string; price is rounded to PricePlaces.
func (in ProductInput) ApplyTo(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = in.Price.Round(PricePlaces)
	}
	if in.Tag != nil {
		p.Tag = *in.Tag
	}
	p.URL = ""
	if in.URL != nil {
		p.URL = *in.URL
	}
}
