package repository

import (
	"strings"

	"github.com/iyhunko/antique-store-api/internal/model"
)

const (
	IDField    = "id"
	NameField  = "name"
	PriceField = "price"
	URLField   = "url"
	TagField   = "tag"
)

// Filter selects products from a Store.
// A nil Name or Tag leaves that dimension unconstrained.
type Filter struct {
	// Name matches products whose name starts with or ends with the value.
	Name *string
	// Tag matches products whose tag equals the value, case-sensitive.
	Tag *string
	// Limit caps the number of results when positive.
	Limit int
}

// NewFilter returns an unconstrained filter.
func NewFilter() *Filter {
	return &Filter{}
}

// WithName constrains the filter to names anchored by name at either end.
func (f *Filter) WithName(name string) *Filter {
	f.Name = &name
	return f
}

// WithTag constrains the filter to the exact tag.
func (f *Filter) WithTag(tag string) *Filter {
	f.Tag = &tag
	return f
}

// WithLimit caps the number of results.
func (f *Filter) WithLimit(limit int) *Filter {
	f.Limit = limit
	return f
}

// Matches reports whether p satisfies every constraint of the filter.
func (f Filter) Matches(p model.Product) bool {
	if f.Name != nil && !NameMatches(p.Name, *f.Name) {
		return false
	}
	if f.Tag != nil && p.Tag != *f.Tag {
		return false
	}
	return true
}

// NameMatches reports whether name starts with or ends with query.
func NameMatches(name, query string) bool {
	return strings.HasPrefix(name, query) || strings.HasSuffix(name, query)
}
