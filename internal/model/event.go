package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductAction names the kind of change a ProductEvent describes.
type ProductAction string

const (
	// ProductCreated is emitted after a product is inserted.
	ProductCreated ProductAction = "created"
	// ProductUpdated is emitted after a product is overwritten.
	ProductUpdated ProductAction = "updated"
	// ProductDeleted is emitted after a product is removed, by id or by name.
	ProductDeleted ProductAction = "deleted"
)

// ProductEvent is a change notification about a single product.
type ProductEvent struct {
	ID         uuid.UUID       `json:"id"`
	Action     ProductAction   `json:"action"`
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name"`
	Tag        string          `json:"tag"`
	Price      decimal.Decimal `json:"price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewProductEvent builds an event for the given product snapshot.
func NewProductEvent(action ProductAction, p Product) ProductEvent {
	e := ProductEvent{
		Action:    action,
		ProductID: p.ID,
		Name:      p.Name,
		Tag:       p.Tag,
		Price:     p.Price,
	}
	e.InitMeta()
	return e
}

// InitMeta initializes the event metadata including ID and timestamp.
func (e *ProductEvent) InitMeta() {
	e.ID = uuid.New()
	e.OccurredAt = time.Now().UTC()
}
