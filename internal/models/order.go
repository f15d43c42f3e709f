package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductType represents the kind of mansaf a customer can order.
type ProductType string

const (
	LocalLamb    ProductType = "local_lamb"
	RomanianLamb ProductType = "romanian_lamb"
	ImportedLamb ProductType = "imported_lamb"
	Chicken      ProductType = "chicken"
)

// Label returns the Arabic menu label for the product type.
func (p ProductType) Label() string {
	switch p {
	case LocalLamb:
		return "بلدي"
	case RomanianLamb:
		return "روماني"
	case ImportedLamb:
		return "مستورد"
	case Chicken:
		return "جاج"
	default:
		return string(p)
	}
}

// Valid reports whether the value is one of the enumerated product types.
func (p ProductType) Valid() bool {
	switch p {
	case LocalLamb, RomanianLamb, ImportedLamb, Chicken:
		return true
	default:
		return false
	}
}

// DeliveryZone represents how an order reaches the customer.
type DeliveryZone string

const (
	ZonePickup   DeliveryZone = "pickup"
	ZoneSweileh  DeliveryZone = "sweileh"
	ZoneAmman    DeliveryZone = "amman"
	ZoneAmmanFar DeliveryZone = "amman_far"
	ZoneOutside  DeliveryZone = "outside"
)

// DefaultZone is the zone a fresh draft starts with.
const DefaultZone = ZoneAmman

// Valid reports whether the value is one of the enumerated delivery zones.
func (z DeliveryZone) Valid() bool {
	switch z {
	case ZonePickup, ZoneSweileh, ZoneAmman, ZoneAmmanFar, ZoneOutside:
		return true
	default:
		return false
	}
}

// OrderDraft holds the in-progress selections of a single order session.
// It is exclusively owned by that session; there is no concurrent writer.
type OrderDraft struct {
	ProductType     ProductType  `json:"product_type,omitempty"`
	SizeLabel       string       `json:"size_label,omitempty"`
	Quantity        int          `json:"quantity"`
	Extras          []string     `json:"extras"`
	CustomerName    string       `json:"customer_name"`
	CustomerPhone   string       `json:"customer_phone"`
	DeliveryAddress string       `json:"delivery_address"`
	DeliveryZone    DeliveryZone `json:"delivery_zone"`
	Governorate     string       `json:"governorate,omitempty"`
}

// NewOrderDraft returns a zeroed draft with the documented defaults.
func NewOrderDraft() OrderDraft {
	return OrderDraft{
		Quantity:     1,
		Extras:       []string{},
		DeliveryZone: DefaultZone,
	}
}

// HasExtra reports whether the extra is already selected.
func (d *OrderDraft) HasExtra(id string) bool {
	for _, e := range d.Extras {
		if e == id {
			return true
		}
	}
	return false
}

// Session is one customer's walk through the order wizard.
type Session struct {
	ID        uuid.UUID  `json:"session_id"`
	Step      Step       `json:"step"`
	Draft     OrderDraft `json:"draft"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewSession opens a fresh session at the first wizard step. Nothing is
// carried over from any previous session.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		Step:      StepChooseProduct,
		Draft:     NewOrderDraft(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records that the session was just mutated.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
