package pricing

import (
	"github.com/shopspring/decimal"

	"mansaf-kitchen/internal/models"
)

// Extra is an optional add-on priced independently of the base dish.
type Extra struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// DeliveryOption is a delivery zone with its flat fee. The outside zone has
// no flat fee; it is priced per governorate.
type DeliveryOption struct {
	Zone  models.DeliveryZone `json:"zone"`
	Label string              `json:"label"`
	Fee   decimal.Decimal     `json:"fee"`
}

// Governorate tiers the delivery fee for addresses outside the city.
type Governorate struct {
	Name string          `json:"name"`
	Fee  decimal.Decimal `json:"fee"`
}

// Table is the process-wide price list. It is immutable after construction.
type Table struct {
	unitPrices   map[models.ProductType]map[string]decimal.Decimal
	sizes        map[models.ProductType][]string
	extras       []Extra
	delivery     []DeliveryOption
	governorates []Governorate
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// lambSizes and chickenSizes are the size labels offered per product family.
var (
	lambSizes    = []string{"1 كيلو", "2 كيلو", "3 كيلو", "4 كيلو"}
	chickenSizes = []string{"1 جاجه", "2 جاجات", "3 جاجات", "4 جاجات"}
)

// Default returns the restaurant's current price list.
func Default() *Table {
	return &Table{
		unitPrices: map[models.ProductType]map[string]decimal.Decimal{
			models.LocalLamb: {
				"1 كيلو": dec("20"),
				"2 كيلو": dec("38"),
				"3 كيلو": dec("55"),
				"4 كيلو": dec("70"),
			},
			models.RomanianLamb: {
				"1 كيلو": dec("18"),
				"2 كيلو": dec("34"),
				"3 كيلو": dec("50"),
				"4 كيلو": dec("65"),
			},
			models.ImportedLamb: {
				"1 كيلو": dec("15"),
				"2 كيلو": dec("29"),
				"3 كيلو": dec("42"),
				"4 كيلو": dec("54"),
			},
			models.Chicken: {
				"1 جاجه":  dec("14"),
				"2 جاجات": dec("26"),
				"3 جاجات": dec("38"),
				"4 جاجات": dec("48"),
			},
		},
		sizes: map[models.ProductType][]string{
			models.LocalLamb:    lambSizes,
			models.RomanianLamb: lambSizes,
			models.ImportedLamb: lambSizes,
			models.Chicken:      chickenSizes,
		},
		extras: []Extra{
			{ID: "rice", Label: "إضافة رز", Price: dec("1.00")},
			{ID: "jameed", Label: "إضافة جميد كركي سائل", Price: dec("2.00")},
			{ID: "almonds", Label: "إضافة لوز", Price: dec("0.70")},
		},
		delivery: []DeliveryOption{
			{Zone: models.ZonePickup, Label: "استلام من المطعم", Fee: dec("0")},
			{Zone: models.ZoneSweileh, Label: "توصيل داخل صويلح", Fee: dec("1.50")},
			{Zone: models.ZoneAmman, Label: "توصيل داخل عمان", Fee: dec("3.00")},
			{Zone: models.ZoneAmmanFar, Label: "توصيل أطراف عمان", Fee: dec("3.50")},
			{Zone: models.ZoneOutside, Label: "توصيل محافظات", Fee: dec("0")},
		},
		governorates: []Governorate{
			{Name: "الزرقاء", Fee: dec("6.00")},
			{Name: "البلقاء (السلط)", Fee: dec("6.00")},
			{Name: "مأدبا", Fee: dec("7.00")},
			{Name: "إربد", Fee: dec("10.00")},
			{Name: "جرش", Fee: dec("10.00")},
			{Name: "عجلون", Fee: dec("11.00")},
			{Name: "المفرق", Fee: dec("11.00")},
			{Name: "الكرك", Fee: dec("12.00")},
			{Name: "الطفيلة", Fee: dec("14.00")},
			{Name: "معان", Fee: dec("16.00")},
			{Name: "العقبة", Fee: dec("17.00")},
		},
	}
}

// UnitPrice looks up the price of one sder for the product and size. The
// second return value is false when the combination is not in the table.
func (t *Table) UnitPrice(product models.ProductType, size string) (decimal.Decimal, bool) {
	prices, ok := t.unitPrices[product]
	if !ok {
		return decimal.Zero, false
	}
	price, ok := prices[size]
	if !ok {
		return decimal.Zero, false
	}
	return price, true
}

// Sizes returns the size labels offered for the product, in menu order.
func (t *Table) Sizes(product models.ProductType) []string {
	return t.sizes[product]
}

// ValidSize reports whether the size label belongs to the product's size set.
func (t *Table) ValidSize(product models.ProductType, size string) bool {
	for _, s := range t.sizes[product] {
		if s == size {
			return true
		}
	}
	return false
}

// Extras returns the add-ons on offer, in menu order.
func (t *Table) Extras() []Extra {
	return t.extras
}

// Extra returns the add-on with the given id.
func (t *Table) Extra(id string) (Extra, bool) {
	for _, e := range t.extras {
		if e.ID == id {
			return e, true
		}
	}
	return Extra{}, false
}

// DeliveryOptions returns the delivery choices, in menu order.
func (t *Table) DeliveryOptions() []DeliveryOption {
	return t.delivery
}

// DeliveryLabel returns the display label for a zone.
func (t *Table) DeliveryLabel(zone models.DeliveryZone) string {
	for _, d := range t.delivery {
		if d.Zone == zone {
			return d.Label
		}
	}
	return string(zone)
}

// Governorates returns the governorate fee tiers, in menu order.
func (t *Table) Governorates() []Governorate {
	return t.governorates
}

// GovernorateFee looks up the delivery fee for a governorate by name.
func (t *Table) GovernorateFee(name string) (decimal.Decimal, bool) {
	for _, g := range t.governorates {
		if g.Name == name {
			return g.Fee, true
		}
	}
	return decimal.Zero, false
}
