package pricing

import (
	"github.com/shopspring/decimal"

	"mansaf-kitchen/internal/models"
)

// Totals are the derived monetary figures for a draft. They are never stored;
// callers recompute them from the draft and table after every mutation.
type Totals struct {
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BasePrice   decimal.Decimal `json:"base_price"`
	ExtrasTotal decimal.Decimal `json:"extras_total"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	GrandTotal  decimal.Decimal `json:"grand_total"`

	// Priced is false when a selected combination was missing from the
	// table and contributed zero. The total is still returned; the caller
	// decides whether to surface the degraded quote.
	Priced bool `json:"priced"`
}

// ComputeUnitPrice returns the per-sder price for the combination, or zero
// when it is absent from the table.
func ComputeUnitPrice(t *Table, product models.ProductType, size string) decimal.Decimal {
	price, _ := t.UnitPrice(product, size)
	return price
}

// ComputeDeliveryFee resolves the fee for a zone. For the outside zone the
// governorate table is consulted instead; an unknown or unset governorate
// contributes zero.
func ComputeDeliveryFee(t *Table, zone models.DeliveryZone, governorate string) decimal.Decimal {
	if zone == models.ZoneOutside {
		fee, _ := t.GovernorateFee(governorate)
		return fee
	}
	for _, d := range t.delivery {
		if d.Zone == zone {
			return d.Fee
		}
	}
	return decimal.Zero
}

// ComputeTotals derives all monetary figures from a draft. It is pure: same
// draft and table, same result. Missing table entries degrade to zero and
// clear Priced rather than failing the computation.
func ComputeTotals(d *models.OrderDraft, t *Table) Totals {
	priced := true

	unit := decimal.Zero
	if d.ProductType != "" && d.SizeLabel != "" {
		var ok bool
		unit, ok = t.UnitPrice(d.ProductType, d.SizeLabel)
		if !ok {
			priced = false
		}
	}

	quantity := d.Quantity
	if quantity < 1 {
		quantity = 1
	}
	base := unit.Mul(decimal.NewFromInt(int64(quantity)))

	extras := decimal.Zero
	for _, id := range d.Extras {
		e, ok := t.Extra(id)
		if !ok {
			priced = false
			continue
		}
		extras = extras.Add(e.Price)
	}

	fee := decimal.Zero
	if d.DeliveryZone == models.ZoneOutside {
		if d.Governorate != "" {
			var ok bool
			fee, ok = t.GovernorateFee(d.Governorate)
			if !ok {
				priced = false
			}
		}
	} else {
		fee = ComputeDeliveryFee(t, d.DeliveryZone, "")
	}

	return Totals{
		UnitPrice:   unit,
		BasePrice:   base,
		ExtrasTotal: extras,
		DeliveryFee: fee,
		GrandTotal:  base.Add(extras).Add(fee),
		Priced:      priced,
	}
}
