package order

import (
	"fmt"
	"strings"

	"mansaf-kitchen/internal/models"
	"mansaf-kitchen/internal/pricing"
)

const summaryDivider = "------------------"

// ComposeSummary renders the itemized order summary sent to the restaurant.
// The output is the system's wire format: deterministic, line-oriented, fully
// reconstructible from the draft, every monetary figure with two decimals.
// Optional lines (extras, governorate) are omitted entirely when empty.
func ComposeSummary(d *models.OrderDraft, totals pricing.Totals, t *pricing.Table) string {
	extraLabels := make([]string, 0, len(d.Extras))
	for _, id := range d.Extras {
		if e, ok := t.Extra(id); ok {
			extraLabels = append(extraLabels, e.Label)
		}
	}
	extras := strings.Join(extraLabels, "، ")

	sizeEmoji := "⚖️"
	if d.ProductType == models.Chicken {
		sizeEmoji = "🍗"
	}

	deliveryLabel := t.DeliveryLabel(d.DeliveryZone)
	if d.DeliveryZone == models.ZoneOutside {
		deliveryLabel = fmt.Sprintf("محافظات (%s)", d.Governorate)
	}

	lines := []string{
		"*طلب جديد من مطبخ أبو محمد* 🇯🇴",
		summaryDivider,
		fmt.Sprintf("🥩 *النوع:* %s", d.ProductType.Label()),
		fmt.Sprintf("%s *الكمية/الحجم:* %s", sizeEmoji, d.SizeLabel),
		fmt.Sprintf("🔢 *عدد السدور:* %d", d.Quantity),
	}
	if extras != "" {
		lines = append(lines, fmt.Sprintf("➕ *الإضافات:* %s", extras))
	}
	lines = append(lines,
		summaryDivider,
		fmt.Sprintf("🚚 *التوصيل:* %s", deliveryLabel),
		summaryDivider,
		fmt.Sprintf("💰 *سعر السدر:* %s دينار", totals.UnitPrice.StringFixed(2)),
	)
	if extras != "" {
		lines = append(lines, fmt.Sprintf("💵 *سعر الإضافات:* %s دينار", totals.ExtrasTotal.StringFixed(2)))
	}
	lines = append(lines,
		fmt.Sprintf("🛵 *رسوم التوصيل:* %s دينار", totals.DeliveryFee.StringFixed(2)),
		fmt.Sprintf("🧾 *الإجمالي الكلي:* %s دينار", totals.GrandTotal.StringFixed(2)),
		summaryDivider,
		fmt.Sprintf("👤 *الاسم:* %s", d.CustomerName),
		fmt.Sprintf("📱 *رقم الهاتف:* %s", d.CustomerPhone),
		fmt.Sprintf("📍 *العنوان:* %s", d.DeliveryAddress),
	)
	if d.DeliveryZone == models.ZoneOutside {
		lines = append(lines, fmt.Sprintf("🏙️ *المحافظة:* %s", d.Governorate))
	}
	lines = append(lines,
		summaryDivider,
		"الرجاء تأكيد الطلب!",
	)

	return strings.Join(lines, "\n")
}
