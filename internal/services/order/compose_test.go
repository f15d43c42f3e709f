package order

import (
	"strings"
	"testing"

	"mansaf-kitchen/internal/models"
	"mansaf-kitchen/internal/pricing"
)

func TestComposeSummary_LambWithExtras(t *testing.T) {
	table := pricing.Default()
	draft := models.OrderDraft{
		ProductType:     models.LocalLamb,
		SizeLabel:       "2 كيلو",
		Quantity:        1,
		Extras:          []string{"rice"},
		CustomerName:    "أبو خالد",
		CustomerPhone:   "0791234567",
		DeliveryAddress: "عمان، الدوار السابع",
		DeliveryZone:    models.ZoneAmman,
	}
	totals := pricing.ComputeTotals(&draft, table)

	want := `*طلب جديد من مطبخ أبو محمد* 🇯🇴
------------------
🥩 *النوع:* بلدي
⚖️ *الكمية/الحجم:* 2 كيلو
🔢 *عدد السدور:* 1
➕ *الإضافات:* إضافة رز
------------------
🚚 *التوصيل:* توصيل داخل عمان
------------------
💰 *سعر السدر:* 38.00 دينار
💵 *سعر الإضافات:* 1.00 دينار
🛵 *رسوم التوصيل:* 3.00 دينار
🧾 *الإجمالي الكلي:* 42.00 دينار
------------------
👤 *الاسم:* أبو خالد
📱 *رقم الهاتف:* 0791234567
📍 *العنوان:* عمان، الدوار السابع
------------------
الرجاء تأكيد الطلب!`

	got := ComposeSummary(&draft, totals, table)
	if got != want {
		t.Errorf("summary mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestComposeSummary_ChickenToGovernorate(t *testing.T) {
	table := pricing.Default()
	draft := models.OrderDraft{
		ProductType:     models.Chicken,
		SizeLabel:       "3 جاجات",
		Quantity:        2,
		Extras:          []string{},
		CustomerName:    "أم محمد",
		CustomerPhone:   "0785555555",
		DeliveryAddress: "إربد، شارع الجامعة",
		DeliveryZone:    models.ZoneOutside,
		Governorate:     "إربد",
	}
	totals := pricing.ComputeTotals(&draft, table)

	want := `*طلب جديد من مطبخ أبو محمد* 🇯🇴
------------------
🥩 *النوع:* جاج
🍗 *الكمية/الحجم:* 3 جاجات
🔢 *عدد السدور:* 2
------------------
🚚 *التوصيل:* محافظات (إربد)
------------------
💰 *سعر السدر:* 38.00 دينار
🛵 *رسوم التوصيل:* 10.00 دينار
🧾 *الإجمالي الكلي:* 86.00 دينار
------------------
👤 *الاسم:* أم محمد
📱 *رقم الهاتف:* 0785555555
📍 *العنوان:* إربد، شارع الجامعة
🏙️ *المحافظة:* إربد
------------------
الرجاء تأكيد الطلب!`

	got := ComposeSummary(&draft, totals, table)
	if got != want {
		t.Errorf("summary mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestComposeSummary_NoExtrasOmitsBothExtrasLines(t *testing.T) {
	table := pricing.Default()
	draft := models.OrderDraft{
		ProductType:  models.RomanianLamb,
		SizeLabel:    "1 كيلو",
		Quantity:     1,
		Extras:       []string{},
		DeliveryZone: models.ZonePickup,
	}
	totals := pricing.ComputeTotals(&draft, table)

	got := ComposeSummary(&draft, totals, table)
	if strings.Contains(got, "الإضافات") {
		t.Errorf("summary mentions extras for an order without extras:\n%s", got)
	}
	if strings.Contains(got, "المحافظة") {
		t.Errorf("summary mentions a governorate for a pickup order:\n%s", got)
	}
	if strings.Contains(got, "\n\n") {
		t.Errorf("omitted lines left a blank line:\n%s", got)
	}
}

func TestComposeSummary_TracksDraftChanges(t *testing.T) {
	table := pricing.Default()
	draft := models.OrderDraft{
		ProductType:  models.LocalLamb,
		SizeLabel:    "2 كيلو",
		Quantity:     1,
		Extras:       []string{},
		CustomerName: "أبو خالد",
		DeliveryZone: models.ZoneAmman,
	}

	first := ComposeSummary(&draft, pricing.ComputeTotals(&draft, table), table)
	same := ComposeSummary(&draft, pricing.ComputeTotals(&draft, table), table)
	if first != same {
		t.Error("summary differs for an unchanged draft")
	}

	draft.Quantity = 2
	changed := ComposeSummary(&draft, pricing.ComputeTotals(&draft, table), table)
	if changed == first {
		t.Error("summary did not change when the draft changed")
	}
}
