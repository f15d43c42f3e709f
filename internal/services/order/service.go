package order

import (
	"fmt"

	"mansaf-kitchen/internal/dispatch"
	"mansaf-kitchen/internal/logger"
	"mansaf-kitchen/internal/models"
	"mansaf-kitchen/internal/pricing"
)

// BlockedError reports which draft field stops the wizard from advancing or a
// selection from being applied. It is not fatal; correcting the field and
// retrying is the expected recovery.
type BlockedError struct {
	Field   string
	Message string
}

func (e BlockedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service owns the order wizard: it mutates drafts, enforces the step
// sequence, prices the draft and hands finished orders to WhatsApp.
type Service struct {
	table  *pricing.Table
	wa     *dispatch.WhatsApp
	logger *logger.Logger
}

// NewService creates the wizard service.
func NewService(table *pricing.Table, wa *dispatch.WhatsApp, log *logger.Logger) *Service {
	return &Service{
		table:  table,
		wa:     wa,
		logger: log,
	}
}

// Table exposes the price list, for the menu endpoint.
func (s *Service) Table() *pricing.Table {
	return s.table
}

// SelectProduct sets the product type. Switching products invalidates the
// size, so the size label is cleared whenever the type changes.
func (s *Service) SelectProduct(sess *models.Session, product models.ProductType) error {
	if !product.Valid() {
		return BlockedError{Field: "product_type", Message: "unknown product type"}
	}
	if sess.Draft.ProductType != product {
		sess.Draft.SizeLabel = ""
	}
	sess.Draft.ProductType = product
	sess.Touch()
	return nil
}

// SelectSize sets the size label. The label must belong to the size set of
// the currently selected product.
func (s *Service) SelectSize(sess *models.Session, size string) error {
	if sess.Draft.ProductType == "" {
		return BlockedError{Field: "product_type", Message: "select a product type first"}
	}
	if !s.table.ValidSize(sess.Draft.ProductType, size) {
		return BlockedError{Field: "size_label", Message: "size is not offered for this product"}
	}
	sess.Draft.SizeLabel = size
	sess.Touch()
	return nil
}

// SetQuantity sets the number of sders. There is no upper bound; oversized
// orders are routed to a direct chat by the presentation layer.
func (s *Service) SetQuantity(sess *models.Session, quantity int) error {
	if quantity < 1 {
		return BlockedError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	sess.Draft.Quantity = quantity
	sess.Touch()
	return nil
}

// SetExtras replaces the selected extras. Unknown ids are rejected and
// duplicates collapse; the result is a set.
func (s *Service) SetExtras(sess *models.Session, ids []string) error {
	extras := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.table.Extra(id); !ok {
			return BlockedError{Field: "extras", Message: fmt.Sprintf("unknown extra %q", id)}
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		extras = append(extras, id)
	}
	sess.Draft.Extras = extras
	sess.Touch()
	return nil
}

// ToggleExtra adds the extra if absent, removes it if present.
func (s *Service) ToggleExtra(sess *models.Session, id string) error {
	if _, ok := s.table.Extra(id); !ok {
		return BlockedError{Field: "extras", Message: fmt.Sprintf("unknown extra %q", id)}
	}
	if sess.Draft.HasExtra(id) {
		kept := sess.Draft.Extras[:0]
		for _, e := range sess.Draft.Extras {
			if e != id {
				kept = append(kept, e)
			}
		}
		sess.Draft.Extras = kept
	} else {
		sess.Draft.Extras = append(sess.Draft.Extras, id)
	}
	sess.Touch()
	return nil
}

// SetDelivery sets the delivery zone and, for the outside zone, the
// governorate. Moving between zones always clears the governorate so a stale
// value can never price or block an unrelated zone.
func (s *Service) SetDelivery(sess *models.Session, zone models.DeliveryZone, governorate string) error {
	if !zone.Valid() {
		return BlockedError{Field: "delivery_zone", Message: "unknown delivery zone"}
	}
	if sess.Draft.DeliveryZone != zone {
		sess.Draft.Governorate = ""
	}
	sess.Draft.DeliveryZone = zone
	if zone == models.ZoneOutside {
		sess.Draft.Governorate = governorate
	}
	sess.Touch()
	return nil
}

// SetContact sets the customer's name, phone and address.
func (s *Service) SetContact(sess *models.Session, name, phone, address string) error {
	sess.Draft.CustomerName = name
	sess.Draft.CustomerPhone = phone
	sess.Draft.DeliveryAddress = address
	sess.Touch()
	return nil
}

// Advance moves the session one step forward if the current step's gate is
// satisfied. On a blocked gate the step does not change and the returned
// BlockedError names the missing field.
func (s *Service) Advance(sess *models.Session) error {
	switch sess.Step {
	case models.StepChooseProduct:
		if sess.Draft.ProductType == "" {
			return BlockedError{Field: "product_type", Message: "product type is required"}
		}
	case models.StepChooseSize:
		if sess.Draft.SizeLabel == "" {
			return BlockedError{Field: "size_label", Message: "size is required"}
		}
	case models.StepChooseQuantity:
		// Quantity defaults to 1 and extras to none; always passable.
	case models.StepChooseDelivery:
		if sess.Draft.CustomerName == "" {
			return BlockedError{Field: "customer_name", Message: "name is required"}
		}
		if sess.Draft.CustomerPhone == "" {
			return BlockedError{Field: "customer_phone", Message: "phone is required"}
		}
		if sess.Draft.DeliveryZone == models.ZoneOutside && sess.Draft.Governorate == "" {
			return BlockedError{Field: "governorate", Message: "governorate is required for out-of-city delivery"}
		}
	case models.StepReadyToSend:
		return fmt.Errorf("order is already ready to send")
	}

	sess.Step = sess.Step.Next()
	sess.Touch()
	return nil
}

// Back moves the session to the immediately preceding step. Draft fields are
// kept; only the position changes.
func (s *Service) Back(sess *models.Session) error {
	if sess.Step == models.StepChooseProduct {
		return fmt.Errorf("already at the first step")
	}
	sess.Step = sess.Step.Prev()
	sess.Touch()
	return nil
}

// Quote prices the draft as it stands. Totals are always recomputed from
// scratch; a combination missing from the table degrades to zero and is
// logged rather than silently folded into the total.
func (s *Service) Quote(sess *models.Session, requestID string) pricing.Totals {
	totals := pricing.ComputeTotals(&sess.Draft, s.table)
	if !totals.Priced {
		s.logger.Warn("price_missing", requestID, "draft references a combination absent from the price table", map[string]any{
			"session_id":   sess.ID.String(),
			"product_type": string(sess.Draft.ProductType),
			"size_label":   sess.Draft.SizeLabel,
			"governorate":  sess.Draft.Governorate,
		})
	}
	return totals
}

// Dispatch composes the order summary and wraps it in a WhatsApp deep link.
// Only a session at the final step can be dispatched. Whether the link is
// actually opened is outside this service's control.
func (s *Service) Dispatch(sess *models.Session, requestID string) (link, message string, err error) {
	if sess.Step != models.StepReadyToSend {
		return "", "", BlockedError{Field: "step", Message: "order is not ready to send"}
	}

	totals := s.Quote(sess, requestID)
	message = ComposeSummary(&sess.Draft, totals, s.table)
	link = s.wa.Link(message)

	s.logger.Info("order_dispatched", requestID, "order summary handed to WhatsApp", map[string]any{
		"session_id":  sess.ID.String(),
		"grand_total": totals.GrandTotal.StringFixed(2),
	})
	return link, message, nil
}
