package models

// Step identifies a position in the order wizard. The sequence is strictly
// linear; transitions happen one step at a time in either direction.
type Step string

const (
	StepChooseProduct  Step = "choose_product"
	StepChooseSize     Step = "choose_size"
	StepChooseQuantity Step = "choose_quantity"
	StepChooseDelivery Step = "choose_delivery"
	StepReadyToSend    Step = "ready_to_send"
)

// Valid reports whether the value is one of the enumerated steps.
func (s Step) Valid() bool {
	switch s {
	case StepChooseProduct, StepChooseSize, StepChooseQuantity, StepChooseDelivery, StepReadyToSend:
		return true
	default:
		return false
	}
}

// Next returns the following step. The terminal step returns itself.
func (s Step) Next() Step {
	switch s {
	case StepChooseProduct:
		return StepChooseSize
	case StepChooseSize:
		return StepChooseQuantity
	case StepChooseQuantity:
		return StepChooseDelivery
	case StepChooseDelivery:
		return StepReadyToSend
	default:
		return StepReadyToSend
	}
}

// Prev returns the immediately preceding step. The first step returns itself;
// jumping further back than one step is not possible.
func (s Step) Prev() Step {
	switch s {
	case StepReadyToSend:
		return StepChooseDelivery
	case StepChooseDelivery:
		return StepChooseQuantity
	case StepChooseQuantity:
		return StepChooseSize
	case StepChooseSize:
		return StepChooseProduct
	default:
		return StepChooseProduct
	}
}

// Terminal reports whether the step is the end of the wizard.
func (s Step) Terminal() bool {
	return s == StepReadyToSend
}
