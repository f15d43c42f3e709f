package dispatch

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsApp builds click-to-chat deep links for the restaurant's number.
// Hand-off is fire-and-forget: whether the link actually opens a chat is
// decided by the customer's device, not observable from here.
type WhatsApp struct {
	baseURL   string
	recipient string
}

// NewWhatsApp creates a link builder. baseURL is the click-to-chat host
// (normally https://wa.me) and recipient the phone-number-like WhatsApp id.
func NewWhatsApp(baseURL, recipient string) *WhatsApp {
	return &WhatsApp{
		baseURL:   strings.TrimRight(baseURL, "/"),
		recipient: recipient,
	}
}

// Link returns the deep link that opens a chat with the restaurant and the
// message prefilled. The message is strict percent-encoded UTF-8; newlines
// and RTL text survive the round trip.
func (w *WhatsApp) Link(message string) string {
	return fmt.Sprintf("%s/%s?text=%s", w.baseURL, w.recipient, Encode(message))
}

// ChatLink returns the deep link without a prefilled message, used to route
// oversized orders to a direct conversation.
func (w *WhatsApp) ChatLink() string {
	return fmt.Sprintf("%s/%s", w.baseURL, w.recipient)
}

// Encode percent-encodes text for a query parameter. url.QueryEscape emits
// form encoding where a space becomes "+"; click-to-chat expects %20.
func Encode(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
