package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mansaf-kitchen/internal/logger"
	"mansaf-kitchen/internal/models"
	"mansaf-kitchen/internal/pricing"
	"mansaf-kitchen/internal/store"
)

// Handler exposes the order wizard over HTTP for the landing page.
type Handler struct {
	service  *Service
	sessions *store.SessionStore
	logger   *logger.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(service *Service, sessions *store.SessionStore, log *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		logger:   log,
	}
}

// RegisterRoutes mounts the API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)
	r.Get("/api/menu", h.GetMenu)

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Put("/product", h.SelectProduct)
			r.Put("/size", h.SelectSize)
			r.Put("/quantity", h.SetQuantity)
			r.Put("/extras", h.SetExtras)
			r.Put("/delivery", h.SetDelivery)
			r.Put("/contact", h.SetContact)
			r.Post("/advance", h.Advance)
			r.Post("/back", h.Back)
			r.Get("/quote", h.GetQuote)
			r.Post("/dispatch", h.Dispatch)
		})
	})
}

// sessionResponse is the state the presentation layer renders: the draft,
// the current step and freshly recomputed totals.
type sessionResponse struct {
	SessionID string            `json:"session_id"`
	Step      models.Step       `json:"step"`
	Draft     models.OrderDraft `json:"draft"`
	Totals    pricing.Totals    `json:"totals"`
}

func (h *Handler) sessionPayload(sess *models.Session, requestID string) sessionResponse {
	return sessionResponse{
		SessionID: sess.ID.String(),
		Step:      sess.Step,
		Draft:     sess.Draft,
		Totals:    h.service.Quote(sess, requestID),
	}
}

// CreateSession handles POST /api/orders. A fresh session starts at the first
// step with a clean draft; nothing carries over from previous sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess := h.sessions.Create()

	h.logger.Debug("session_created", requestID, "order session opened", map[string]any{
		"session_id": sess.ID.String(),
	})

	h.writeJSON(w, http.StatusCreated, h.sessionPayload(sess, requestID))
}

// GetSession handles GET /api/orders/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, ok := h.lookupSession(w, r, requestID)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.sessionPayload(sess, requestID))
}

// DeleteSession handles DELETE /api/orders/{id}. Discarding the draft is the
// only form of cancellation the flow has.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, ok := h.lookupSession(w, r, requestID)
	if !ok {
		return
	}
	h.sessions.Delete(sess.ID)

	h.logger.Debug("session_discarded", requestID, "order session discarded", map[string]any{
		"session_id": sess.ID.String(),
	})
	w.WriteHeader(http.StatusNoContent)
}

// SelectProduct handles PUT /api/orders/{id}/product.
func (h *Handler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductType models.ProductType `json:"product_type"`
	}
	h.mutate(w, r, &req, func(sess *models.Session) error {
		return h.service.SelectProduct(sess, req.ProductType)
	})
}

// SelectSize handles PUT /api/orders/{id}/size.
func (h *Handler) SelectSize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SizeLabel string `json:"size_label"`
	}
	h.mutate(w, r, &req, func(sess *models.Session) error {
		return h.service.SelectSize(sess, req.SizeLabel)
	})
}

// SetQuantity handles PUT /api/orders/{id}/quantity.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	h.mutate(w, r, &req, func(sess *models.Session) error {
		return h.service.SetQuantity(sess, req.Quantity)
	})
}

// SetExtras handles PUT /api/orders/{id}/extras.
func (h *Handler) SetExtras(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Extras []string `json:"extras"`
	}
	h.mutate(w, r, &req, func(sess *models.Session) error {
		return h.service.SetExtras(sess, req.Extras)
	})
}

// SetDelivery handles PUT /api/orders/{id}/delivery.
func (h *Handler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeliveryZone models.DeliveryZone `json:"delivery_zone"`
		Governorate  string              `json:"governorate"`
	}
	h.mutate(w, r, &req, func(sess *models.Session) error {
		return h.service.SetDelivery(sess, req.DeliveryZone, req.Governorate)
	})
}

// SetContact handles PUT /api/orders/{id}/contact.
func (h *Handler) SetContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName    string `json:"customer_name"`
		CustomerPhone   string `json:"customer_phone"`
		DeliveryAddress string `json:"delivery_address"`
	}
	h.mutate(w, r, &req, func(sess *models.Session) error {
		return h.service.SetContact(sess, req.CustomerName, req.CustomerPhone, req.DeliveryAddress)
	})
}

// Advance handles POST /api/orders/{id}/advance. A blocked gate leaves the
// step untouched and reports the missing field.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, ok := h.lookupSession(w, r, requestID)
	if !ok {
		return
	}
	if err := h.service.Advance(sess); err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.sessionPayload(sess, requestID))
}

// Back handles POST /api/orders/{id}/back.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, ok := h.lookupSession(w, r, requestID)
	if !ok {
		return
	}
	if err := h.service.Back(sess); err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.sessionPayload(sess, requestID))
}

// GetQuote handles GET /api/orders/{id}/quote.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, ok := h.lookupSession(w, r, requestID)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.Quote(sess, requestID))
}

// dispatchResponse carries the deep link the browser should open.
type dispatchResponse struct {
	WhatsAppURL string `json:"whatsapp_url"`
	Message     string `json:"message"`
}

// Dispatch handles POST /api/orders/{id}/dispatch. The session must be at the
// final step; the response carries the deep link and the composed summary.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, ok := h.lookupSession(w, r, requestID)
	if !ok {
		return
	}
	link, message, err := h.service.Dispatch(sess, requestID)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dispatchResponse{WhatsAppURL: link, Message: message})
}

// menuResponse lists the enumerated choices the page can offer, with prices.
type menuResponse struct {
	Products     []menuProduct            `json:"products"`
	Extras       []pricing.Extra          `json:"extras"`
	Delivery     []pricing.DeliveryOption `json:"delivery"`
	Governorates []pricing.Governorate    `json:"governorates"`
}

type menuProduct struct {
	ID    models.ProductType `json:"id"`
	Label string             `json:"label"`
	Sizes []menuSize         `json:"sizes"`
}

type menuSize struct {
	Label     string `json:"label"`
	UnitPrice string `json:"unit_price"`
}

// GetMenu handles GET /api/menu.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	table := h.service.Table()

	products := make([]menuProduct, 0, 4)
	for _, p := range []models.ProductType{models.Chicken, models.LocalLamb, models.RomanianLamb, models.ImportedLamb} {
		sizes := make([]menuSize, 0, 4)
		for _, label := range table.Sizes(p) {
			price, _ := table.UnitPrice(p, label)
			sizes = append(sizes, menuSize{Label: label, UnitPrice: price.StringFixed(2)})
		}
		products = append(products, menuProduct{ID: p, Label: p.Label(), Sizes: sizes})
	}

	h.writeJSON(w, http.StatusOK, menuResponse{
		Products:     products,
		Extras:       table.Extras(),
		Delivery:     table.DeliveryOptions(),
		Governorates: table.Governorates(),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
		"sessions":  h.sessions.Len(),
	})
}

// mutate decodes a JSON body, applies a draft mutation and returns the
// refreshed session state.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, req any, apply func(*models.Session) error) {
	requestID := logger.GenerateRequestID()

	sess, ok := h.lookupSession(w, r, requestID)
	if !ok {
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(req); err != nil {
		h.logger.Error("validation_failed", requestID, "failed to parse request body", err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "invalid JSON body", requestID)
		return
	}

	if err := apply(sess); err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.sessionPayload(sess, requestID))
}

// lookupSession resolves {id} to an active session, answering 404 when the
// session never existed or was already discarded.
func (h *Handler) lookupSession(w http.ResponseWriter, r *http.Request, requestID string) (*models.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "invalid session id", requestID)
		return nil, false
	}
	sess, ok := h.sessions.Get(id)
	if !ok {
		h.writeErrorResponse(w, http.StatusNotFound, "session not found", requestID)
		return nil, false
	}
	return sess, true
}

// writeServiceError maps wizard errors onto HTTP statuses: a blocked gate or
// invalid selection is the caller's to fix, anything else is unexpected.
func (h *Handler) writeServiceError(w http.ResponseWriter, requestID string, err error) {
	var blocked BlockedError
	if errors.As(err, &blocked) {
		h.logger.Debug("step_blocked", requestID, blocked.Error(), map[string]any{
			"field": blocked.Field,
		})
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      blocked.Message,
			"field":      blocked.Field,
			"request_id": requestID,
		})
		return
	}
	h.writeErrorResponse(w, http.StatusConflict, err.Error(), requestID)
}

// writeErrorResponse writes an error response in JSON format.
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	h.writeJSON(w, statusCode, map[string]any{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "", "failed to encode response", err, nil)
	}
}

// RequestLogger logs every request with its duration and status code.
func (h *Handler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		h.logger.Debug("request_completed",
			logger.GenerateRequestID(),
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
