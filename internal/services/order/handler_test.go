package order

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"mansaf-kitchen/internal/logger"
	"mansaf-kitchen/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := NewHandler(newTestService(), store.New(), logger.New("order-service-test"))
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp, decoded
}

func TestHandler_FullOrderFlow(t *testing.T) {
	server := newTestServer(t)

	resp, created := doJSON(t, http.MethodPost, server.URL+"/api/orders", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status = %d", resp.StatusCode)
	}
	id, _ := created["session_id"].(string)
	if id == "" {
		t.Fatal("create session returned no id")
	}
	base := server.URL + "/api/orders/" + id

	calls := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPut, "/product", map[string]any{"product_type": "local_lamb"}},
		{http.MethodPost, "/advance", nil},
		{http.MethodPut, "/size", map[string]any{"size_label": "2 كيلو"}},
		{http.MethodPost, "/advance", nil},
		{http.MethodPut, "/extras", map[string]any{"extras": []string{"rice"}}},
		{http.MethodPost, "/advance", nil},
		{http.MethodPut, "/delivery", map[string]any{"delivery_zone": "amman", "governorate": ""}},
		{http.MethodPut, "/contact", map[string]any{
			"customer_name":    "أبو خالد",
			"customer_phone":   "0791234567",
			"delivery_address": "عمان، الدوار السابع",
		}},
		{http.MethodPost, "/advance", nil},
	}

	var state map[string]any
	for _, call := range calls {
		var resp *http.Response
		resp, state = doJSON(t, call.method, base+call.path, call.body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s %s status = %d (%v)", call.method, call.path, resp.StatusCode, state)
		}
	}

	if step, _ := state["step"].(string); step != "ready_to_send" {
		t.Fatalf("final step = %q, want ready_to_send", step)
	}
	totals, _ := state["totals"].(map[string]any)
	if grand, _ := totals["grand_total"].(string); grand != "42" {
		t.Errorf("grand_total = %v, want 42", totals["grand_total"])
	}

	resp, dispatched := doJSON(t, http.MethodPost, base+"/dispatch", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dispatch status = %d", resp.StatusCode)
	}
	link, _ := dispatched["whatsapp_url"].(string)
	if !strings.HasPrefix(link, "https://wa.me/962772272961?text=") {
		t.Errorf("whatsapp_url = %q", link)
	}
	if message, _ := dispatched["message"].(string); !strings.Contains(message, "42.00") {
		t.Errorf("message does not carry the total: %q", message)
	}
}

func TestHandler_BlockedAdvanceReportsField(t *testing.T) {
	server := newTestServer(t)

	_, created := doJSON(t, http.MethodPost, server.URL+"/api/orders", nil)
	id, _ := created["session_id"].(string)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/orders/"+id+"/advance", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("blocked advance status = %d, want 422", resp.StatusCode)
	}
	if field, _ := body["field"].(string); field != "product_type" {
		t.Errorf("blocked field = %q, want product_type", field)
	}

	// The step must not have moved.
	_, state := doJSON(t, http.MethodGet, server.URL+"/api/orders/"+id, nil)
	if step, _ := state["step"].(string); step != "choose_product" {
		t.Errorf("step after blocked advance = %q", step)
	}
}

func TestHandler_InvalidSelection(t *testing.T) {
	server := newTestServer(t)

	_, created := doJSON(t, http.MethodPost, server.URL+"/api/orders", nil)
	id, _ := created["session_id"].(string)
	base := server.URL + "/api/orders/" + id

	resp, _ := doJSON(t, http.MethodPut, base+"/product", map[string]any{"product_type": "goat"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unknown product status = %d, want 422", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPut, base+"/quantity", map[string]any{"quantity": 0})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("zero quantity status = %d, want 422", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPut, base+"/product", map[string]any{"bogus": true})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown JSON field status = %d, want 400", resp.StatusCode)
	}
}

func TestHandler_SessionLifecycle(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/orders/not-a-uuid", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed id status = %d, want 400", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/orders/00000000-0000-0000-0000-000000000001", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", resp.StatusCode)
	}

	_, created := doJSON(t, http.MethodPost, server.URL+"/api/orders", nil)
	id, _ := created["session_id"].(string)

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/orders/"+id, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/orders/"+id, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("discarded session status = %d, want 404", resp.StatusCode)
	}
}

func TestHandler_Menu(t *testing.T) {
	server := newTestServer(t)

	resp, menu := doJSON(t, http.MethodGet, server.URL+"/api/menu", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("menu status = %d", resp.StatusCode)
	}

	products, _ := menu["products"].([]any)
	if len(products) != 4 {
		t.Fatalf("menu lists %d products, want 4", len(products))
	}
	extras, _ := menu["extras"].([]any)
	if len(extras) != 3 {
		t.Errorf("menu lists %d extras, want 3", len(extras))
	}
	governorates, _ := menu["governorates"].([]any)
	if len(governorates) != 11 {
		t.Errorf("menu lists %d governorates, want 11", len(governorates))
	}
}
