package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newJSONContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindAndValidate_Valid(t *testing.T) {
	v := New()
	c, w := newJSONContext(t, `{"order_id":"order_abc","payment_id":"pay_123","signature":"deadbeef"}`)

	var req VerifyPaymentRequest
	if err := BindAndValidate(c, &req, v); err != nil {
		t.Fatalf("unexpected error: %v (body: %s)", err, w.Body.String())
	}
	if req.OrderID != "order_abc" || req.PaymentID != "pay_123" || req.Signature != "deadbeef" {
		t.Fatalf("bound request mismatch: %+v", req)
	}
}

func TestBindAndValidate_MissingField(t *testing.T) {
	v := New()
	c, w := newJSONContext(t, `{"order_id":"order_abc","payment_id":"pay_123"}`)

	var req VerifyPaymentRequest
	if err := BindAndValidate(c, &req, v); err == nil {
		t.Fatalf("expected validation error for missing signature")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBindAndValidate_UnknownFieldRejected(t *testing.T) {
	v := New()
	c, w := newJSONContext(t, `{"order_id":"o","payment_id":"p","signature":"s","amount":1}`)

	var req VerifyPaymentRequest
	if err := BindAndValidate(c, &req, v); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	v := New()
	c, w := newJSONContext(t, `{"order_id": `)

	var req VerifyPaymentRequest
	if err := BindAndValidate(c, &req, v); err == nil {
		t.Fatalf("expected error for malformed body")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRegisterRequest_Rules(t *testing.T) {
	v := New()

	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{"valid", `{"username":"faizan","email":"f@example.com","password":"secret123"}`, true},
		{"short username", `{"username":"ab","email":"f@example.com","password":"secret123"}`, false},
		{"bad email", `{"username":"faizan","email":"nope","password":"secret123"}`, false},
		{"short password", `{"username":"faizan","email":"f@example.com","password":"123"}`, false},
	}
	for _, tc := range cases {
		c, _ := newJSONContext(t, tc.body)
		var req RegisterRequest
		err := BindAndValidate(c, &req, v)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
