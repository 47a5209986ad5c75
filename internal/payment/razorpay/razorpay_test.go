package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testConfig(apiBase string) *Config {
	return &Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test_key_secret",
		APIBase:   apiBase,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected config invalid for nil, got: %v", err)
	}
	if err := ValidateConfig(&Config{KeyID: "k"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected config invalid for missing secret, got: %v", err)
	}
	if err := ValidateConfig(testConfig("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifySignature(t *testing.T) {
	cfg := testConfig("")
	signature := SignContent(cfg.KeySecret, "order_abc|pay_xyz")

	if err := VerifySignature(cfg, "order_abc", "pay_xyz", signature); err != nil {
		t.Fatalf("expected valid signature, got: %v", err)
	}
	// 十六进制大小写不敏感
	if err := VerifySignature(cfg, "order_abc", "pay_xyz", strings.ToUpper(signature)); err != nil {
		t.Fatalf("expected case-insensitive match, got: %v", err)
	}
	if err := VerifySignature(cfg, "order_abc", "pay_other", signature); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid, got: %v", err)
	}
	if err := VerifySignature(cfg, "order_abc", "pay_xyz", ""); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid for empty, got: %v", err)
	}
	if err := VerifySignature(&Config{}, "order_abc", "pay_xyz", signature); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected config invalid, got: %v", err)
	}
}

func TestCreateOrderSendsMinorUnits(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":         "order_test_1",
			"amount_due": 2850000,
			"currency":   "INR",
			"status":     "created",
		})
	}))
	defer server.Close()

	result, err := CreateOrder(context.Background(), testConfig(server.URL), CreateOrderInput{
		Amount:   decimal.NewFromInt(28500),
		Currency: "inr",
		Receipt:  "order_1",
		Notes:    map[string]string{"order_no": "ORD-TEST"},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if result.OrderID != "order_test_1" || result.Status != "created" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.AmountDue != 2850000 {
		t.Fatalf("unexpected amount due: %d", result.AmountDue)
	}

	if gotPath != "/v1/orders" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotUser != "rzp_test_key" || gotPass != "test_key_secret" {
		t.Fatalf("unexpected basic auth: %s / %s", gotUser, gotPass)
	}
	// 金额按 paise 上送
	if amount, ok := gotPayload["amount"].(float64); !ok || int64(amount) != 2850000 {
		t.Fatalf("unexpected payload amount: %v", gotPayload["amount"])
	}
	if gotPayload["currency"] != "INR" {
		t.Fatalf("unexpected payload currency: %v", gotPayload["currency"])
	}
	notes, _ := gotPayload["notes"].(map[string]interface{})
	if notes["order_no"] != "ORD-TEST" {
		t.Fatalf("unexpected payload notes: %v", gotPayload["notes"])
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	cfg := testConfig("")
	if _, err := CreateOrder(context.Background(), cfg, CreateOrderInput{
		Amount:   decimal.Zero,
		Currency: "INR",
	}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected error for zero amount, got: %v", err)
	}
	if _, err := CreateOrder(context.Background(), cfg, CreateOrderInput{
		Amount: decimal.NewFromInt(100),
	}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected error for missing currency, got: %v", err)
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := CreateOrder(context.Background(), testConfig(server.URL), CreateOrderInput{
		Amount:   decimal.NewFromInt(100),
		Currency: "INR",
	})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected request failed, got: %v", err)
	}
}

func TestCreateOrderRejectsEmptyOrderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "created"})
	}))
	defer server.Close()

	_, err := CreateOrder(context.Background(), testConfig(server.URL), CreateOrderInput{
		Amount:   decimal.NewFromInt(100),
		Currency: "INR",
	})
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected response invalid, got: %v", err)
	}
}

func TestToMinorUnitsRounds(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"285.00", 28500},
		{"0.01", 1},
		{"10.555", 1056},
	}
	for _, tc := range cases {
		d, _ := decimal.NewFromString(tc.amount)
		if got := toMinorUnits(d); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.amount, tc.want, got)
		}
	}
}
