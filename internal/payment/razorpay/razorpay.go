package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid    = errors.New("razorpay config invalid")
	ErrRequestFailed    = errors.New("razorpay request failed")
	ErrResponseInvalid  = errors.New("razorpay response invalid")
	ErrSignatureInvalid = errors.New("razorpay signature invalid")
)

const (
	defaultAPIBase   = "https://api.razorpay.com"
	defaultTimeoutMS = 10000
	ordersAPIPath    = "/v1/orders"
)

// Config 网关配置
type Config struct {
	KeyID     string `json:"key_id"`     // API Key
	KeySecret string `json:"key_secret"` // API Secret
	APIBase   string `json:"api_base"`   // 网关地址
	TimeoutMS int    `json:"timeout_ms"` // 请求超时（毫秒）
}

// CreateOrderInput 网关下单输入
type CreateOrderInput struct {
	Amount   decimal.Decimal // 订单金额（主币单位）
	Currency string
	Receipt  string
	Notes    map[string]string
}

// CreateOrderResult 网关下单结果
type CreateOrderResult struct {
	OrderID   string
	AmountDue int64
	Currency  string
	Status    string
	Raw       map[string]interface{}
}

// ValidateConfig 校验网关配置完整性
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeyID) == "" {
		return fmt.Errorf("%w: key_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeySecret) == "" {
		return fmt.Errorf("%w: key_secret is required", ErrConfigInvalid)
	}
	return nil
}

// CreateOrder 在网关侧创建订单。
// 金额按最小币单位（paise）上送。
func CreateOrder(ctx context.Context, cfg *Config, input CreateOrderInput) (*CreateOrderResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrConfigInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrConfigInvalid)
	}

	payload := map[string]interface{}{
		"amount":   toMinorUnits(input.Amount),
		"currency": currency,
		"receipt":  input.Receipt,
	}
	if len(input.Notes) > 0 {
		payload["notes"] = input.Notes
	}

	respBytes, err := postJSON(ctx, cfg, ordersAPIPath, payload)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)
	var resp struct {
		ID        string `json:"id"`
		AmountDue int64  `json:"amount_due"`
		Currency  string `json:"currency"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, ErrResponseInvalid
	}
	if strings.TrimSpace(resp.ID) == "" {
		return nil, ErrResponseInvalid
	}
	return &CreateOrderResult{
		OrderID:   strings.TrimSpace(resp.ID),
		AmountDue: resp.AmountDue,
		Currency:  strings.TrimSpace(resp.Currency),
		Status:    strings.TrimSpace(resp.Status),
		Raw:       raw,
	}, nil
}

// VerifySignature 核验支付回执签名。
// 签名内容为 "<网关订单号>|<网关流水号>"，HMAC-SHA256 后十六进制编码。
func VerifySignature(cfg *Config, gatewayOrderID, gatewayPaymentID, signature string) error {
	if cfg == nil || strings.TrimSpace(cfg.KeySecret) == "" {
		return ErrConfigInvalid
	}
	gatewayOrderID = strings.TrimSpace(gatewayOrderID)
	gatewayPaymentID = strings.TrimSpace(gatewayPaymentID)
	signature = strings.TrimSpace(signature)
	if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return ErrSignatureInvalid
	}
	expected := SignContent(cfg.KeySecret, gatewayOrderID+"|"+gatewayPaymentID)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(signature))) != 1 {
		return ErrSignatureInvalid
	}
	return nil
}

// SignContent 计算内容的 HMAC-SHA256 十六进制签名
func SignContent(secret, content string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(content))
	return hex.EncodeToString(mac.Sum(nil))
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func postJSON(ctx context.Context, cfg *Config, apiPath string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	endpoint := buildEndpoint(cfg.APIBase, apiPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.KeyID, cfg.KeySecret)

	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if cfg.TimeoutMS <= 0 {
		timeout = defaultTimeoutMS * time.Millisecond
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, ErrRequestFailed
	}
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	return respBytes, nil
}

func buildEndpoint(apiBase, apiPath string) string {
	base := strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if base == "" {
		base = defaultAPIBase
	}
	path := strings.TrimSpace(apiPath)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
