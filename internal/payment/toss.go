package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	errx "github.com/studio101-core/server/internal/core/error"
	logx "github.com/studio101-core/server/pkg/logger"
)

type TossConfig struct {
	SecretKey  string        `envconfig:"TOSS_SECRET_KEY"`
	APIURL     string        `envconfig:"TOSS_API_URL" default:"https://api.tosspayments.com"`
	SuccessURL string        `envconfig:"PAYMENT_SUCCESS_URL" default:"http://localhost:8080/payment/success"`
	FailURL    string        `envconfig:"PAYMENT_FAIL_URL" default:"http://localhost:8080/payment/fail"`
	Timeout    time.Duration `envconfig:"TOSS_TIMEOUT" default:"10s"`
}

// TossClient talks to the Toss Payments core API.
type TossClient struct {
	cfg    TossConfig
	client *http.Client
	auth   string
}

func NewTossClient(cfg TossConfig) (*TossClient, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("toss secret key is empty")
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		return nil, errors.New("toss api url is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &TossClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		auth:   "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.SecretKey+":")),
	}, nil
}

type createPaymentBody struct {
	Method        string `json:"method"`
	Amount        int64  `json:"amount"`
	OrderID       string `json:"orderId"`
	OrderName     string `json:"orderName"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	SuccessURL    string `json:"successUrl"`
	FailURL       string `json:"failUrl"`
}

type tossPayment struct {
	OrderID  string `json:"orderId"`
	Status   string `json:"status"`
	Checkout struct {
		URL string `json:"url"`
	} `json:"checkout"`
}

// RequestPayment creates a card payment and returns the hosted checkout page.
func (c *TossClient) RequestPayment(ctx context.Context, req Request) (*Checkout, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount %d", req.Amount)
	}
	customer := req.CustomerName
	if customer == "" {
		customer = "고객"
	}

	var out tossPayment
	err := c.post(ctx, "/v1/payments", createPaymentBody{
		Method:        "CARD",
		Amount:        req.Amount,
		OrderID:       req.OrderID,
		OrderName:     req.OrderName,
		CustomerName:  customer,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    c.cfg.SuccessURL,
		FailURL:       c.cfg.FailURL,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Checkout.URL == "" {
		return nil, fmt.Errorf("toss payment %s: missing checkout url", req.OrderID)
	}

	logx.Debug().Str("order_id", req.OrderID).Int64("amount", req.Amount).Msg("payment requested")
	return &Checkout{OrderID: req.OrderID, RedirectURL: out.Checkout.URL}, nil
}

type confirmBody struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// ConfirmPayment approves a payment the customer authorized on the checkout page.
func (c *TossClient) ConfirmPayment(ctx context.Context, paymentKey, orderID string, amount int64) error {
	var out tossPayment
	if err := c.post(ctx, "/v1/payments/confirm", confirmBody{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
	}, &out); err != nil {
		return err
	}
	logx.Debug().Str("order_id", orderID).Str("status", out.Status).Msg("payment confirmed")
	return nil
}

func (c *TossClient) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal toss request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.auth)

	res, err := c.client.Do(req)
	if err != nil {
		return errx.WrapUpstream(fmt.Errorf("toss %s: %w", path, err))
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return errx.WrapUpstream(fmt.Errorf("read toss response: %w", err))
	}

	if res.StatusCode >= http.StatusBadRequest {
		gwErr := &Error{Status: res.StatusCode}
		if err := json.Unmarshal(raw, gwErr); err != nil || gwErr.Code == "" {
			gwErr.Code = "UNKNOWN"
			gwErr.Message = strings.TrimSpace(string(raw))
		}
		logx.Warn().
			Str("path", path).
			Int("status", res.StatusCode).
			Str("code", gwErr.Code).
			Msg("toss request failed")
		return gwErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errx.WrapUpstream(fmt.Errorf("decode toss response: %w", err))
	}
	return nil
}

var (
	_ Initiator = (*TossClient)(nil)
	_ Confirmer = (*TossClient)(nil)
)
