package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrCancelled is matched (errors.Is) by gateway errors that mean the
// customer aborted the payment.
var ErrCancelled = errors.New("payment cancelled")

// Request asks the gateway to start a card payment.
type Request struct {
	Amount        int64
	OrderID       string
	OrderName     string
	CustomerName  string
	CustomerEmail string
}

// Checkout is where the customer must be sent to complete a payment.
type Checkout struct {
	OrderID     string `json:"orderId"`
	RedirectURL string `json:"redirectUrl"`
}

type Initiator interface {
	RequestPayment(ctx context.Context, req Request) (*Checkout, error)
}

type Confirmer interface {
	ConfirmPayment(ctx context.Context, paymentKey, orderID string, amount int64) error
}

// Error is a failure reported by the payment gateway.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment gateway %s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrCancelled && IsCancelCode(e.Code)
}

const (
	CodeUserCancel          = "USER_CANCEL"
	CodeProcessCanceled     = "PAY_PROCESS_CANCELED"
	CodeInvalidCard         = "INVALID_CARD"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
)

func IsCancelCode(code string) bool {
	return code == CodeUserCancel || code == CodeProcessCanceled
}

// FailureMessage picks the message shown on the fail route. A message sent by
// the gateway wins; otherwise the code is mapped.
func FailureMessage(code, message string) string {
	if m := strings.TrimSpace(message); m != "" {
		return m
	}
	switch code {
	case CodeUserCancel, CodeProcessCanceled:
		return "결제가 취소되었습니다."
	case CodeInvalidCard:
		return "유효하지 않은 카드입니다."
	case CodeInsufficientBalance:
		return "잔액이 부족합니다."
	default:
		return "결제 처리 중 오류가 발생했습니다."
	}
}
