package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studio101-core/server/internal/assistant"
	errx "github.com/studio101-core/server/internal/core/error"
	"github.com/studio101-core/server/internal/order"
	"github.com/studio101-core/server/internal/payment"
	logx "github.com/studio101-core/server/pkg/logger"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Warn().Err(err).Msg("failed to write response body")
	}
}

// writeError writes only the safe message of err.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = classify(err)
	status := errx.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logx.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	} else {
		logx.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, errorBody{Error: errx.MessageOf(err)})
}

// classify maps domain errors that are not already AppErrors.
func classify(err error) error {
	var app *errx.AppError
	if errors.As(err, &app) {
		return err
	}
	var gw *payment.Error
	switch {
	case errors.Is(err, order.ErrUnauthenticated):
		return errx.New(err, http.StatusUnauthorized, assistant.MsgLoginRequired)
	case errors.Is(err, order.ErrEmptyOrder):
		return errx.New(err, http.StatusBadRequest, msgCartEmpty)
	case errors.Is(err, order.ErrOrderNotFound):
		return errx.New(err, http.StatusNotFound, msgOrderNotFound)
	case errors.Is(err, order.ErrAlreadyFinalized):
		return errx.New(err, http.StatusConflict, msgAlreadyFinalized)
	case errors.Is(err, order.ErrAmountMismatch):
		return errx.New(err, http.StatusBadRequest, msgAmountMismatch)
	case errors.Is(err, order.ErrInvalidQuantity), errors.Is(err, order.ErrAmountOverflow):
		return errx.New(err, http.StatusBadRequest, msgQuantityRange)
	case errors.Is(err, order.ErrUserMismatch):
		return errx.New(err, http.StatusForbidden, msgOrderNotFound)
	case errors.Is(err, payment.ErrCancelled):
		return errx.New(err, http.StatusBadRequest, assistant.MsgPaymentCanceled)
	case errors.As(err, &gw):
		return errx.New(err, http.StatusBadGateway, payment.FailureMessage(gw.Code, ""))
	}
	return err
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errx.New(err, http.StatusBadRequest, msgInvalidBody)
	}
	return nil
}

const (
	msgInvalidBody      = "요청 형식이 올바르지 않습니다."
	msgProductNotFound  = "상품을 찾을 수 없습니다."
	msgLineNotFound     = "장바구니 항목을 찾을 수 없습니다."
	msgCartEmpty        = "장바구니가 비어 있습니다."
	msgOrderNotFound    = "주문 정보를 찾을 수 없습니다."
	msgAlreadyFinalized = "이미 처리된 결제입니다."
	msgAmountMismatch   = "결제 금액이 주문 금액과 다릅니다."
	msgPaymentComplete  = "결제가 완료되었습니다."
	msgQuantityRange    = "수량은 1개 이상 99개 이하여야 합니다."
)
