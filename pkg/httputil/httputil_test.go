package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/FItraRizky/fro/pkg/errors"
	"github.com/FItraRizky/fro/pkg/logger"
	"github.com/FItraRizky/fro/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusCreated, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"key":"value"}}`, rec.Body.String())
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app not found", apperrors.NotFound("product", "9"), http.StatusNotFound, "NOT_FOUND"},
		{"app conflict", apperrors.Conflict("busy"), http.StatusConflict, "CONFLICT"},
		{"payment failed", apperrors.PaymentFailed("gagal"), http.StatusUnprocessableEntity, "PAYMENT_FAILED"},
		{"unavailable", apperrors.Unavailable("redis", fmt.Errorf("dial")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"wrapped sentinel", fmt.Errorf("load: %w", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped invalid", fmt.Errorf("parse: %w", apperrors.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
			WriteError(rec, req, tt.err, logger.Discard())

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(rec, req, fmt.Errorf("redis password wrong"), logger.Discard())

	resp := decode(t, rec)
	assert.Equal(t, "an internal error occurred", resp.Error.Message)
}

func TestWriteError_ValidationFields(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
	}
	err := validator.Validate(form{Email: "nope"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err, logger.Discard())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, map[string]string{"email": "must be a valid email address"}, resp.Error.Fields)
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	WriteError(rec, req, apperrors.InvalidInput("bad"), logger.Discard())

	assert.Equal(t, "corr-1", decode(t, rec).Error.RequestID)
}

func TestResponse_OmitsEmptyParts(t *testing.T) {
	b, err := json.Marshal(Response{Data: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":1}`, string(b))
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Quantity int `json:"quantity" validate:"min=1"`
	}

	var dst body
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":2}`))
	require.NoError(t, DecodeAndValidate(req, &dst))
	assert.Equal(t, 2, dst.Quantity)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":`))
	assert.ErrorIs(t, DecodeJSON(req, &dst), apperrors.ErrInvalidInput)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"qty":2}`))
	assert.ErrorIs(t, DecodeJSON(req, &dst), apperrors.ErrInvalidInput, "unknown fields are rejected")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":0}`))
	var valErr *validator.ValidationError
	assert.ErrorAs(t, DecodeAndValidate(req, &dst), &valErr)
}
