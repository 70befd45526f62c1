package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("product %s not found", "p1"), http.StatusNotFound},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"validation", Validation("bad", nil), http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("who"), http.StatusUnauthorized},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"internal", Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("inner")), http.StatusNotFound},
		{"plain", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to fetch cart", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to fetch cart: connection refused", err.Error())
	assert.True(t, Is(err, KindInternal))
	assert.False(t, Is(err, KindNotFound))
}

func TestFromValidator(t *testing.T) {
	type payload struct {
		Quantity int `validate:"gte=1"`
	}
	err := validator.New().Struct(payload{Quantity: 0})
	appErr := FromValidator(err)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "Field 'Quantity' failed on the 'gte' tag", appErr.Fields["Quantity"])
}
