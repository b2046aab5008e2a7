package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemote_PreservesStatusAndMapsSentinel(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrNotAuthenticated},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrInvalidInput},
		{http.StatusConflict, ErrConflict},
		{http.StatusServiceUnavailable, ErrServiceUnavail},
		{http.StatusBadGateway, ErrInternal},
	}

	for _, tt := range tests {
		err := Remote("carts", tt.status, "boom")
		assert.Equal(t, tt.status, err.Status)
		assert.True(t, errors.Is(err, tt.want), "status %d", tt.status)
		assert.Equal(t, tt.status, HTTPStatus(err))
	}
}

func TestHTTPStatus_Sentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNoCarrierAvailable))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrEmptyCart))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrDecode))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrNotAuthenticated))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrConflict))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("anything")))
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	err := Wrap(ErrNotAuthenticated, "token check")
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(err))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, EmptyCart().Status)
	assert.Equal(t, "carrinho vazio", EmptyCart().Message)
	assert.True(t, errors.Is(EmptyCart(), ErrEmptyCart))

	assert.Equal(t, http.StatusNotFound, NoCarrierAvailable().Status)
	assert.True(t, errors.Is(NoCarrierAvailable(), ErrNoCarrierAvailable))

	assert.Equal(t, http.StatusForbidden, Forbidden("bloqueado").Status)
	assert.Equal(t, http.StatusConflict, Conflict("ocupado").Status)
}
