package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

func TestLogin_MapsSession(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"ana@example.com","password":"s3cret"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":42,"name":"Ana Souza","email":"ana@example.com"},"token":"tok-abc"}`))
	}))

	sess, err := c.Login(context.Background(), domain.Credentials{
		Email:    "ana@example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "42", sess.User.ID)
	assert.Equal(t, "Ana Souza", sess.User.Name)
	assert.Equal(t, "ana@example.com", sess.User.Email)
	assert.Equal(t, "tok-abc", sess.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"credenciais inválidas"}`))
	}))

	_, err := c.Login(context.Background(), domain.Credentials{
		Email:    "ana@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotAuthenticated))
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatus(err))
}
