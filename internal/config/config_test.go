package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, "https://e-commerce-feltec.onrender.com/api", cfg.APIBaseURL)
	assert.Equal(t, "https://viacep.com.br/ws", cfg.CEPBaseURL)
	assert.Equal(t, "01310100", cfg.ShippingOriginCEP)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("API_URL", "http://localhost:5000/api")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "99999")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidAPIURL(t *testing.T) {
	t.Setenv("API_URL", "not-a-url")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidOriginCEP(t *testing.T) {
	t.Setenv("SHIPPING_ORIGIN_CEP", "123")

	_, err := Load()
	assert.Error(t, err)
}
