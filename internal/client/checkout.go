package client

import (
	"context"
	"net/http"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

const prefRedirectURL = "https://www.mercadopago.com.br/checkout/v1/redirect?pref_id="

// preferenceResponse covers the shapes the payment gateway has been observed
// to answer with.
type preferenceResponse struct {
	URL       string `json:"url"`
	InitPoint string `json:"init_point"`
	ID        string `json:"id"`
}

// CreatePreference submits the checkout payload to the payment gateway and
// returns the URL the customer must be redirected to.
func (c *Client) CreatePreference(ctx context.Context, payload domain.CheckoutPayload) (string, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return "", err
	}

	var resp preferenceResponse
	if err := c.doJSON(ctx, c.checkout, http.MethodPost, c.cfg.CheckoutURL, body, "application/json", &resp, true, "checkout"); err != nil {
		return "", err
	}

	switch {
	case resp.URL != "":
		return resp.URL, nil
	case resp.InitPoint != "":
		return resp.InitPoint, nil
	case resp.ID != "":
		return prefRedirectURL + resp.ID, nil
	}
	return "", apperrors.Internal("resposta do checkout sem URL de pagamento", nil)
}
