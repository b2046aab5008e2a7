package client

import (
	"context"
	"fmt"
	"net/http"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

// cepResponse mirrors the viacep payload. The service answers 200 with
// {"erro": true} for well-formed CEPs that do not exist.
type cepResponse struct {
	domain.Address
	Erro bool `json:"erro"`
}

// LookupAddress resolves a CEP to a postal address.
func (c *Client) LookupAddress(ctx context.Context, cep string) (domain.Address, error) {
	var resp cepResponse
	url := fmt.Sprintf("%s/%s/json", c.cfg.CEPBaseURL, cep)
	if err := c.doJSON(ctx, c.cep, http.MethodGet, url, nil, "", &resp, false, "cep"); err != nil {
		return domain.Address{}, err
	}
	if resp.Erro {
		return domain.Address{}, apperrors.NotFound(fmt.Sprintf("CEP %s não encontrado", cep))
	}
	return resp.Address, nil
}

// CalculateShipping asks the shipping calculator for quotes across all
// carriers. The returned slice may contain entries whose Error field is set;
// filtering them is the caller's job.
func (c *Client) CalculateShipping(ctx context.Context, req domain.ShippingRequest) ([]domain.ShippingQuote, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	var quotes []domain.ShippingQuote
	url := c.cfg.APIBaseURL + "/Shipping/calculate"
	if err := c.doJSON(ctx, c.api, http.MethodPost, url, body, "application/json", &quotes, false, "shipping"); err != nil {
		return nil, err
	}
	return quotes, nil
}
