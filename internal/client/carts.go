package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// GetCart fetches the full cart for the user.
func (c *Client) GetCart(ctx context.Context, userID int64) (domain.CartSnapshot, error) {
	var snapshot domain.CartSnapshot
	url := fmt.Sprintf("%s/Carts/%d", c.cfg.APIBaseURL, userID)
	if err := c.doJSON(ctx, c.api, http.MethodGet, url, nil, "", &snapshot, true, "carts"); err != nil {
		return domain.CartSnapshot{}, err
	}
	return snapshot, nil
}

// AddCartItem adds quantity units of a product to the user's cart.
func (c *Client) AddCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	body, err := jsonBody(addItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/Carts/%d/add", c.cfg.APIBaseURL, userID)
	return c.doJSON(ctx, c.api, http.MethodPost, url, body, "application/json", nil, true, "carts")
}

// RemoveCartItem removes a product line from the user's cart.
func (c *Client) RemoveCartItem(ctx context.Context, userID, productID int64) error {
	url := fmt.Sprintf("%s/Carts/%d/remove/%d", c.cfg.APIBaseURL, userID, productID)
	return c.doJSON(ctx, c.api, http.MethodDelete, url, nil, "", nil, true, "carts")
}

// UpdateCartItem sets the quantity of a product line. The carts service
// expects the new quantity as a bare JSON integer body.
func (c *Client) UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	body := strings.NewReader(strconv.Itoa(quantity))
	url := fmt.Sprintf("%s/Carts/%d/update/%d", c.cfg.APIBaseURL, userID, productID)
	return c.doJSON(ctx, c.api, http.MethodPut, url, body, "application/json", nil, true, "carts")
}
