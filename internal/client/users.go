package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

// loginResponse mirrors the users service login payload.
type loginResponse struct {
	User struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

// Login authenticates against the users service and returns the established
// session. Credential failures come back as remote errors carrying the
// upstream status.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	body, err := jsonBody(creds)
	if err != nil {
		return domain.Session{}, err
	}

	var resp loginResponse
	url := c.cfg.APIBaseURL + "/Users/login"
	if err := c.doJSON(ctx, c.api, http.MethodPost, url, body, "application/json", &resp, false, "users"); err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		User: domain.User{
			ID:    strconv.FormatInt(resp.User.ID, 10),
			Name:  resp.User.Name,
			Email: resp.User.Email,
		},
		Token: resp.Token,
	}, nil
}
