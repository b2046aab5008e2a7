package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"
)

// remoteErrorBody covers the error shapes returned by the remote e-commerce
// API: either `{"message": "..."}`, a problem-details `{"title": "..."}`, or
// the proxy's own `{"error": "..."}`.
type remoteErrorBody struct {
	Message string `json:"message"`
	Title   string `json:"title"`
	Error   string `json:"error"`
}

// ParseRemoteError reads the body of a non-2xx response and translates it into
// an AppError that preserves the upstream status code. The message is taken
// from the response body when one of the known error fields is present,
// otherwise a generic status-based message is used.
//
// The caller should only invoke this when resp.StatusCode is not 2xx. The
// response body is fully consumed and closed.
func ParseRemoteError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	message := fmt.Sprintf("erro %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err == nil {
		var body remoteErrorBody
		if json.Unmarshal(bodyBytes, &body) == nil {
			switch {
			case body.Message != "":
				message = body.Message
			case body.Title != "":
				message = body.Title
			case body.Error != "":
				message = body.Error
			}
		}
	}

	return apperrors.Remote(serviceName, resp.StatusCode, message)
}
