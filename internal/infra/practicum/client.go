// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	domainPracticum "github.com/Freeman-83/homework-bot/internal/domain/practicum"
)

const defaultRequestTimeout = 30 * time.Second

// StatusError indicates a non-200 reply from the homework-statuses endpoint.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("endpoint %s is unavailable: HTTP status %d", e.Endpoint, e.StatusCode)
}

// Client implements the domain practicum.Client interface over HTTP.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// HomeworkStatuses performs one authenticated GET against the endpoint with
// the from_date cursor and parses the body. There is no retry here; retries
// happen only through the outer poll cycle.
func (c *Client) HomeworkStatuses(ctx context.Context, fromDate int64) (*domainPracticum.StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build homework statuses request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request homework statuses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Endpoint: c.endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read homework statuses response: %w", err)
	}

	return domainPracticum.ParseStatusResponse(body)
}
