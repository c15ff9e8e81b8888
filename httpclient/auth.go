package httpclient

import (
	"context"
	"fmt"
)

// buildHeaders merges the client's default headers with per-request
// overrides (overrides win) and injects the bearer token for this attempt.
// The token provider is consulted every time, so refreshed credentials take
// effect on the very next attempt. Provider failures propagate to the
// caller unretried.
func (c *Client) buildHeaders(ctx context.Context, overrides map[string]string) (map[string]string, error) {
	headers := make(map[string]string, len(c.config.Headers)+len(overrides)+1)
	for k, v := range c.config.Headers {
		headers[k] = v
	}
	for k, v := range overrides {
		headers[k] = v
	}
	if c.config.Token != nil {
		token, err := c.config.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("httpclient: token provider: %w", err)
		}
		if token != "" {
			headers["Authorization"] = "Bearer " + token
		}
	}
	return headers, nil
}
