package httpclient

import (
	"context"

	"github.com/agrovia/agrovia-go/component"
)

// Component wraps a Client with lifecycle management for applications that
// start and stop their infrastructure through the component interfaces.
type Component struct {
	client *Client
	config Config
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new HTTP client component.
// The client is created lazily in Start().
func NewComponent(cfg Config) *Component {
	return &Component{config: cfg}
}

// Name returns the component name.
func (c *Component) Name() string {
	name := c.config.Name
	if name == "" {
		name = "http"
	}
	return name
}

// Start initializes the client.
func (c *Component) Start(_ context.Context) error {
	client, err := New(c.config)
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

// Stop releases idle transport connections.
func (c *Component) Stop(_ context.Context) error {
	if c.client != nil {
		c.client.httpClient.CloseIdleConnections()
	}
	return nil
}

// Health returns the component health status.
func (c *Component) Health(_ context.Context) component.Health {
	status := component.StatusHealthy
	if c.client == nil {
		status = component.StatusUnhealthy
	}
	return component.Health{
		Name:   c.Name(),
		Status: status,
	}
}

// Describe returns component description for startup summaries.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "http-client",
		Details: c.config.BaseURL,
	}
}

// Client returns the underlying client. Must be called after Start().
func (c *Component) Client() *Client {
	return c.client
}
