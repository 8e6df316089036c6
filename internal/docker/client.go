package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/client"
)

// Config contains Docker Engine client configuration
type Config struct {
	Host    string // host:port of the Engine API
	Timeout time.Duration
}

// Client wraps the Docker Engine API client
type Client struct {
	cli     *client.Client
	timeout time.Duration
}

// NewClient creates a new Engine API client against tcp://host:port
func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	cli, err := client.NewClientWithOpts(
		client.WithHost("tcp://"+cfg.Host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &Client{cli: cli, timeout: timeout}, nil
}

// Ping verifies the Engine API is reachable
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.cli.Ping(ctx); err != nil {
		return fmt.Errorf("docker engine unreachable: %w", err)
	}
	return nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}
