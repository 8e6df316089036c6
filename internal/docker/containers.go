package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
)

// Container identifies one running container. Name is the identity
// used to key stats requests and metric source labels.
type Container struct {
	ID   string
	Name string
}

// ContainerName normalizes the runtime's raw name list: the first
// entry is used with a single leading "/" stripped
func ContainerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	name := names[0]
	if strings.HasPrefix(name, "/") {
		name = name[1:]
	}
	return name
}

// ListRunning returns the currently running containers
func (c *Client) ListRunning(ctx context.Context) ([]Container, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	result := make([]Container, 0, len(containers))
	for _, cont := range containers {
		result = append(result, Container{
			ID:   cont.ID,
			Name: ContainerName(cont.Names),
		})
	}

	return result, nil
}

// Filter keeps only containers whose name is in the allow-list.
// An empty allow-list keeps everything.
func Filter(containers []Container, allowed []string) []Container {
	if len(allowed) == 0 {
		return containers
	}

	allow := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allow[name] = struct{}{}
	}

	result := make([]Container, 0, len(containers))
	for _, cont := range containers {
		if _, ok := allow[cont.Name]; ok {
			result = append(result, cont)
		}
	}

	return result
}

// ContainerStats fetches a single one-shot stats sample for a container
func (c *Client) ContainerStats(ctx context.Context, name string) (*types.StatsJSON, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.cli.ContainerStats(ctx, name, false)
	if err != nil {
		return nil, fmt.Errorf("stats request for %s failed: %w", name, err)
	}
	defer resp.Body.Close()

	var stats types.StatsJSON
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty stats response for %s", name)
		}
		return nil, fmt.Errorf("malformed stats response for %s: %w", name, err)
	}

	return &stats, nil
}
