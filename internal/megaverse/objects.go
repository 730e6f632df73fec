package megaverse

import (
	"context"
	"fmt"
	"net/http"
)

// endpoint is the create/delete pair shared by the object clients.
type endpoint struct {
	client *Client
	path   string
	kind   Kind
}

func (e endpoint) create(ctx context.Context, row, col int, attrs map[string]any) error {
	if err := checkPosition(row, col); err != nil {
		return err
	}

	payload := map[string]any{"row": row, "column": col}
	for k, v := range attrs {
		payload[k] = v
	}

	if err := e.client.mutate(ctx, http.MethodPost, e.path, payload); err != nil {
		return fmt.Errorf("failed to set %s at (%d, %d): %w", e.kind, row, col, err)
	}
	return nil
}

// remove deletes the object at (row, col). A 404 means nothing was there,
// which is the state the caller asked for.
func (e endpoint) remove(ctx context.Context, row, col int) error {
	if err := checkPosition(row, col); err != nil {
		return err
	}

	payload := map[string]any{"row": row, "column": col}
	err := e.client.mutate(ctx, http.MethodDelete, e.path, payload)
	if IsNotFound(err) {
		e.client.logger.Debug("Object already absent", "kind", e.kind, "row", row, "column", col)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to clean %s at (%d, %d): %w", e.kind, row, col, err)
	}
	return nil
}

func checkPosition(row, col int) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("invalid position (%d, %d)", row, col)
	}
	return nil
}

// PolyanetClient creates and deletes polyanets.
type PolyanetClient struct {
	endpoint
}

// Set places a polyanet at (row, col).
func (p *PolyanetClient) Set(ctx context.Context, row, col int) error {
	return p.create(ctx, row, col, nil)
}

// Clean removes the polyanet at (row, col), if any.
func (p *PolyanetClient) Clean(ctx context.Context, row, col int) error {
	return p.remove(ctx, row, col)
}

// SoloonClient creates and deletes soloons.
type SoloonClient struct {
	endpoint
}

// Set places a soloon of the given color at (row, col).
func (s *SoloonClient) Set(ctx context.Context, row, col int, color Color) error {
	parsed, err := ParseColor(string(color))
	if err != nil {
		return err
	}
	return s.create(ctx, row, col, map[string]any{"color": string(parsed)})
}

// Clean removes the soloon at (row, col), if any.
func (s *SoloonClient) Clean(ctx context.Context, row, col int) error {
	return s.remove(ctx, row, col)
}

// ComethClient creates and deletes comeths.
type ComethClient struct {
	endpoint
}

// Set places a cometh facing direction at (row, col).
func (c *ComethClient) Set(ctx context.Context, row, col int, direction Direction) error {
	parsed, err := ParseDirection(string(direction))
	if err != nil {
		return err
	}
	return c.create(ctx, row, col, map[string]any{"direction": string(parsed)})
}

// Clean removes the cometh at (row, col), if any.
func (c *ComethClient) Clean(ctx context.Context, row, col int) error {
	return c.remove(ctx, row, col)
}
