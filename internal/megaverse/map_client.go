package megaverse

import (
	"context"
	"fmt"
	"net/url"
)

// MapClient reads the current and goal maps. It never mutates.
type MapClient struct {
	client *Client
}

type statusResponse struct {
	Map struct {
		Content Grid `json:"content"`
	} `json:"map"`
}

type goalResponse struct {
	Goal GoalGrid `json:"goal"`
}

func (m *MapClient) path() string {
	return "/api/map/" + url.PathEscape(m.client.candidateID)
}

// GetStatus fetches the live map. Empty positions decode as Space.
func (m *MapClient) GetStatus(ctx context.Context) (Grid, error) {
	var resp statusResponse
	if err := m.client.get(ctx, m.path(), &resp); err != nil {
		return nil, fmt.Errorf("failed to get map status: %w", err)
	}
	return resp.Map.Content, nil
}

// GetGoal fetches the goal map as raw tokens.
func (m *MapClient) GetGoal(ctx context.Context) (GoalGrid, error) {
	var resp goalResponse
	if err := m.client.get(ctx, m.path()+"/goal", &resp); err != nil {
		return nil, fmt.Errorf("failed to get goal map: %w", err)
	}
	return resp.Goal, nil
}
