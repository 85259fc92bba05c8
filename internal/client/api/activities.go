package api

import (
	"context"
	"net/http"

	"github.com/cotrip/cotrip/internal/client/models"
)

func (c *Client) ListActivities(ctx context.Context, tripID string) ([]models.Activity, error) {
	activities := []models.Activity{}
	err := c.do(ctx, call{method: http.MethodGet, path: activitiesPath(tripID), out: &activities, body: bodyList})
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return activities, nil
}

func (c *Client) GetActivity(ctx context.Context, tripID, id string) (*models.Activity, error) {
	var a models.Activity
	if err := c.do(ctx, call{method: http.MethodGet, path: activityPath(tripID, id), out: &a}); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateActivity(ctx context.Context, tripID string, req models.CreateActivityRequest) (*models.Activity, error) {
	var a models.Activity
	err := c.do(ctx, call{method: http.MethodPost, path: activitiesPath(tripID), in: req, out: &a, auth: authRequired})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) UpdateActivity(ctx context.Context, tripID, id string, req models.UpdateActivityRequest) (*models.Activity, error) {
	var a models.Activity
	err := c.do(ctx, call{method: http.MethodPut, path: activityPath(tripID, id), in: req, out: &a, auth: authRequired})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeleteActivity(ctx context.Context, tripID, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: activityPath(tripID, id), auth: authRequired, body: bodyIgnore})
}
