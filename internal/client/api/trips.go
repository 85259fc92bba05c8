package api

import (
	"context"
	"net/http"

	"github.com/cotrip/cotrip/internal/client/models"
)

func (c *Client) ListTrips(ctx context.Context, params models.ListTripsParams) ([]models.Trip, error) {
	trips := []models.Trip{}
	err := c.do(ctx, call{
		method: http.MethodGet, path: "/trips", query: params.Query(),
		out: &trips, body: bodyList,
	})
	if err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	return trips, nil
}

func (c *Client) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	var trip models.Trip
	if err := c.do(ctx, call{method: http.MethodGet, path: tripPath(id), out: &trip}); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *Client) CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error) {
	var trip models.Trip
	err := c.do(ctx, call{method: http.MethodPost, path: "/trips", in: req, out: &trip, auth: authRequired})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *Client) UpdateTrip(ctx context.Context, id string, req models.UpdateTripRequest) (*models.Trip, error) {
	var trip models.Trip
	err := c.do(ctx, call{method: http.MethodPut, path: tripPath(id), in: req, out: &trip, auth: authRequired})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: tripPath(id), auth: authRequired, body: bodyIgnore})
}
