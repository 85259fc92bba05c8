package models

import (
	"net/url"
	"strconv"
)

type CreateTripRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	IsPublic    bool     `json:"isPublic"`
	Budget      *float64 `json:"budget,omitempty"`
}

// UpdateTripRequest carries only the fields to overwrite.
type UpdateTripRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Destination *string  `json:"destination,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	IsPublic    *bool    `json:"isPublic,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
}

type CreateActivityRequest struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description,omitempty"`
	Location        string   `json:"location"`
	ScheduledDate   string   `json:"scheduledDate"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Cost            *float64 `json:"cost,omitempty"`
}

// UpdateActivityRequest carries only the fields to overwrite.
type UpdateActivityRequest struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Location        *string  `json:"location,omitempty"`
	ScheduledDate   *string  `json:"scheduledDate,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Cost            *float64 `json:"cost,omitempty"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// ListTripsParams controls pagination and filtering of the trip list.
type ListTripsParams struct {
	Page        int
	Limit       int
	Search      string
	Destination string
}

// Query encodes the params; zero page/limit fall back to the defaults and
// empty filters are omitted.
func (p ListTripsParams) Query() url.Values {
	page, limit := p.Page, p.Limit
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Destination != "" {
		q.Set("destination", p.Destination)
	}
	return q
}
