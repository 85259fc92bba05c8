package models

type Activity struct {
	ID              string   `json:"id"`
	TripID          string   `json:"tripId"`
	Title           string   `json:"title"`
	Description     *string  `json:"description,omitempty"`
	Location        string   `json:"location"`
	ScheduledDate   string   `json:"scheduledDate"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Cost            *float64 `json:"cost,omitempty"`
	CreatedBy       string   `json:"createdBy"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}
