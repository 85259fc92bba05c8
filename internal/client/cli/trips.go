package cli

import (
	"context"
	"fmt"

	"github.com/cotrip/cotrip/internal/client/models"
)

// Trips lists trips; a non-empty search is sent as the server-side filter.
func (a *App) Trips(ctx context.Context, search string) error {
	trips, err := a.trips.ListTrips(ctx, models.ListTripsParams{Search: search})
	if err != nil {
		return err
	}
	printTrips(a.out, trips)
	return nil
}

func (a *App) Trip(ctx context.Context, id string) error {
	trip, err := a.trips.GetTrip(ctx, id)
	if err != nil {
		return err
	}
	printTrip(a.out, trip)
	return nil
}

func (a *App) AddTrip(ctx context.Context) error {
	var (
		req models.CreateTripRequest
		err error
	)

	if req.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	req.Description = optionalString(description)
	if req.Destination, err = getSimpleText(a.reader, "Destination", a.out); err != nil {
		return err
	}
	if req.StartDate, err = getSimpleText(a.reader, "Start date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	if req.EndDate, err = getSimpleText(a.reader, "End date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	if err := models.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return err
	}

	public, err := getSimpleText(a.reader, "Public? (y/N)", a.out)
	if err != nil {
		return err
	}
	isPublic, err := optionalBool(public)
	if err != nil {
		return err
	}
	req.IsPublic = isPublic != nil && *isPublic

	budget, err := getSimpleText(a.reader, "Budget (optional)", a.out)
	if err != nil {
		return err
	}
	if req.Budget, err = optionalFloat(budget); err != nil {
		return err
	}

	trip, err := a.trips.CreateTrip(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Trip %s created\n", trip.ID)
	return nil
}

// EditTrip prompts for every field; empty answers keep the current value.
func (a *App) EditTrip(ctx context.Context, id string) error {
	current, err := a.trips.GetTrip(ctx, id)
	if err != nil {
		return err
	}

	var req models.UpdateTripRequest
	ask := func(label, value string) (*string, error) {
		s, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (empty keeps)", label, value), a.out)
		if err != nil {
			return nil, err
		}
		return optionalString(s), nil
	}

	if req.Title, err = ask("Title", current.Title); err != nil {
		return err
	}
	if req.Destination, err = ask("Destination", current.Destination); err != nil {
		return err
	}
	if req.StartDate, err = ask("Start date", current.StartDate); err != nil {
		return err
	}
	if req.EndDate, err = ask("End date", current.EndDate); err != nil {
		return err
	}
	if err := models.ValidateDateRange(valueOr(req.StartDate, current.StartDate), valueOr(req.EndDate, current.EndDate)); err != nil {
		return err
	}

	public, err := ask("Public (y/n)", fmt.Sprint(current.IsPublic))
	if err != nil {
		return err
	}
	if public != nil {
		if req.IsPublic, err = optionalBool(*public); err != nil {
			return err
		}
	}

	budget, err := ask("Budget", formatFloat(current.Budget))
	if err != nil {
		return err
	}
	if budget != nil {
		if req.Budget, err = optionalFloat(*budget); err != nil {
			return err
		}
	}

	if req == (models.UpdateTripRequest{}) {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	trip, err := a.trips.UpdateTrip(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Trip %s updated\n", trip.ID)
	return nil
}

func (a *App) DeleteTrip(ctx context.Context, id string) error {
	if err := a.trips.DeleteTrip(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Trip %s deleted\n", id)
	return nil
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
