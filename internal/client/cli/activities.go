package cli

import (
	"context"
	"fmt"

	"github.com/cotrip/cotrip/internal/client/models"
)

func (a *App) Activities(ctx context.Context, tripID string) error {
	activities, err := a.trips.ListActivities(ctx, tripID)
	if err != nil {
		return err
	}
	printActivities(a.out, activities)
	return nil
}

func (a *App) AddActivity(ctx context.Context, tripID string) error {
	var (
		req models.CreateActivityRequest
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
	if req.Location, err = getSimpleText(a.reader, "Location", a.out); err != nil {
		return err
	}
	if req.ScheduledDate, err = getSimpleText(a.reader, "Scheduled date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}

	duration, err := getSimpleText(a.reader, "Duration in minutes (optional)", a.out)
	if err != nil {
		return err
	}
	if req.DurationMinutes, err = optionalInt(duration); err != nil {
		return err
	}
	cost, err := getSimpleText(a.reader, "Cost (optional)", a.out)
	if err != nil {
		return err
	}
	if req.Cost, err = optionalFloat(cost); err != nil {
		return err
	}

	activity, err := a.trips.CreateActivity(ctx, tripID, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Activity %s created\n", activity.ID)
	return nil
}

// EditActivity prompts for every field; empty answers keep the current value.
func (a *App) EditActivity(ctx context.Context, tripID, id string) error {
	current, err := a.trips.GetActivity(ctx, tripID, id)
	if err != nil {
		return err
	}

	var req models.UpdateActivityRequest
	ask := func(label, value string) (string, error) {
		return getSimpleText(a.reader, fmt.Sprintf("%s [%s] (empty keeps)", label, value), a.out)
	}

	s, err := ask("Title", current.Title)
	if err != nil {
		return err
	}
	req.Title = optionalString(s)

	if s, err = ask("Location", current.Location); err != nil {
		return err
	}
	req.Location = optionalString(s)

	if s, err = ask("Scheduled date", current.ScheduledDate); err != nil {
		return err
	}
	req.ScheduledDate = optionalString(s)

	if s, err = ask("Duration in minutes", formatInt(current.DurationMinutes)); err != nil {
		return err
	}
	if req.DurationMinutes, err = optionalInt(s); err != nil {
		return err
	}

	if s, err = ask("Cost", formatFloat(current.Cost)); err != nil {
		return err
	}
	if req.Cost, err = optionalFloat(s); err != nil {
		return err
	}

	if req == (models.UpdateActivityRequest{}) {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	activity, err := a.trips.UpdateActivity(ctx, tripID, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Activity %s updated\n", activity.ID)
	return nil
}

func (a *App) DeleteActivity(ctx context.Context, tripID, id string) error {
	if err := a.trips.DeleteActivity(ctx, tripID, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Activity %s deleted\n", id)
	return nil
}
