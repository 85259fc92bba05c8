package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cotrip/cotrip/internal/client/models"
	"github.com/cotrip/cotrip/internal/common"
)

// describe turns an error into a message for the user.
func describe(err error) string {
	var rf *common.RequestFailedError
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return "you are not signed in, use 'login' first"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, common.ErrAccountExists):
		return "an account with this email already exists"
	case errors.Is(err, common.ErrMissingIdentityToken):
		return "no Google ID token was provided"
	case errors.Is(err, common.ErrProviderRejected):
		return "the identity service rejected the request, sign in again"
	case errors.Is(err, common.ErrInvalidDateRange):
		return "start date must not be after end date"
	case errors.Is(err, common.ErrNetwork):
		return "network problem, try again: " + err.Error()
	case errors.Is(err, common.ErrStorage):
		return "local storage failure: " + err.Error()
	case errors.Is(err, common.ErrMalformedResponse):
		return "unexpected answer from the server"
	case errors.As(err, &rf):
		return fmt.Sprintf("server answered %d: %s", rf.StatusCode, rf.Message)
	}
	return err.Error()
}

func printTrips(w io.Writer, trips []models.Trip) {
	if len(trips) == 0 {
		fmt.Fprintln(w, "No trips")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDESTINATION\tDATES\tPUBLIC")
	for _, t := range trips {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s..%s\t%t\n", t.ID, t.Title, t.Destination, t.StartDate, t.EndDate, t.IsPublic)
	}
	_ = tw.Flush()
}

func printTrip(w io.Writer, t *models.Trip) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	if t.Description != nil {
		fmt.Fprintf(tw, "Description:\t%s\n", *t.Description)
	}
	fmt.Fprintf(tw, "Destination:\t%s\n", t.Destination)
	fmt.Fprintf(tw, "Dates:\t%s..%s\n", t.StartDate, t.EndDate)
	fmt.Fprintf(tw, "Public:\t%t\n", t.IsPublic)
	if t.Budget != nil {
		fmt.Fprintf(tw, "Budget:\t%s\n", formatFloat(t.Budget))
	}
	for _, p := range t.Participants {
		fmt.Fprintf(tw, "Participant:\t%s (%s)\n", p.UserID, p.EffectiveRole())
	}
	_ = tw.Flush()
}

func printActivities(w io.Writer, activities []models.Activity) {
	if len(activities) == 0 {
		fmt.Fprintln(w, "No activities")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tLOCATION\tMINUTES\tCOST")
	for _, a := range activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.ScheduledDate, a.Title, a.Location, formatInt(a.DurationMinutes), formatFloat(a.Cost))
	}
	_ = tw.Flush()
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "%s <%s> id=%s\n", u.DisplayName(), u.Email, u.ID)
}

func formatFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
