package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"

	"github.com/cotrip/cotrip/internal/client/api"
	"github.com/cotrip/cotrip/internal/client/config"
	"github.com/cotrip/cotrip/internal/client/credentials"
	"github.com/cotrip/cotrip/internal/client/identity"
	"github.com/cotrip/cotrip/internal/client/localdb"
	"github.com/cotrip/cotrip/internal/client/models"
	"github.com/cotrip/cotrip/internal/client/services"
	"github.com/cotrip/cotrip/internal/logging"
	"github.com/cotrip/cotrip/internal/netx"
)

// TripsClient is the part of the API client the CLI drives.
type TripsClient interface {
	ListTrips(ctx context.Context, params models.ListTripsParams) ([]models.Trip, error)
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error)
	UpdateTrip(ctx context.Context, id string, req models.UpdateTripRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	ListActivities(ctx context.Context, tripID string) ([]models.Activity, error)
	GetActivity(ctx context.Context, tripID, id string) (*models.Activity, error)
	CreateActivity(ctx context.Context, tripID string, req models.CreateActivityRequest) (*models.Activity, error)
	UpdateActivity(ctx context.Context, tripID, id string, req models.UpdateActivityRequest) (*models.Activity, error)
	DeleteActivity(ctx context.Context, tripID, id string) error
}

type App struct {
	session services.SessionService
	trips   TripsClient
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger
	db      *sql.DB

	// breakerState reports the transport's circuit breaker; nil means none.
	breakerState func() string

	mu     sync.Mutex
	status string
}

// NewApp opens the local database and wires every client component.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := localdb.Open(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	netCfg := netx.Config{Timeout: c.RequestTimeout}
	if c.BreakerEnabled {
		bc := netx.DefaultBreakerConfig("cotrip")
		netCfg.Breaker = &bc
	}
	transport := netx.New(netCfg, log)

	reader := bufio.NewReader(in)
	store := credentials.NewStore(db, log)
	idp := identity.NewClient(identity.Config{BaseURL: c.IdentityURL, APIKey: c.IdentityAPIKey}, transport, log)
	session := services.NewSessionService(idp, store, newConsentFlow(reader, out), log)
	trips := api.NewClient(api.Config{BaseURL: c.APIBaseURL}, store, transport, log)

	a := newApp(session, trips, reader, out, log)
	a.db = db
	a.breakerState = transport.BreakerState
	return a, nil
}

func newApp(session services.SessionService, trips TripsClient, reader *bufio.Reader, out io.Writer, log logging.Logger) *App {
	return &App{session: session, trips: trips, reader: reader, out: out, log: log}
}

// Run restores the stored session, follows auth state changes and runs the
// REPL until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to CoTrip CLI (type 'help' for commands)")

	user, err := a.session.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "restoring session failed", "error", err)
	} else if user != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", user.DisplayName())
	}

	go a.watchState(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) watchState(ctx context.Context) {
	for st := range a.session.State(ctx) {
		status := ""
		if st.IsLoggedIn {
			status = "signed in"
			if st.User != nil {
				status = st.User.Email
			}
		}
		a.mu.Lock()
		a.status = status
		a.mu.Unlock()
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.status)
}

// Status prints who is signed in and whether the API is currently reachable
// through the circuit breaker.
func (a *App) Status(ctx context.Context) error {
	if user := a.session.CurrentUser(); user != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", user.DisplayName())
	} else {
		fmt.Fprintln(a.out, "Not signed in")
	}

	state := "disabled"
	if a.breakerState != nil {
		state = a.breakerState()
	}
	fmt.Fprintf(a.out, "Circuit breaker: %s\n", state)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.CurrentUser() != nil
}
