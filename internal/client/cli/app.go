package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/atelieperto/atelieperto/internal/client/api"
	"github.com/atelieperto/atelieperto/internal/client/config"
	"github.com/atelieperto/atelieperto/internal/client/directory"
	"github.com/atelieperto/atelieperto/internal/client/models"
	"github.com/atelieperto/atelieperto/internal/client/session"
	"github.com/atelieperto/atelieperto/internal/client/store"
	"github.com/atelieperto/atelieperto/internal/client/theme"
	"github.com/atelieperto/atelieperto/internal/logging"
)

// Session is the authentication surface the CLI needs. *session.Manager
// satisfies it; tests can provide a lightweight stub.
type Session interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, data models.RegisterData) (string, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(email string) (string, error)
	IsAuthenticated() bool
	User() *models.User
}

// Directory is the provider listing surface the CLI needs. *directory.Engine
// satisfies it.
type Directory interface {
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	SetQuery(q string)
	View() []models.Provider
	Featured() []models.Provider
}

// Theme is the theme surface the CLI needs. *theme.State satisfies it.
type Theme interface {
	Init(ctx context.Context)
	Toggle(ctx context.Context) bool
	IsDark() bool
}

// ProfileFetcher loads one full provider record. *api.Client satisfies it.
type ProfileFetcher interface {
	Profile(ctx context.Context, id int64) (*models.Profile, error)
}

// App bundles the client components behind the REPL.
type App struct {
	config   *config.Config
	session  Session
	dir      Directory
	theme    Theme
	profiles ProfileFetcher
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local database, builds the API client, and wires the
// session, directory, and theme components around them.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, c.DatabaseFile)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	apiClient := api.New(c.ServerEndpointAddr, c.RequestTimeout)

	return &App{
		config:   c,
		session:  session.NewManager(st, apiClient, log),
		dir:      directory.New(apiClient, log),
		theme:    theme.NewState(st, log),
		profiles: apiClient,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// Run restores persisted state and enters the REPL. It blocks until the user
// exits.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
