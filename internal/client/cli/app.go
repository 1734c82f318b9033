package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/vsrclient/internal/buildinfo"
	"github.com/dmitrijs2005/vsrclient/internal/client/client"
	"github.com/dmitrijs2005/vsrclient/internal/client/config"
	"github.com/dmitrijs2005/vsrclient/internal/client/paging"
	"github.com/dmitrijs2005/vsrclient/internal/client/render"
	"github.com/dmitrijs2005/vsrclient/internal/client/services"
	"github.com/dmitrijs2005/vsrclient/internal/client/storage"
	"github.com/dmitrijs2005/vsrclient/internal/logging"
	"golang.org/x/term"
)

// Input helpers used by the commands. Tests swap them for stubs.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// terminalSize is a test seam for term.GetSize.
var terminalSize = term.GetSize

// App owns the session, paging state and services for one CLI run.
type App struct {
	config    *config.Config
	logger    logging.Logger
	auth      services.AuthService
	resources services.ResourceService
	session   *services.Session
	pages     *paging.State
	terminal  *render.Terminal
	reader    *bufio.Reader
	out       io.Writer

	// commentsOf is the post whose comments were listed last, so that
	// "comment next" keeps paging through the same post.
	commentsOf int64

	closers []func() error
}

// NewApp opens the session database, restores the saved token and builds
// the API client and services.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	session := services.NewSession(storage.NewSQLiteStore(db), logger)
	if err := session.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	httpClient := client.NewHTTPClient(
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		client.WithTokenSource(session.Token),
		client.WithUnauthorizedHandler(session.Expire),
		client.WithLogger(logger),
		client.WithUserAgent(buildinfo.UserAgent()),
	)
	api := client.NewAPI(httpClient, cfg.AuthBaseURL(), cfg.APIBaseURL())

	a := newApp(cfg, logger,
		services.NewAuthService(api, session, logger),
		services.NewResourceService(api, session, logger),
	)
	a.closers = append(a.closers, api.Close, db.Close)
	return a, nil
}

func newApp(cfg *config.Config, logger logging.Logger, auth services.AuthService, resources services.ResourceService) *App {
	return &App{
		config:    cfg,
		logger:    logger,
		auth:      auth,
		resources: resources,
		session:   auth.Session(),
		pages:     paging.NewState(),
		terminal:  render.NewTerminal(os.Stdout, render.DefaultStyles()),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
}

// setOutput redirects both plain messages and rendered views.
func (a *App) setOutput(w io.Writer) {
	a.out = w
	a.terminal = render.NewTerminal(w, render.DefaultStyles())
}

// Close releases the HTTP client and the database.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// refreshIdentity asks the server for the role of a restored token. A
// failure is logged and otherwise ignored; a 401 has already expired the
// session by the time it returns.
func (a *App) refreshIdentity(ctx context.Context) {
	if !a.session.IsAuthenticated() || a.session.Role() != "" {
		return
	}
	if _, err := a.auth.FetchIdentity(ctx); err != nil {
		a.logger.Warn(ctx, "could not fetch identity", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}

// getStatus is shown in the REPL prompt, e.g. "(a@b.c admin)".
func (a *App) getStatus() string {
	info := a.session.Info()
	if !info.Authenticated {
		return ""
	}
	s := info.Email
	if info.Role != "" {
		if s != "" {
			s += " "
		}
		s += info.Role
	}
	if s == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", s)
}

// width is the configured width, else the terminal's, else 0 (unknown).
func (a *App) width() int {
	if a.config.Width > 0 {
		return a.config.Width
	}
	w, _, err := terminalSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
