// Package guard decides whether a console route may be shown for the
// current session, or where the user has to be sent instead.
package guard

import (
	"strings"

	"casenara/utils"

	"go.uber.org/zap"
)

// Session reports the authentication state of the current user.
type Session interface {
	IsAuthenticated() bool
}

// Route is one entry of the console's route table.
type Route struct {
	Path string
	Name string
}

// NotFoundName names the catch-all route.
const NotFoundName = "NotFound"

// DefaultRoutes is the console's route table.
var DefaultRoutes = []Route{
	{Path: "/login", Name: "Login"},
	{Path: "/register", Name: "Register"},
	{Path: "/add-product", Name: "AddProduct"},
	{Path: "/add-customer", Name: "AddCustomer"},
	{Path: "/add-order", Name: "AddOrder"},
	{Path: "/header", Name: "Header"},
}

// Config holds the paths the guard redirects between.
type Config struct {
	PublicPaths []string // reachable without logging in, e.g. /login
	LoginPath   string   // where anonymous users are sent
	HomePath    string   // where logged-in users visiting a public path are sent
}

// DefaultConfig mirrors the console's behaviour.
func DefaultConfig() Config {
	return Config{
		PublicPaths: []string{"/login", "/register"},
		LoginPath:   "/login",
		HomePath:    "/",
	}
}

// Decision is the outcome of resolving a navigation.
type Decision struct {
	Allow    bool
	Redirect string // set when Allow is false
	Route    Route  // the matched route when Allow is true
}

// Guard resolves navigations against a session.
type Guard struct {
	session Session
	cfg     Config
	public  map[string]struct{}
	routes  map[string]Route
	logger  *zap.Logger
}

// New builds a Guard over DefaultRoutes. A nil logger disables logging.
func New(session Session, cfg Config, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Guard{
		session: session,
		cfg:     cfg,
		public:  make(map[string]struct{}, len(cfg.PublicPaths)),
		routes:  make(map[string]Route, len(DefaultRoutes)),
		logger:  logger,
	}

	for _, p := range cfg.PublicPaths {
		g.public[p] = struct{}{}
	}

	for _, r := range DefaultRoutes {
		g.routes[r.Path] = r
	}

	return g
}

// IsPublic reports whether path is reachable without logging in.
func (g *Guard) IsPublic(path string) bool {
	_, ok := g.public[path]
	return ok
}

// Match returns the route for path, or the catch-all NotFound route.
func (g *Guard) Match(path string) Route {
	if r, ok := g.routes[path]; ok {
		return r
	}

	return Route{Path: path, Name: NotFoundName}
}

// Resolve decides a navigation to target, which may carry a query string.
//
// Anonymous users are sent to the login path unless target is public.
// Logged-in users are sent home when they open a public path.
func (g *Guard) Resolve(target string) Decision {
	path, _ := utils.Unpack2(strings.SplitN(target, "?", 2))
	if path == "" {
		path = "/"
	}

	authed := g.session != nil && g.session.IsAuthenticated()
	public := g.IsPublic(path)

	switch {
	case !authed && !public:
		g.logger.Debug("redirecting anonymous navigation", zap.String("path", path), zap.String("to", g.cfg.LoginPath))
		return Decision{Redirect: g.cfg.LoginPath}
	case authed && public:
		g.logger.Debug("redirecting authenticated navigation", zap.String("path", path), zap.String("to", g.cfg.HomePath))
		return Decision{Redirect: g.cfg.HomePath}
	default:
		return Decision{Allow: true, Route: g.Match(path)}
	}
}
