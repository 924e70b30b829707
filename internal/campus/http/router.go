package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/unidesk/campus/internal/campus/service"
	"github.com/unidesk/campus/internal/campus/store"
	"github.com/unidesk/campus/pkg/httpx"
	"github.com/unidesk/campus/pkg/slogx"

	_ "github.com/unidesk/campus/api/campus" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	requestTimeout time.Duration

	Credentials    service.Credentials
	Sessions       *service.Sessions
	CatalogService *service.Catalog
	UserService    *service.Users
}

func NewRouter(buildVersion string, requestTimeout time.Duration, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		store:          st,
		requestTimeout: requestTimeout,
		logger:         logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.TimeoutMiddleware(r.requestTimeout),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerCatalog()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Campus Access Service API
//	@version		0.1.0
//	@description	Session-gated access layer over the university catalog hierarchy
//	@description	(faculties, collections, items) and user profiles. Sessions are
//	@description	HS256-signed bearer tokens delivered as a cookie at login.
//
//	@contact.name				UniDesk Team
//	@contact.url				https://github.com/unidesk/campus
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}". Also accepted as the "token" cookie.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	// POST /login - strict rate limit by IP (authentication attempts)
	h := &LoginHandler{
		Credentials: r.Credentials,
		Sessions:    r.Sessions,
	}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerCatalog() {
	faculties := &FacultiesHandler{Catalog: r.CatalogService}
	collection := &CollectionHandler{Catalog: r.CatalogService}

	// All catalog reads require a valid session token
	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.SessionMiddleware(r.Sessions.Signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/faculties", secured(faculties))
	r.Mux.Handle("GET /v1/faculties/{facultyID}/{collection}", secured(http.HandlerFunc(collection.HandleList)))
	r.Mux.Handle("GET /v1/faculties/{facultyID}/{collection}/{itemID}", secured(http.HandlerFunc(collection.HandleGet)))
	r.Mux.Handle("PUT /v1/faculties/{facultyID}/{collection}/{itemID}", secured(http.HandlerFunc(collection.HandlePut)))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.UserService}

	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.SessionMiddleware(r.Sessions.Signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST /v1/users", secured(http.HandlerFunc(h.HandleSave)))
	r.Mux.Handle("GET /v1/users/{uid}", secured(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PATCH /v1/users/{uid}", secured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/users/{uid}", secured(http.HandlerFunc(h.HandleDelete)))
	r.Mux.Handle("POST /v1/users/{uid}/verify", secured(http.HandlerFunc(h.HandleVerify)))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
