package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/healthdesk/internal/registry/service"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store"
	"github.com/aussiebroadwan/healthdesk/pkg/httpx"
	"github.com/aussiebroadwan/healthdesk/pkg/jwtx"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"

	_ "github.com/aussiebroadwan/healthdesk/api/registry" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AuthService       *service.AuthService
	ClientService     *service.ClientService
	ProgramService    *service.ProgramService
	EnrollmentService *service.EnrollmentService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerClients()
	r.registerPrograms()
	r.registerEnrollments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Healthdesk Registry API
//	@version		0.1.0
//	@description	Client and health program registry used by the healthdesk front desk.
//	@description
//	@description				Every /api route except login needs an EdDSA-signed bearer token issued by POST /api/login.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/healthdesk
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication, a scope check and a per-user
// rate limit.
func (r *Router) secured(h http.HandlerFunc, scope string, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireScope(scope),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{AuthService: r.AuthService}

	// POST /api/login - strict rate limit by IP + username to slow brute force
	r.Mux.Handle("POST /api/login",
		httpx.Chain(h,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	r.Mux.Handle("GET /api/clients", r.secured(h.HandleList, jwtx.ScopeClientsRead, httpx.LenientLimit))
	r.Mux.Handle("GET /api/clients/search", r.secured(h.HandleSearch, jwtx.ScopeClientsRead, httpx.LenientLimit))
	r.Mux.Handle("GET /api/clients/{id}", r.secured(h.HandleGet, jwtx.ScopeClientsRead, httpx.LenientLimit))
	r.Mux.Handle("POST /api/clients", r.secured(h.HandleCreate, jwtx.ScopeClientsWrite, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/clients/{id}", r.secured(h.HandleUpdate, jwtx.ScopeClientsWrite, httpx.ModerateLimit))
}

func (r *Router) registerPrograms() {
	h := &ProgramsHandler{ProgramService: r.ProgramService}

	r.Mux.Handle("GET /api/programs", r.secured(h.HandleList, jwtx.ScopeProgramsRead, httpx.LenientLimit))
	r.Mux.Handle("POST /api/programs", r.secured(h.HandleCreate, jwtx.ScopeProgramsWrite, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/programs/{id}", r.secured(h.HandleUpdate, jwtx.ScopeProgramsWrite, httpx.ModerateLimit))
}

func (r *Router) registerEnrollments() {
	h := &EnrollmentsHandler{EnrollmentService: r.EnrollmentService}

	r.Mux.Handle("POST /api/clients/{id}/programs", r.secured(h.HandleCreate, jwtx.ScopeClientsWrite, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/clients/{id}/programs/{program_id}", r.secured(h.HandleDelete, jwtx.ScopeClientsWrite, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
