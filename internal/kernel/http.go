// Package kernel assembles the HTTP handler: global middleware, the
// operational endpoints and the catalog routes.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/controllers"
	"github.com/shashiranjanraj/backoffice/app/routes"
	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/auth"
	"github.com/shashiranjanraj/backoffice/pkg/database"
	"github.com/shashiranjanraj/backoffice/pkg/metrics"
	"github.com/shashiranjanraj/backoffice/pkg/middleware"
	"github.com/shashiranjanraj/backoffice/pkg/rbac"
	"github.com/shashiranjanraj/backoffice/pkg/reqid"
	"github.com/shashiranjanraj/backoffice/pkg/response"
	"github.com/shashiranjanraj/backoffice/pkg/router"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
)

// Deps is what the kernel needs from boot.
type Deps struct {
	DB     *gorm.DB
	Disks  *storage.Manager
	Limits controllers.Limits

	// RateLimit is requests per minute per client IP. Zero disables it.
	RateLimit int

	// Auth guards the catalog routes when set. Roles, if any, further
	// restricts them to tokens carrying one of those roles.
	Auth  *auth.Validator
	Roles []string
}

type HTTPKernel struct {
	router  *router.Router
	limiter *middleware.RateLimiter
}

// NewHTTPKernel wires services and controllers over deps and registers
// every route.
func NewHTTPKernel(d Deps) *HTTPKernel {
	k := &HTTPKernel{router: router.New()}
	r := k.router

	// Outermost first: metrics see total latency, recovery catches panics
	// before anything else, and the request id exists before logging.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	if d.RateLimit > 0 {
		k.limiter = middleware.NewRateLimiter(d.RateLimit, time.Minute)
		r.Use(k.limiter.Handler)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { response.MethodNotAllowed(w) })

	r.Get("/healthz", "health", health(d.DB))
	r.Get("/metrics", "metrics", metrics.Handler())
	if local := d.Disks.Local(); local != nil {
		r.Mount("/storage", "storage", http.StripPrefix("/storage", http.FileServer(http.Dir(local.Root()))))
	}

	disk := d.Disks.Default()
	opt := services.WithImageMaxKB(d.Limits.ImageMaxKB)
	categories := services.NewCategoryService(d.DB, disk, opt)
	clients := services.NewClientService(d.DB, disk, opt)
	products := services.NewProductService(d.DB, disk, opt)

	var guard []router.Middleware
	if d.Auth != nil {
		guard = append(guard, middleware.Auth(d.Auth))
		if len(d.Roles) > 0 {
			guard = append(guard, rbac.HasRole(d.Roles...))
		}
	}
	routes.RegisterAPI(r, routes.Controllers{
		Category: controllers.NewCategoryController(categories, disk, d.Limits),
		Client:   controllers.NewClientController(clients, categories, disk, d.Limits),
		Product:  controllers.NewProductController(products, disk, d.Limits),
	}, guard...)

	return k
}

func (k *HTTPKernel) Handler() http.Handler  { return k.router.Handler() }
func (k *HTTPKernel) Router() *router.Router { return k.router }

// Close stops background work started by the kernel.
func (k *HTTPKernel) Close() {
	if k.limiter != nil {
		k.limiter.Close()
	}
}

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context(), db); err != nil {
			response.Write(w, http.StatusServiceUnavailable, response.Envelope{Status: http.StatusServiceUnavailable, Message: "database unavailable"})
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
