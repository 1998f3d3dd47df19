package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/starterkit/server/internal/docs" // swagger docs
	"github.com/starterkit/server/internal/shared/config"
	"github.com/starterkit/server/internal/shared/logger"
	"github.com/starterkit/server/internal/shared/response"
	"github.com/starterkit/server/internal/utils/metrics"
	"github.com/starterkit/server/internal/utils/middleware"
)

// APIPrefix is the versioned prefix every route module is mounted under.
const APIPrefix = "/api/v1"

// RouteModule mounts one group of routes below APIPrefix.
type RouteModule struct {
	Path     string
	Register func(rg *gin.RouterGroup)
}

// App represents the HTTP application.
type App struct {
	config    *config.Config
	logger    *logger.Logger
	metrics   *metrics.Metrics
	responder *middleware.ErrorResponder
	modules   []RouteModule
	router    *gin.Engine
}

// New assembles the HTTP application. m may be nil when metrics are disabled.
func New(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	responder *middleware.ErrorResponder,
	modules []RouteModule,
) *App {
	a := &App{
		config:    cfg,
		logger:    log,
		metrics:   m,
		responder: responder,
		modules:   modules,
	}
	a.router = a.setupRouter()
	return a
}

// Router returns the configured gin engine.
func (a *App) Router() *gin.Engine {
	return a.router
}

// setupRouter creates the engine. Middleware order: recovery, request ID,
// access log, metrics, CORS, body limit, error handler; then routes and the
// catch-all 404.
func (a *App) setupRouter() *gin.Engine {
	if a.config.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Every response is an envelope; a trailing slash is a miss, not a 301.
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.Recovery(a.responder))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	if a.metrics != nil {
		r.Use(middleware.Metrics(a.metrics))
	}
	r.Use(middleware.CORS(a.config.CORS))
	r.Use(middleware.BodyLimit(a.config.Server.MaxBodyBytes))
	r.Use(middleware.ErrorHandler(a.responder))

	r.GET("/", a.root)

	api := r.Group(APIPrefix)
	for _, m := range a.modules {
		m.Register(api.Group(m.Path))
	}

	if a.metrics != nil {
		r.GET(a.config.Metrics.Path, gin.WrapH(a.metrics.Handler()))
	}
	if a.config.Docs.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	r.NoRoute(response.NotFound)

	return r
}

// root answers the bare liveness probe with plain text.
//
//	@Summary	Root greeting
//	@Tags		System
//	@Produce	plain
//	@Success	200	{string}	string	"Hello World!"
//	@Router		/ [get]
func (a *App) root(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}
