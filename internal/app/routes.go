package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/starterkit/server/internal/shared/config"
	"github.com/starterkit/server/internal/shared/response"
	"github.com/starterkit/server/internal/utils/handler"
)

// HealthStatus is the payload of the health route.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
}

// DefaultModules returns the route table mounted below APIPrefix.
func DefaultModules(cfg *config.Config) []RouteModule {
	return []RouteModule{
		{Path: "/health", Register: healthModule(cfg, time.Now())},
	}
}

func healthModule(cfg *config.Config, started time.Time) func(rg *gin.RouterGroup) {
	h := &healthHandler{env: cfg.Env, started: started}
	return func(rg *gin.RouterGroup) {
		rg.GET("", handler.Wrap(h.check))
	}
}

type healthHandler struct {
	env     string
	started time.Time
}

// check reports that the process is serving requests.
//
//	@Summary	Health check
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	response.Body[HealthStatus]
//	@Router		/api/v1/health [get]
func (h *healthHandler) check(c *gin.Context) error {
	response.OK(c, "Server is healthy", HealthStatus{
		Status:      "ok",
		Environment: h.env,
		Uptime:      time.Since(h.started).Round(time.Second).String(),
	})
	return nil
}
