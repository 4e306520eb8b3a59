package httpserver

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nexacrm/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	contactHandler *handler.ContactHandler,
	opportunityHandler *handler.OpportunityHandler,
	taskHandler *handler.TaskHandler,
	dashboardHandler *handler.DashboardHandler,
	aiHandler *handler.AIHandler,
	publicDir string,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(MetricsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/contacts", contactHandler.List)
		api.POST("/contacts", contactHandler.Create)
		api.PUT("/contacts/:id", contactHandler.Update)
		api.DELETE("/contacts/:id", contactHandler.Delete)

		api.GET("/opportunities", opportunityHandler.List)
		api.POST("/opportunities", opportunityHandler.Create)
		api.PUT("/opportunities/:id", opportunityHandler.Update)
		api.DELETE("/opportunities/:id", opportunityHandler.Delete)

		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks", taskHandler.Create)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.DELETE("/tasks/:id", taskHandler.Delete)

		api.GET("/metrics", dashboardHandler.Metrics)

		aiGroup := api.Group("/ai")
		{
			aiGroup.POST("/summarize", aiHandler.Summarize)
			aiGroup.POST("/predict", aiHandler.Predict)
			aiGroup.POST("/advise", aiHandler.Advise)
		}
	}

	// operational telemetry, separate from the /api/metrics dashboard
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// static frontend with SPA index.html fallback
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if publicDir == "" || c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}
		p := filepath.Join(publicDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			c.File(p)
			return
		}
		c.File(filepath.Join(publicDir, "index.html"))
	})

	return &Router{Engine: r}
}

func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
