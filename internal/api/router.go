package api

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"wealth-projections/internal/api/handlers"
	"wealth-projections/internal/api/middleware"
	"wealth-projections/internal/config"
	"wealth-projections/internal/contact"
	"wealth-projections/internal/projection"
	"wealth-projections/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the router wires into handlers. Nil fields get defaults.
type Deps struct {
	Config   *config.Config
	Engine   *projection.Engine
	Board    *session.Board
	Contact  *contact.Client
	Gatherer prometheus.Gatherer
}

// NewRouter builds the HTTP API.
func NewRouter(d Deps) *gin.Engine {
	if d.Config == nil {
		d.Config = config.Default()
	}
	if d.Engine == nil {
		d.Engine = projection.New()
	}
	if d.Board == nil {
		d.Board = session.NewBoard(d.Engine, d.Config.BaseYear(time.Now()), d.Config.Sessions.TTL)
	}
	if d.Contact == nil {
		d.Contact = contact.NewClient(d.Config.Contact.Endpoint, d.Config.Contact.Timeout)
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(d.Config.Server.AllowedOrigins...))

	projectionHandler := handlers.NewProjectionHandler(d.Engine, d.Config)
	calculatorHandler := handlers.NewCalculatorHandler(d.Config)
	sessionHandler := handlers.NewSessionHandler(d.Board, d.Config)
	contactHandler := handlers.NewContactHandler(d.Contact, d.Config.Contact.Timeout)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/calculators", calculatorHandler.ListCalculators)

		v1.POST("/projections/:calculator", projectionHandler.RunProjection)
		v1.POST("/projections/:calculator/export", projectionHandler.Export)
		v1.POST("/compare/:calculator", projectionHandler.Compare)

		v1.POST("/sessions/:session/:calculator", sessionHandler.Apply)
		v1.DELETE("/sessions/:session", sessionHandler.Forget)

		v1.POST("/contact", contactHandler.Submit)
	}

	serveStatic(router, d.Config.Server.StaticDir)
	return router
}

// serveStatic serves the site build with SPA fallback, if the directory exists.
func serveStatic(router *gin.Engine, staticDir string) {
	if staticDir == "" {
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
		return
	}
	router.Static("/assets", staticDir+"/assets")
	router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

	router.NoRoute(func(c *gin.Context) {
		// Don't serve index.html for API routes
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(staticDir + "/index.html")
	})
	log.Printf("Serving static files from %s", staticDir)
}
