// README: HTTP router registration.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ridecompare/internal/http/handlers"
	"ridecompare/internal/http/middleware"
	"ridecompare/internal/service"
)

func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestIDs(),
		middleware.ErrorReporting(),
		middleware.Recovery(),
		middleware.Logging(),
		middleware.Metrics(),
		cors.New(corsConfig(deps.CORSOrigins)),
	)

	r.GET("/health", health(deps.Checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	fares := handlers.NewFareHandler(deps.Pricing, deps.Comparison)
	api.POST("/fares/estimate", fares.Estimate)
	api.GET("/fares/tariffs", fares.Tariffs)
	api.GET("/fares/forecast", fares.Forecast)

	compare := handlers.NewCompareHandler(deps.Comparison)
	api.GET("/rides/compare", compare.Compare)
	api.GET("/rides/live", compare.Live)

	routes := handlers.NewRouteHandler(deps.Routing)
	api.GET("/routes", routes.Get)
	api.POST("/routes/decode", routes.Decode)

	places := handlers.NewPlacesHandler(deps.Places)
	api.GET("/places/autocomplete", places.Autocomplete)
	api.GET("/places/:id", places.Details)
	api.GET("/geocode", places.Geocode)

	var planner *service.TripPlanner
	if deps.Parser != nil {
		planner = service.NewTripPlanner(deps.Parser, deps.Comparison)
	}
	search := handlers.NewSearchHandler(deps.Parser, planner)
	api.POST("/search/parse", search.Parse)
	api.POST("/search/plan", search.Plan)

	if deps.Verifier != nil {
		api.GET("/me", middleware.Auth(deps.Verifier), handlers.Me)
	}

	return r
}

// corsConfig allows every origin, without credentials, when none are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// health always answers 200 while the process serves; optional backends are
// reported individually.
func health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = "down: " + err.Error()
				continue
			}
			status[name] = "up"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backends": status})
	}
}
