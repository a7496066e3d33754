package main

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	profileHandler "profile-backend/internal/domains/profile/handler"
	"profile-backend/internal/shared/middleware"
	"profile-backend/pkg/container"
)

func SetupRouter(c *container.Container, reg prometheus.Registerer) *gin.Engine {
	return newRouter(c.ProfileHandler, c.Config.Static.Dir, reg)
}

// newRouter wires routes onto the profile handler. staticDir may be empty.
func newRouter(h *profileHandler.ProfileHandler, staticDir string, reg prometheus.Registerer) *gin.Engine {
	router := gin.New()
	metrics := middleware.NewMetrics(reg)

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		metrics.Handler(),
	)

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		setupProfileRoutes(api, h)
		setupQueryRoutes(api, h)
	}

	setupStaticRoutes(router, staticDir)
	return router
}

// ========================================
// PROFILE ROUTES
// ========================================
func setupProfileRoutes(api *gin.RouterGroup, h *profileHandler.ProfileHandler) {
	api.GET("/profile", h.GetProfile)
	api.POST("/profile", h.UpsertProfile)
	api.GET("/profile/:id", h.GetProfileByID)
	api.PUT("/profile/:id", h.UpdateProfile)
	api.POST("/profile/:id/publish", h.PublishProfile)
	api.GET("/profiles", h.ListProfiles)
}

// ========================================
// QUERY ROUTES
// ========================================
func setupQueryRoutes(api *gin.RouterGroup, h *profileHandler.ProfileHandler) {
	api.GET("/projects", h.ProjectsBySkill)
	api.GET("/skills/top", h.TopSkills)
	api.GET("/search", h.Search)
}

// ========================================
// STATIC CLIENT
// ========================================
func setupStaticRoutes(router *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		log.Warn().Str("dir", dir).Msg("Static client not found, skipping")
		return
	}

	router.StaticFile("/", index)
	router.StaticFile("/index.html", index)
	router.StaticFile("/script.js", filepath.Join(dir, "script.js"))
	router.StaticFile("/style.css", filepath.Join(dir, "style.css"))
}
