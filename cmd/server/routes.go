package main

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-challenge.backend/internal/config"
	"campus-challenge.backend/internal/infrastructure/repositories"
	"campus-challenge.backend/internal/interfaces/http/handlers"
	"campus-challenge.backend/internal/interfaces/http/middleware"
	"campus-challenge.backend/internal/usecases"
	"campus-challenge.backend/pkg/clock"
	"campus-challenge.backend/pkg/jwt"
	"campus-challenge.backend/pkg/metrics"
)

const (
	serviceName    = "campus-challenge-backend"
	serviceVersion = "1.0.0"
)

type routeDeps struct {
	teamHandler     *handlers.TeamHandler
	configHandler   *handlers.ConfigHandler
	adminHandler    *handlers.AdminHandler
	adminMiddleware gin.HandlerFunc
	submitLimit     gin.HandlerFunc
}

func buildRouteDeps(cfg *config.Config, db *gorm.DB, clk *clock.ZoneClock) routeDeps {
	teamRepo := repositories.NewTeamRepository(db)
	memberRepo := repositories.NewTeamMemberRepository(db)
	configRepo := repositories.NewConfigRepository(db)
	uow := repositories.NewUnitOfWork(db)

	jwtService := jwt.NewJWTService(cfg.Admin.JWTSecret, cfg.Admin.TokenExpiry)

	registrationUsecase := usecases.NewRegistrationUsecase(teamRepo, configRepo, uow, clk)
	teamUsecase := usecases.NewTeamUsecase(teamRepo)
	configUsecase := usecases.NewConfigUsecase(configRepo, clk)
	adminUsecase := usecases.NewAdminUsecase(teamRepo, memberRepo, configRepo, uow, clk)
	adminAuthUsecase := usecases.NewAdminAuthUsecase(cfg.Admin, jwtService)
	exportUsecase := usecases.NewExportUsecase(teamRepo, memberRepo, clk)

	loc := clk.Location()
	return routeDeps{
		teamHandler:     handlers.NewTeamHandler(registrationUsecase, teamUsecase, loc),
		configHandler:   handlers.NewConfigHandler(configUsecase),
		adminHandler:    handlers.NewAdminHandler(adminUsecase, adminAuthUsecase, exportUsecase, loc),
		adminMiddleware: middleware.AdminAuthMiddleware(adminAuthUsecase),
		submitLimit:     middleware.RateLimitMiddleware("submit", cfg.Registration.SubmitRateLimit, cfg.Registration.SubmitRateWin),
	}
}

func newRouter(cfg *config.Config, d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.BodyLimitMiddleware(cfg.HTTP.MaxBodyBytes))

	registerHealthRoute(r)
	registerPublicRoutes(r, d)
	registerAdminRoutes(r, d)
	registerStaticRoutes(r, cfg.HTTP.WebDir)
	return r
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerPublicRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		api.POST("/team/submit", d.submitLimit, middleware.IdempotencyMiddleware(), d.teamHandler.SubmitTeam)
		api.GET("/teams", d.teamHandler.ListTeams)
		api.GET("/team/:id", d.teamHandler.GetTeam)
		api.GET("/config", d.configHandler.GetConfig)
	}
}

func registerAdminRoutes(r *gin.Engine, d routeDeps) {
	admin := r.Group("/admin/api")
	admin.POST("/login", d.adminHandler.Login)

	protected := admin.Group("")
	protected.Use(d.adminMiddleware)
	{
		protected.GET("/teams", d.adminHandler.ListTeams)
		protected.GET("/teams/:id", d.adminHandler.GetTeam)
		protected.PUT("/teams/:id", d.adminHandler.UpdateTeam)
		protected.DELETE("/teams/:id", d.adminHandler.DeleteTeam)

		protected.GET("/members", d.adminHandler.ListMembers)
		protected.PUT("/members/:id", d.adminHandler.UpdateMember)
		protected.DELETE("/members/:id", d.adminHandler.DeleteMember)

		protected.GET("/configs", d.adminHandler.ListConfigs)
		protected.PUT("/configs", d.adminHandler.UpsertConfig)
		protected.DELETE("/configs/:key", d.adminHandler.DeleteConfig)

		protected.GET("/export/teams", d.adminHandler.ExportTeams)
		protected.GET("/export/members", d.adminHandler.ExportMembers)
	}
}

// registerStaticRoutes serves the registration form page when a web dir is set
func registerStaticRoutes(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	r.StaticFile("/", filepath.Join(dir, "index.html"))
	// matches the form layout: web/index.html + web/static/*
	r.Static("/static", filepath.Join(dir, "static"))
}
