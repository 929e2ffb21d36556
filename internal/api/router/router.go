package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ronnaro/ata-academica-plus/config"
	"github.com/ronnaro/ata-academica-plus/internal/api/handler"
	"github.com/ronnaro/ata-academica-plus/internal/api/middleware"
	"github.com/ronnaro/ata-academica-plus/internal/service"
	"github.com/ronnaro/ata-academica-plus/pkg/jwt"
	"github.com/ronnaro/ata-academica-plus/pkg/redis"
)

// Setup builds the gin engine with every route wired.
func Setup(cfg *config.Config, h *handler.Handler, svc *service.Service, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	coordinator := middleware.RequireCoordinator(svc.Auth)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth, no session required; credential endpoints are throttled
		loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// meetings: reading is open to any session, the workflow and
			// later edits are coordinator-only
			meetings := authorized.Group("/meetings")
			{
				meetings.GET("", h.Meeting.List)
				meetings.GET("/:id", h.Meeting.Get)
				meetings.GET("/:id/minutes", h.Meeting.GetMinutes)
				meetings.GET("/:id/attachments/:attachmentID", h.Meeting.DownloadAttachment)
				meetings.POST("", coordinator, h.Meeting.Create)
				meetings.PATCH("/:id", coordinator, h.Meeting.Update)
				meetings.PUT("/:id/minutes", coordinator, h.Meeting.SaveMinutes)
				meetings.PUT("/:id/participants/:participantID/attendance", coordinator, h.Meeting.MarkAttendance)
			}

			// professor directory
			professors := authorized.Group("/professors")
			{
				professors.GET("", h.Professor.List)
				professors.GET("/participation", coordinator, h.Professor.ListParticipation)
				professors.GET("/:id", h.Professor.Get)
				professors.POST("", coordinator, h.Professor.Create)
				professors.PATCH("/:id", coordinator, h.Professor.Update)
			}

			// semesters
			semesters := authorized.Group("/semesters")
			{
				semesters.GET("", h.Semester.List)
				semesters.GET("/:id", h.Semester.Get)
				semesters.POST("", coordinator, h.Semester.Create)
				semesters.PATCH("/:id", coordinator, h.Semester.Update)
				semesters.DELETE("/:id", coordinator, h.Semester.Delete)
			}

			// certificates, coordinator-only
			certificates := authorized.Group("/certificates")
			certificates.Use(coordinator)
			{
				certificates.GET("", h.Certificate.List)
				certificates.POST("/generate", h.Certificate.Generate)
				certificates.POST("/generate-batch", h.Certificate.GenerateBatch)
			}

			// per-user settings
			settings := authorized.Group("/settings")
			{
				settings.GET("", h.Settings.List)
				settings.GET("/:type", h.Settings.Get)
				settings.PUT("/institution", h.Settings.SaveInstitution)
				settings.PUT("/certificate", h.Settings.SaveCertificate)
				settings.PUT("/meeting", h.Settings.SaveMeeting)
				settings.POST("/institution/logo", h.Settings.UploadLogo)
			}

			// report export, coordinator-only
			export := authorized.Group("/export")
			{
				export.GET("/participation", coordinator, h.Export.ExportParticipation)
			}
		}
	}

	return r
}
