package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/apex_aftersales/backend/internal/config"
	"github.com/apex_aftersales/backend/internal/db"
	"github.com/apex_aftersales/backend/internal/http/handlers"
	"github.com/apex_aftersales/backend/internal/http/middleware"
	"github.com/apex_aftersales/backend/internal/service"
	"github.com/apex_aftersales/backend/internal/tz"

	_ "github.com/apex_aftersales/backend/docs"
)

func Router(cfg config.Config, store *db.Store, agenda *service.AgendaService, zone *tz.ZonedClock, clock tz.Clock, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id", "X-Staff-Id", "X-Org-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:       store,
		Agenda:      agenda,
		Zone:        zone,
		Clock:       clock,
		Validator:   validator.New(),
		Logger:      logger,
		AdminKey:    cfg.AdminKey,
		HorizonDays: cfg.HorizonDays,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/agenda", h.AgendaList)
		api.GET("/agenda/conflicts", h.AgendaConflicts)
		api.GET("/work-orders", h.WorkOrdersList)
		api.GET("/work-orders/:id", h.WorkOrderDetails)
		api.GET("/vendors", h.VendorsList)
		api.GET("/staff", h.StaffList)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/debug/schedule/:id", h.DebugSchedule)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
