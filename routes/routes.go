package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pawcal/handlers"
	"pawcal/middleware"
	"pawcal/utils"
)

// RegisterCalendarRoutes wires the availability endpoints for one professional.
func RegisterCalendarRoutes(router *gin.Engine, calendarHandler *handlers.CalendarHandler) {
	calendar := router.Group("/api/professionals/:professionalID/calendar")
	{
		calendar.GET("", calendarHandler.GetCalendarHandler)
		calendar.GET("/unavailable", calendarHandler.GetUnavailableTimesHandler)
		calendar.GET("/free/:date", calendarHandler.GetFreeIntervalsHandler)
		calendar.POST("/availability", calendarHandler.ApplyAvailabilityChangeHandler)
		calendar.GET("/defaults", calendarHandler.GetWeeklyDefaultsHandler)
		calendar.PUT("/defaults", calendarHandler.SetWeeklyDefaultsHandler)
	}
}

// RegisterRoutes attaches global middleware and all route groups.
func RegisterRoutes(router *gin.Engine, calendarHandler *handlers.CalendarHandler) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware())

	router.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	RegisterCalendarRoutes(router, calendarHandler)
}
