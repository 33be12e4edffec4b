package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawcal/models"
	"pawcal/services/calendar"
	"pawcal/utils"
)

// CalendarHandler exposes the availability engine over HTTP.
type CalendarHandler struct {
	Service calendar.CalendarService
}

// NewCalendarHandler constructs a CalendarHandler.
func NewCalendarHandler(svc calendar.CalendarService) *CalendarHandler {
	return &CalendarHandler{Service: svc}
}

// statusForEngineError maps typed engine failures to HTTP statuses.
func statusForEngineError(err error) int {
	switch {
	case calendar.IsValidation(err), calendar.IsInvalidRange(err):
		return http.StatusBadRequest
	case calendar.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func requireSpan(c *gin.Context) (string, string, bool) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing date span", "query parameters 'from' and 'to' are required (YYYY-MM-DD)")
		return "", "", false
	}
	return from, to, true
}

// GetCalendarHandler returns the per-date display category for a span.
func (h *CalendarHandler) GetCalendarHandler(c *gin.Context) {
	professionalID := c.Param("professionalID")
	from, to, ok := requireSpan(c)
	if !ok {
		return
	}

	categories, err := h.Service.GetCalendar(c.Request.Context(), professionalID, from, to)
	if err != nil {
		utils.GetLogger().Error("Failed to compute calendar render state", zap.String("professionalID", professionalID), zap.Error(err))
		utils.JSONError(c, statusForEngineError(err), "Failed to fetch calendar", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"calendar": categories})
}

// GetUnavailableTimesHandler returns the merged unavailable windows per date.
func (h *CalendarHandler) GetUnavailableTimesHandler(c *gin.Context) {
	professionalID := c.Param("professionalID")
	from, to, ok := requireSpan(c)
	if !ok {
		return
	}

	days, err := h.Service.GetUnavailableTimes(c.Request.Context(), professionalID, from, to)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch unavailable times", zap.String("professionalID", professionalID), zap.Error(err))
		utils.JSONError(c, statusForEngineError(err), "Failed to fetch unavailable times", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetFreeIntervalsHandler returns the conflict-free time ranges of one date.
func (h *CalendarHandler) GetFreeIntervalsHandler(c *gin.Context) {
	professionalID := c.Param("professionalID")
	date := c.Param("date")

	minDuration := 0
	if raw := c.Query("minDuration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid minDuration", "minDuration must be a non-negative number of minutes")
			return
		}
		minDuration = parsed
	}

	intervals, err := h.Service.GetFreeIntervals(c.Request.Context(), professionalID, date, minDuration)
	if err != nil {
		utils.GetLogger().Error("Failed to compute free intervals", zap.String("professionalID", professionalID), zap.String("date", date), zap.Error(err))
		utils.JSONError(c, statusForEngineError(err), "Failed to compute free intervals", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"intervals": intervals})
}

// ApplyAvailabilityChangeHandler applies one batch edit across the selected
// dates and returns the resulting diff.
func (h *CalendarHandler) ApplyAvailabilityChangeHandler(c *gin.Context) {
	professionalID := c.Param("professionalID")

	var req models.AvailabilityChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GetLogger().Error("Invalid availability change request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	diff, err := h.Service.ApplyAvailabilityChange(c.Request.Context(), professionalID, req.Dates, req.Decision())
	if err != nil {
		utils.GetLogger().Warn("Availability change rejected", zap.String("professionalID", professionalID), zap.Error(err))
		utils.JSONError(c, statusForEngineError(err), "Availability change rejected", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Availability updated",
		"diff":    diff,
	})
}

// GetWeeklyDefaultsHandler returns the stored weekly default rules.
func (h *CalendarHandler) GetWeeklyDefaultsHandler(c *gin.Context) {
	professionalID := c.Param("professionalID")

	rules, err := h.Service.GetWeeklyDefaults(c.Request.Context(), professionalID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch weekly defaults", zap.String("professionalID", professionalID), zap.Error(err))
		utils.JSONError(c, statusForEngineError(err), "Failed to fetch weekly defaults", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// SetWeeklyDefaultsHandler replaces the weekly default rules and re-expands
// them over the professional's calendar.
func (h *CalendarHandler) SetWeeklyDefaultsHandler(c *gin.Context) {
	professionalID := c.Param("professionalID")

	var req models.WeeklyDefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GetLogger().Error("Invalid weekly defaults request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	diff, err := h.Service.SetWeeklyDefaults(c.Request.Context(), professionalID, req.Rules)
	if err != nil {
		utils.GetLogger().Warn("Weekly defaults rejected", zap.String("professionalID", professionalID), zap.Error(err))
		utils.JSONError(c, statusForEngineError(err), "Weekly defaults rejected", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Weekly defaults updated",
		"diff":    diff,
	})
}
