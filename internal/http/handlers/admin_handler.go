package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"jubilee/internal/domain"
	"jubilee/internal/service"
)

type AdminHandler struct {
	notifySvc    *service.NotificationService
	celebrateSvc *service.CelebrationService
	hrSyncSvc    *service.HRSyncService
	records      RecordLister
	gifts        service.GiftCatalog
}

// RecordLister is the read-only record access the admin API needs.
type RecordLister interface {
	ListByDate(ctx context.Context, eventDate time.Time) ([]domain.ResponseRecord, error)
}

func NewAdminHandler(
	notifySvc *service.NotificationService,
	celebrateSvc *service.CelebrationService,
	hrSyncSvc *service.HRSyncService,
	records RecordLister,
	gifts service.GiftCatalog,
) *AdminHandler {
	return &AdminHandler{
		notifySvc:    notifySvc,
		celebrateSvc: celebrateSvc,
		hrSyncSvc:    hrSyncSvc,
		records:      records,
		gifts:        gifts,
	}
}

// RunNotifySweep godoc
// @Summary Run the pre-day notification sweep now
// @Description Sends opt-in DMs for tomorrow's birthdays and milestone anniversaries. Pass date to act as if the sweep ran on that day.
// @Tags sweeps
// @Produce json
// @Param date query string false "Override sweep day (YYYY-MM-DD)"
// @Success 200 {object} service.NotifySweepResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sweeps/notify [post]
func (h *AdminHandler) RunNotifySweep(c *gin.Context) {
	now, ok := sweepTime(c)
	if !ok {
		return
	}

	result, err := h.notifySvc.RunPreDaySweep(c.Request.Context(), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RunCelebrateSweep godoc
// @Summary Run the day-of celebration sweep now
// @Description Publishes celebration messages for today's approved, unannounced records.
// @Tags sweeps
// @Produce json
// @Param date query string false "Override sweep day (YYYY-MM-DD)"
// @Success 200 {object} service.CelebrateSweepResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sweeps/celebrate [post]
func (h *AdminHandler) RunCelebrateSweep(c *gin.Context) {
	now, ok := sweepTime(c)
	if !ok {
		return
	}

	result, err := h.celebrateSvc.RunDayOfSweep(c.Request.Context(), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RunHRSync godoc
// @Summary Sync the employee roster from the HR directory
// @Tags hr
// @Produce json
// @Success 200 {object} service.HRSyncResult
// @Failure 500 {object} ErrorResponse
// @Router /api/hr/sync [post]
func (h *AdminHandler) RunHRSync(c *gin.Context) {
	result, err := h.hrSyncSvc.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListRecords godoc
// @Summary List response records for a date
// @Tags records
// @Produce json
// @Param date query string true "Event date (YYYY-MM-DD)"
// @Success 200 {object} RecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/records [get]
func (h *AdminHandler) ListRecords(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must use YYYY-MM-DD"})
		return
	}

	records, err := h.records.ListByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// ListGifts godoc
// @Summary List the gift catalog
// @Tags gifts
// @Produce json
// @Success 200 {object} GiftsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/gifts [get]
func (h *AdminHandler) ListGifts(c *gin.Context) {
	gifts, err := h.gifts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": gifts})
}

// sweepTime resolves the optional date override; an empty override means now.
func sweepTime(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}

	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
