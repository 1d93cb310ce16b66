package api

import (
	"bytes"
	"errors"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"gesturecontrol/automation"
	"gesturecontrol/models"
	"gesturecontrol/service"

	"github.com/gin-gonic/gin"
)

// Control dispatches one action. Every dispatch outcome, including unknown actions,
// answers 200; only driver failures and the pause switch produce error statuses.
func Control(c *gin.Context, ad *service.ActionDispatcher) {
	var action models.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid request", "error": err.Error()})
		return
	}

	result, err := ad.Dispatch(c.Request.Context(), action)
	if err != nil {
		log.Printf("Action %q failed: %v", action.Type, err)
		c.JSON(controlErrorStatus(err), gin.H{"status": "failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func controlErrorStatus(err error) int {
	if errors.Is(err, service.ErrPaused) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Classify runs a data-URL image through the gesture classifier
func Classify(c *gin.Context, cs *service.ClassificationService) {
	var req models.ClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request: "+err.Error()))
		return
	}

	labels, err := cs.ClassifyDataURL(c.Request.Context(), req.Image)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, service.ErrMalformedDataURL) || errors.Is(err, service.ErrUndecodableImage) {
			status = http.StatusBadRequest
		}
		log.Printf("Classification failed: %v", err)
		c.JSON(status, models.ErrorResponse(err.Error()))
		return
	}
	if labels == nil {
		labels = []models.Label{}
	}

	c.JSON(http.StatusOK, models.ClassificationResponse{Result: labels})
}

// DetectGestures evaluates hand-landmark gestures for one hand
func DetectGestures(c *gin.Context) {
	var req models.GestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(service.DetectGestures(req.Landmarks)))
}

func GetControlStatus(c *gin.Context, ad *service.ActionDispatcher) {
	c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"paused": ad.Paused()}))
}

func PauseControl(c *gin.Context, ad *service.ActionDispatcher) {
	ad.Pause()
	c.JSON(http.StatusOK, models.MessageResponse("input control paused"))
}

func ResumeControl(c *gin.Context, ad *service.ActionDispatcher) {
	ad.Resume()
	c.JSON(http.StatusOK, models.MessageResponse("input control resumed"))
}

// GetActionHistory returns the most recent journaled actions (?limit=N)
func GetActionHistory(c *gin.Context, j *service.ActionJournal) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	records, err := j.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(records))
}

func GetSystemStats(c *gin.Context, m *service.SystemMonitor) {
	stats, err := m.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(stats))
}

// GetScreenInfo lists the host's displays and the current pointer position
func GetScreenInfo(c *gin.Context, ad *service.ActionDispatcher) {
	x, y := ad.Cursor()
	c.JSON(http.StatusOK, models.SuccessResponse(models.ScreenInfo{
		Displays: automation.Displays(),
		CursorX:  x,
		CursorY:  y,
	}))
}

// CaptureScreen returns a PNG of one display (?display=N, default 0)
func CaptureScreen(c *gin.Context) {
	display, err := strconv.Atoi(c.DefaultQuery("display", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("display must be an integer"))
		return
	}

	img, err := automation.CaptureDisplay(display)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("failed to encode screenshot"))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
