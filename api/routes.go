package api

import (
	"strings"

	"gesturecontrol/service"

	"github.com/gin-gonic/gin"
)

// Services bundles the process-wide dependencies the routes are wired to.
// Optional services left nil keep their routes unregistered.
type Services struct {
	Dispatcher *service.ActionDispatcher
	Classifier *service.ClassificationService
	Journal    *service.ActionJournal
	Monitor    *service.SystemMonitor
	Hub        *WebSocketHub
}

func SetupRoutes(router *gin.Engine, s Services) {
	// Enable CORS
	router.Use(CORSMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/control", func(c *gin.Context) {
		Control(c, s.Dispatcher)
	})

	if s.Classifier != nil {
		router.POST("/classify", func(c *gin.Context) {
			Classify(c, s.Classifier)
		})
	}

	router.POST("/gestures/detect", DetectGestures)

	// WebSocket route
	if s.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			HandleWebSocket(s.Hub, s.Dispatcher, c)
		})
	}

	// API routes
	api := router.Group("/api")
	{
		control := api.Group("/control")
		{
			control.GET("/status", func(c *gin.Context) {
				GetControlStatus(c, s.Dispatcher)
			})
			control.POST("/pause", func(c *gin.Context) {
				PauseControl(c, s.Dispatcher)
			})
			control.POST("/resume", func(c *gin.Context) {
				ResumeControl(c, s.Dispatcher)
			})
		}

		if s.Journal != nil {
			api.GET("/actions/history", func(c *gin.Context) {
				GetActionHistory(c, s.Journal)
			})
		}

		if s.Monitor != nil {
			api.GET("/system", func(c *gin.Context) {
				GetSystemStats(c, s.Monitor)
			})
		}

		screen := api.Group("/screen")
		{
			screen.GET("", func(c *gin.Context) {
				GetScreenInfo(c, s.Dispatcher)
			})
			screen.GET("/capture", CaptureScreen)
		}
	}
}

const corsDefaultMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// CORSMiddleware allows any origin, method and header. Development posture only.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()

		// credentialed requests cannot use the "*" wildcard, so the origin is echoed
		if origin := c.GetHeader("Origin"); origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if reqHeaders := strings.TrimSpace(c.GetHeader("Access-Control-Request-Headers")); reqHeaders != "" {
			h.Set("Access-Control-Allow-Headers", reqHeaders)
		} else {
			h.Set("Access-Control-Allow-Headers", "*")
		}

		if reqMethod := strings.TrimSpace(c.GetHeader("Access-Control-Request-Method")); reqMethod != "" {
			h.Set("Access-Control-Allow-Methods", reqMethod)
		} else {
			h.Set("Access-Control-Allow-Methods", corsDefaultMethods)
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
