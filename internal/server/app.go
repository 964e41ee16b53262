package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"katachat/health-insight-api/internal/config"
)

type App struct {
	cfg    config.Config
	log    *logrus.Logger
	ai     AIClient
	mailer *ReportMailer
}

func New(cfg config.Config, log *logrus.Logger, ai AIClient, mailer *ReportMailer) *App {
	return &App{cfg: cfg, log: log, ai: ai, mailer: mailer}
}

func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(a.handlePanic))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(requestIDMiddleware())

	router.GET("/health", a.health)
	router.POST("/health_analyze", a.healthAnalyze)

	return router
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": a.cfg.AppName,
	})
}

func (a *App) handlePanic(c *gin.Context, recovered any) {
	a.requestLog(c).WithField("panic", recovered).Error("recovered from handler panic")
	writeError(c, http.StatusInternalServerError, msgInternalError)
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func (a *App) requestLog(c *gin.Context) *logrus.Entry {
	return a.log.WithField("request_id", c.GetString("request_id"))
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func parseJSONStringMap(input []byte) map[string]any {
	if len(input) == 0 {
		return map[string]any{}
	}
	var result map[string]any
	if err := json.Unmarshal(input, &result); err != nil || result == nil {
		return map[string]any{}
	}
	return result
}
