package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	metricsTemperature     = 0.7
	summaryTemperature     = 0.7
	suggestionsTemperature = 0.85
)

// healthAnalyze runs the report pipeline. AI failures never fail the
// request; each stage degrades to fallback content on its own.
func (a *App) healthAnalyze(c *gin.Context) {
	reqLog := a.requestLog(c)

	var payload analyzeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		reqLog.WithError(err).Error("health analyze payload did not bind")
		writeError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	content, ok := locales[normalizeLangCode(payload.Lang)]
	if !ok {
		writeError(c, http.StatusBadRequest, msgUnsupportedLocale)
		return
	}

	profile := buildHealthProfile(payload, time.Now())
	ctx := c.Request.Context()

	metricsReply := a.completeOrFallback(ctx, reqLog, "metrics", buildMetricsPrompt(profile), metricsTemperature)
	metrics := parseMetricGroups(metricsReply)

	summary := a.completeOrFallback(ctx, reqLog, "summary", buildSummaryPrompt(profile, metrics), summaryTemperature)
	suggestions := stripCourtesyOpener(
		a.completeOrFallback(ctx, reqLog, "suggestions", buildSuggestionsPrompt(profile), suggestionsTemperature))

	a.mailer.Send(emailSubject(content, profile.Name), renderEmailReportHTML(profile, metrics, summary, suggestions, content))

	c.JSON(http.StatusOK, gin.H{
		"metrics":      metrics,
		"html_result":  renderWebReportHTML(summary, suggestions),
		"footer":       content.Footer,
		"report_title": content.ReportTitle,
	})
}

func (a *App) completeOrFallback(ctx context.Context, log *logrus.Entry, stage, prompt string, temperature float64) string {
	reply, err := a.ai.Complete(ctx, prompt, temperature)
	if err != nil {
		log.WithError(err).WithField("stage", stage).Error("ai completion failed")
		return aiFallbackText
	}
	return reply
}

func emailSubject(content localeContent, name string) string {
	if strings.TrimSpace(name) == "" {
		name = "N/A"
	}
	return fmt.Sprintf("%s - %s", content.EmailSubject, name)
}

func splitNonEmptyLines(text string) []string {
	parts := strings.Split(text, "\n")
	result := make([]string, 0, len(parts))
	for _, item := range parts {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// A numeric zero is an unset field; a literal "0" string still
		// counts.
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	default:
		return ""
	}
}
