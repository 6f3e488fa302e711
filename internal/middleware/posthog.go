package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// apiPrefix is stripped from route templates before naming events.
const apiPrefix = "/api/v1/"

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// methodVerbs maps HTTP methods to the past-tense verb used in event names.
var methodVerbs = map[string]string{
	http.MethodGet:    "viewed",
	http.MethodPost:   "created",
	http.MethodPatch:  "updated",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// PosthogMiddleware creates a Gin middleware handler that tracks ledger events with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized or path is in skip list
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Failed requests are not product events
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		user, ok := GetUserFromContext(c)
		if !ok {
			return
		}

		// Unmatched routes have no template (e.g. 404s)
		eventName := eventNameFor(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":        c.Request.Method,
			"route":         c.FullPath(),
			"status_code":   c.Writer.Status(),
			"base_currency": user.BaseCurrency,
		}
		if strings.HasPrefix(c.FullPath(), apiPrefix+"fx/") {
			if base := c.Query("base"); base != "" {
				props["fx_base"] = strings.ToUpper(base)
			}
			if quote := c.Query("quote"); quote != "" {
				props["fx_quote"] = strings.ToUpper(quote)
			}
		}

		posthogClient.Enqueue(user.UserID, eventName, props)
	}
}

// eventNameFor turns a route template into a resource_verb event name.
// "/api/v1/transactions/:transactionID" with PATCH becomes "transactions_updated";
// path parameters are dropped so every id maps to one event.
func eventNameFor(method, fullPath string) string {
	verb, ok := methodVerbs[method]
	if !ok || fullPath == "" {
		return ""
	}

	var parts []string
	for _, seg := range strings.Split(strings.TrimPrefix(fullPath, apiPrefix), "/") {
		if seg == "" || strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			continue
		}
		parts = append(parts, seg)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "_") + "_" + verb
}
