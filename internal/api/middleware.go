package api

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"restaupilot/internal/auth"
	"restaupilot/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	ctxRestaurant = "restaurant"
	ctxClaims     = "claims"
)

// AuthMiddleware handles JWT authentication. Browsers cannot set headers on
// websocket upgrades, so a token query parameter is accepted too.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			respondError(c, fmt.Errorf("authorization header required: %w", auth.ErrInvalidToken))
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// loadRestaurant resolves :restaurantId and stores the restaurant on the context.
func (a *DashboardAPI) loadRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("restaurantId"), 10, 64)
		if err != nil {
			respondError(c, fmt.Errorf("%w: restaurant id must be a number", database.ErrInvalid))
			return
		}
		r, err := a.Store.GetRestaurant(uint(id))
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(ctxRestaurant, r)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

func (a *DashboardAPI) observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.Metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
		a.Monitor.Inc("http_requests")
		if c.Writer.Status() >= 500 {
			a.Monitor.Inc("http_errors")
		}
	}
}
