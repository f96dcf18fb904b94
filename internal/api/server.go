// Package api serves the RestauPilot dashboard over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"restaupilot/internal/assistant"
	"restaupilot/internal/auth"
	"restaupilot/internal/database"
	"restaupilot/internal/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures a DashboardAPI.
type Options struct {
	// Issuer enables bearer-token auth on /api/v1 when set.
	Issuer      *auth.Issuer
	CORSOrigins []string
	Metrics     *monitoring.Metrics
	Monitor     *monitoring.Monitor
	Now         func() time.Time
}

// DashboardAPI represents the main API handler for the dashboard
type DashboardAPI struct {
	Router    *gin.Engine
	Store     *database.Store
	Assistant *assistant.Assistant
	Monitor   *monitoring.Monitor
	Metrics   *monitoring.Metrics

	issuer *auth.Issuer
	now    func() time.Time
}

// NewDashboardAPI creates a new dashboard API instance
func NewDashboardAPI(store *database.Store, asst *assistant.Assistant, opts Options) *DashboardAPI {
	router := gin.New()
	router.Use(gin.Recovery())

	api := &DashboardAPI{
		Router:    router,
		Store:     store,
		Assistant: asst,
		Monitor:   opts.Monitor,
		Metrics:   opts.Metrics,
		issuer:    opts.Issuer,
		now:       opts.Now,
	}
	if api.Monitor == nil {
		api.Monitor = monitoring.NewMonitor()
	}
	if api.Metrics == nil {
		api.Metrics = monitoring.NewMetrics()
	}
	if api.now == nil {
		api.now = time.Now
	}

	router.Use(requestLogger(), api.observeRequests())
	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}

	api.setupRoutes()
	return api
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

// setupRoutes configures all API endpoints
func (a *DashboardAPI) setupRoutes() {
	// Health check
	a.Router.GET("/health", a.Health)

	a.Router.POST("/auth/login", a.Login)

	v1 := a.Router.Group("/api/v1")
	if a.issuer != nil {
		v1.Use(AuthMiddleware(a.issuer))
	}
	{
		v1.GET("/system/metrics", a.SystemMetrics)
		v1.DELETE("/system/metrics", a.ResetSystemMetrics)
		v1.GET("/analytics/chain", a.ChainAnalytics)
		v1.GET("/integrations/catalog", a.ListCatalog)

		v1.GET("/restaurants", a.ListRestaurants)
		v1.POST("/restaurants", a.CreateRestaurant)
	}

	r := v1.Group("/restaurants/:restaurantId", a.loadRestaurant())
	{
		r.GET("", a.GetRestaurant)

		// Inventory
		r.GET("/inventory", a.ListInventory)
		r.POST("/inventory", a.CreateInventoryItem)
		r.GET("/inventory/low-stock", a.LowStock)
		r.PUT("/inventory/:id", a.UpdateInventoryItem)
		r.POST("/inventory/:id/order", a.OrderInventoryItem)

		// Maintenance
		r.GET("/equipment", a.ListEquipment)
		r.GET("/maintenance/tasks", a.ListMaintenanceTasks)
		r.POST("/maintenance/tasks", a.CreateMaintenanceTask)
		r.POST("/maintenance/tasks/:id/complete", a.CompleteMaintenanceTask)

		// Staff, scheduling and payroll
		r.GET("/staff", a.ListStaff)
		r.POST("/staff", a.CreateStaff)
		r.GET("/shifts", a.ListShifts)
		r.POST("/shifts", a.CreateShift)
		r.DELETE("/shifts/:id", a.DeleteShift)
		r.GET("/payroll", a.Payroll)

		// Compliance
		r.GET("/compliance", a.ListCompliance)
		r.GET("/compliance/summary", a.ComplianceSummary)
		r.PUT("/compliance/:id", a.UpdateCompliance)

		// Waste and sustainability
		r.GET("/waste", a.ListWaste)
		r.POST("/waste", a.LogWaste)
		r.GET("/sustainability", a.Sustainability)

		// Training
		r.GET("/training/modules", a.ListTrainingModules)
		r.GET("/training/completions", a.ListTrainingCompletions)
		r.POST("/training/completions", a.RecordTrainingCompletion)
		r.GET("/training/progress", a.TrainingProgress)

		// Integrations
		r.GET("/integrations", a.ListIntegrations)
		r.POST("/integrations", a.InstallIntegration)
		r.DELETE("/integrations/:id", a.UninstallIntegration)

		// Bills
		r.POST("/bills/split", a.SplitBill)
		r.POST("/bills", a.CreateBill)
		r.GET("/bills", a.ListBills)
		r.GET("/bills/:id", a.GetBill)
		r.GET("/bills/:id/receipt.pdf", a.BillReceipt)
		r.POST("/bills/:id/participants/:participantId/paid", a.MarkParticipantPaid)

		// Assistant
		r.POST("/assistant/messages", a.AssistantMessage)
		r.GET("/assistant/ws", a.AssistantStream)

		// Mobile companion
		r.GET("/mobile/summary", a.MobileSummary)
	}
}

// Health reports whether the service and its database are reachable.
func (a *DashboardAPI) Health(c *gin.Context) {
	if err := a.Store.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "RestauPilot API is running"})
}

// SystemMetrics returns the in-process monitor snapshot.
func (a *DashboardAPI) SystemMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, a.Monitor.Snapshot())
}

// ResetSystemMetrics clears the monitor's counters. Prometheus series are
// cumulative and are left alone.
func (a *DashboardAPI) ResetSystemMetrics(c *gin.Context) {
	a.Monitor.Reset()
	slog.Info("system metrics reset", "client_ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
