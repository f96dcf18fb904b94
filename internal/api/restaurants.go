package api

import (
	"errors"
	"net/http"

	"restaupilot/internal/analytics"
	"restaupilot/internal/auth"
	"restaupilot/internal/database"
	"restaupilot/internal/models"

	"github.com/gin-gonic/gin"
)

func (a *DashboardAPI) ListRestaurants(c *gin.Context) {
	out, err := a.Store.ListRestaurants()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) CreateRestaurant(c *gin.Context) {
	var r models.Restaurant
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	r.ID = 0
	if err := a.Store.CreateRestaurant(&r); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (a *DashboardAPI) GetRestaurant(c *gin.Context) {
	c.JSON(http.StatusOK, restaurantFrom(c))
}

// ChainAnalytics compares every restaurant over the requested window.
func (a *DashboardAPI) ChainAnalytics(c *gin.Context) {
	now := a.now()
	defFrom, defTo := lastWeek(now)
	from, to, err := window(c, defFrom, defTo)
	if err != nil {
		respondError(c, err)
		return
	}
	report, err := analytics.BuildChainReport(a.Store, from, to, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// MobileSummary returns the companion app's at-a-glance view.
func (a *DashboardAPI) MobileSummary(c *gin.Context) {
	sum, err := analytics.BuildMobileSummary(a.Store, *restaurantFrom(c), a.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Integration marketplace handlers

func (a *DashboardAPI) ListCatalog(c *gin.Context) {
	out, err := a.Store.ListExtensions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) ListIntegrations(c *gin.Context) {
	out, err := a.Store.ListIntegrations(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) InstallIntegration(c *gin.Context) {
	var req struct {
		Slug   string           `json:"slug" binding:"required"`
		Config models.StringMap `json:"config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in, err := a.Store.InstallIntegration(restaurantFrom(c).ID, req.Slug, req.Config)
	if err != nil {
		respondError(c, err)
		return
	}
	a.Monitor.Inc("integrations_installed")
	c.JSON(http.StatusCreated, in)
}

func (a *DashboardAPI) UninstallIntegration(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := a.Store.UninstallIntegration(restaurantFrom(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Login exchanges an email and password for a bearer token.
func (a *DashboardAPI) Login(c *gin.Context) {
	if a.issuer == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "authentication is disabled"})
		return
	}
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := a.Store.GetUserByEmail(req.Email)
	if errors.Is(err, database.ErrNotFound) {
		respondError(c, auth.ErrBadCredentials)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		respondError(c, err)
		return
	}

	token, exp, err := a.issuer.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": exp, "user": user})
}
