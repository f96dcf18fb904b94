package api

import (
	"net/http"

	"restaupilot/internal/database"
	"restaupilot/internal/models"

	"github.com/gin-gonic/gin"
)

// Inventory management handlers

func (a *DashboardAPI) ListInventory(c *gin.Context) {
	items, err := a.Store.ListInventory(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *DashboardAPI) CreateInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	item.RestaurantID = restaurantFrom(c).ID

	if err := a.Store.CreateInventoryItem(&item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *DashboardAPI) UpdateInventoryItem(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var patch database.InventoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	item, err := a.Store.UpdateInventoryItem(restaurantFrom(c).ID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// LowStock lists items at or below their reorder point.
func (a *DashboardAPI) LowStock(c *gin.Context) {
	r := restaurantFrom(c)
	items, err := a.Store.LowStock(r.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	a.Metrics.SetLowStock(r.Name, len(items))
	c.JSON(http.StatusOK, items)
}

// OrderInventoryItem marks an item as reordered from its supplier.
func (a *DashboardAPI) OrderInventoryItem(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	item, err := a.Store.MarkOrdered(restaurantFrom(c).ID, id, a.now())
	if err != nil {
		respondError(c, err)
		return
	}
	a.Monitor.Inc("inventory_orders")
	c.JSON(http.StatusOK, item)
}
