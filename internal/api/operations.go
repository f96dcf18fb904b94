package api

import (
	"net/http"
	"time"

	"restaupilot/internal/database"
	"restaupilot/internal/models"
	"restaupilot/internal/payroll"

	"github.com/gin-gonic/gin"
)

// Maintenance handlers

func (a *DashboardAPI) ListEquipment(c *gin.Context) {
	out, err := a.Store.ListEquipment(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) ListMaintenanceTasks(c *gin.Context) {
	tasks, err := a.Store.ListMaintenanceTasks(restaurantFrom(c).ID, a.now())
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("overdue") == "true" {
		open := tasks[:0]
		for _, t := range tasks {
			if t.Overdue {
				open = append(open, t)
			}
		}
		tasks = open
	}
	c.JSON(http.StatusOK, tasks)
}

func (a *DashboardAPI) CreateMaintenanceTask(c *gin.Context) {
	var task models.MaintenanceTask
	if err := c.ShouldBindJSON(&task); err != nil {
		badRequest(c, err)
		return
	}
	task.RestaurantID = restaurantFrom(c).ID

	if err := a.Store.CreateMaintenanceTask(&task); err != nil {
		respondError(c, err)
		return
	}
	task.Overdue = task.IsOverdue(a.now())
	c.JSON(http.StatusCreated, task)
}

func (a *DashboardAPI) CompleteMaintenanceTask(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Cost float64 `json:"cost"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	task, err := a.Store.CompleteMaintenanceTask(restaurantFrom(c).ID, id, req.Cost, a.now())
	if err != nil {
		respondError(c, err)
		return
	}
	a.Monitor.Inc("maintenance_completed")
	c.JSON(http.StatusOK, task)
}

// Staff and scheduling handlers

func (a *DashboardAPI) ListStaff(c *gin.Context) {
	out, err := a.Store.ListStaff(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) CreateStaff(c *gin.Context) {
	var m models.StaffMember
	if err := c.ShouldBindJSON(&m); err != nil {
		badRequest(c, err)
		return
	}
	m.RestaurantID = restaurantFrom(c).ID
	m.Active = true

	if err := a.Store.CreateStaff(&m); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (a *DashboardAPI) ListShifts(c *gin.Context) {
	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from, to, err := window(c, today, today.AddDate(0, 0, 7))
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := a.Store.ListShifts(restaurantFrom(c).ID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) CreateShift(c *gin.Context) {
	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		badRequest(c, err)
		return
	}
	shift.RestaurantID = restaurantFrom(c).ID

	if err := a.Store.CreateShift(&shift); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

func (a *DashboardAPI) DeleteShift(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := a.Store.DeleteShift(restaurantFrom(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Payroll computes pay for shifts in the requested window (default: last
// seven days).
func (a *DashboardAPI) Payroll(c *gin.Context) {
	defFrom, defTo := lastWeek(a.now())
	from, to, err := window(c, defFrom, defTo)
	if err != nil {
		respondError(c, err)
		return
	}
	rid := restaurantFrom(c).ID

	staff, err := a.Store.ListStaff(rid)
	if err != nil {
		respondError(c, err)
		return
	}
	shifts, err := a.Store.ListShifts(rid, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payroll.Calculate(staff, shifts, from, to))
}

// Compliance handlers

func (a *DashboardAPI) ListCompliance(c *gin.Context) {
	out, err := a.Store.ListCompliance(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) ComplianceSummary(c *gin.Context) {
	reqs, err := a.Store.ListCompliance(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, database.SummarizeCompliance(reqs, a.now()))
}

func (a *DashboardAPI) UpdateCompliance(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := a.Store.UpdateComplianceStatus(restaurantFrom(c).ID, id, req.Status, req.Notes, a.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Waste and sustainability handlers

func (a *DashboardAPI) ListWaste(c *gin.Context) {
	defFrom, defTo := lastWeek(a.now())
	from, to, err := window(c, defFrom, defTo)
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := a.Store.ListWaste(restaurantFrom(c).ID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) LogWaste(c *gin.Context) {
	var w models.WasteLog
	if err := c.ShouldBindJSON(&w); err != nil {
		badRequest(c, err)
		return
	}
	w.RestaurantID = restaurantFrom(c).ID
	if w.LoggedAt.IsZero() {
		w.LoggedAt = a.now()
	}

	if err := a.Store.LogWaste(&w); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (a *DashboardAPI) Sustainability(c *gin.Context) {
	defFrom, defTo := lastWeek(a.now())
	from, to, err := window(c, defFrom, defTo)
	if err != nil {
		respondError(c, err)
		return
	}
	logs, err := a.Store.ListWaste(restaurantFrom(c).ID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":    from,
		"to":      to,
		"summary": database.SummarizeWaste(logs),
	})
}

// Training handlers

func (a *DashboardAPI) ListTrainingModules(c *gin.Context) {
	out, err := a.Store.ListTrainingModules(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) ListTrainingCompletions(c *gin.Context) {
	out, err := a.Store.ListCompletions(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) RecordTrainingCompletion(c *gin.Context) {
	var tc models.TrainingCompletion
	if err := c.ShouldBindJSON(&tc); err != nil {
		badRequest(c, err)
		return
	}
	tc.RestaurantID = restaurantFrom(c).ID
	if tc.CompletedAt.IsZero() {
		tc.CompletedAt = a.now()
	}

	if err := a.Store.RecordCompletion(&tc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tc)
}

func (a *DashboardAPI) TrainingProgress(c *gin.Context) {
	rid := restaurantFrom(c).ID
	staff, err := a.Store.ListStaff(rid)
	if err != nil {
		respondError(c, err)
		return
	}
	modules, err := a.Store.ListTrainingModules(rid)
	if err != nil {
		respondError(c, err)
		return
	}
	completions, err := a.Store.ListCompletions(rid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, database.SummarizeTraining(staff, modules, completions))
}
