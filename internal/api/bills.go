package api

import (
	"fmt"
	"net/http"
	"strings"

	"restaupilot/internal/billing"
	"restaupilot/internal/database"
	"restaupilot/internal/models"

	"github.com/gin-gonic/gin"
)

type splitRequest struct {
	Title        string                `json:"title"`
	PayerName    string                `json:"payer_name"`
	Total        float64               `json:"total"`
	Policy       string                `json:"policy" binding:"required"`
	Participants []billing.Participant `json:"participants"`
}

type splitResponse struct {
	billing.Allocation
	Warning string `json:"warning,omitempty"`
}

func (a *DashboardAPI) allocate(c *gin.Context) (splitRequest, billing.Allocation, bool) {
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return req, billing.Allocation{}, false
	}
	policy, err := billing.ParsePolicy(req.Policy)
	if err != nil {
		respondError(c, err)
		return req, billing.Allocation{}, false
	}
	for _, p := range req.Participants {
		if strings.TrimSpace(p.Name) == "" {
			respondError(c, fmt.Errorf("%w: participant name is required", database.ErrInvalid))
			return req, billing.Allocation{}, false
		}
	}

	alloc, err := billing.Allocate(policy, req.Total, req.Participants)
	if err != nil {
		respondError(c, err)
		return req, billing.Allocation{}, false
	}
	a.Metrics.ObserveBillSplit(string(policy), alloc.Overallocated)
	a.Monitor.Inc("bill_splits")
	a.Monitor.Set("last_split_policy", string(policy))
	return req, alloc.Rounded(), true
}

func warningFor(alloc billing.Allocation) string {
	if !alloc.Overallocated {
		return ""
	}
	if alloc.Policy == billing.PolicyPercentage {
		return fmt.Sprintf("percentages exceed 100 by %.2f points; payer share set to zero", alloc.Excess)
	}
	return fmt.Sprintf("assigned amounts exceed the total by %s; payer share set to zero", billing.FormatAmount(alloc.Excess))
}

// SplitBill computes an allocation without storing it.
func (a *DashboardAPI) SplitBill(c *gin.Context) {
	_, alloc, ok := a.allocate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, splitResponse{Allocation: alloc, Warning: warningFor(alloc)})
}

// CreateBill computes an allocation and stores it as a shared bill.
func (a *DashboardAPI) CreateBill(c *gin.Context) {
	req, alloc, ok := a.allocate(c)
	if !ok {
		return
	}

	bill := models.SharedBill{
		RestaurantID:    restaurantFrom(c).ID,
		Title:           req.Title,
		Total:           alloc.Total,
		Policy:          string(alloc.Policy),
		PayerName:       req.PayerName,
		PayerShare:      alloc.PayerAmount,
		PayerPercentage: alloc.PayerPercentage,
		Overallocated:   alloc.Overallocated,
		Excess:          alloc.Excess,
		CreatedAt:       a.now(),
	}
	if bill.PayerName == "" {
		bill.PayerName = "You"
	}
	for _, s := range alloc.Shares {
		bill.Participants = append(bill.Participants, models.BillParticipant{
			Name:       s.Name,
			Percentage: s.Percentage,
			Amount:     s.Amount,
		})
	}

	if err := a.Store.CreateBill(&bill); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bill": bill, "warning": warningFor(alloc)})
}

func (a *DashboardAPI) ListBills(c *gin.Context) {
	out, err := a.Store.ListBills(restaurantFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *DashboardAPI) GetBill(c *gin.Context) {
	bill, err := a.Store.GetBill(restaurantFrom(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// BillReceipt renders a stored bill as a PDF.
func (a *DashboardAPI) BillReceipt(c *gin.Context) {
	r := restaurantFrom(c)
	bill, err := a.Store.GetBill(r.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	pdf, err := billing.RenderReceipt(*bill, r.Name, a.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="bill-%s.pdf"`, bill.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (a *DashboardAPI) MarkParticipantPaid(c *gin.Context) {
	pid, err := uintParam(c, "participantId")
	if err != nil {
		respondError(c, err)
		return
	}
	bill, err := a.Store.MarkParticipantPaid(restaurantFrom(c).ID, c.Param("id"), pid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}
