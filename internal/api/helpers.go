package api

import (
	"fmt"
	"strconv"
	"time"

	"restaupilot/internal/database"
	"restaupilot/internal/models"

	"github.com/gin-gonic/gin"
)

func restaurantFrom(c *gin.Context) *models.Restaurant {
	return c.MustGet(ctxRestaurant).(*models.Restaurant)
}

func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", database.ErrInvalid, name)
	}
	return uint(v), nil
}

// parseTime accepts RFC 3339 timestamps or plain dates.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// window reads ?from= and ?to=, falling back to the given defaults.
func window(c *gin.Context, defFrom, defTo time.Time) (time.Time, time.Time, error) {
	from, to := defFrom, defTo
	if s := c.Query("from"); s != "" {
		t, err := parseTime(s)
		if err != nil {
			return from, to, fmt.Errorf("%w: bad from %q", database.ErrInvalid, s)
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := parseTime(s)
		if err != nil {
			return from, to, fmt.Errorf("%w: bad to %q", database.ErrInvalid, s)
		}
		to = t
	}
	if !to.After(from) {
		return from, to, fmt.Errorf("%w: to must be after from", database.ErrInvalid)
	}
	return from, to, nil
}

// lastWeek is the default reporting window: the seven days up to the end of today.
func lastWeek(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return end.AddDate(0, 0, -7), end
}
