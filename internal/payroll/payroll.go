// Package payroll turns scheduled shifts into gross pay.
package payroll

import (
	"sort"
	"time"

	"restaupilot/internal/models"
)

const (
	// WeeklyOvertimeThreshold is the number of hours per ISO week paid at the
	// regular rate.
	WeeklyOvertimeThreshold = 40.0
	// OvertimeMultiplier applies to hours past the weekly threshold.
	OvertimeMultiplier = 1.5
)

// Line is one staff member's pay for a period.
type Line struct {
	StaffID       uint    `json:"staff_id"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	HourlyRate    float64 `json:"hourly_rate"`
	Shifts        int     `json:"shifts"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	RegularPay    float64 `json:"regular_pay"`
	OvertimePay   float64 `json:"overtime_pay"`
	GrossPay      float64 `json:"gross_pay"`
}

// Report is payroll for all staff over [From, To).
type Report struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	Lines         []Line    `json:"lines"`
	TotalHours    float64   `json:"total_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
	TotalGross    float64   `json:"total_gross"`
}

type weekKey struct {
	staff uint
	year  int
	week  int
}

// Calculate computes pay for shifts that start in [from, to). Shifts for
// staff not in the roster are ignored. Overtime is counted per staff member
// per ISO week in shift start order.
func Calculate(staff []models.StaffMember, shifts []models.Shift, from, to time.Time) Report {
	byID := make(map[uint]*Line, len(staff))
	order := make([]uint, 0, len(staff))
	for _, s := range staff {
		byID[s.ID] = &Line{StaffID: s.ID, Name: s.Name, Role: s.Role, HourlyRate: s.HourlyRate}
		order = append(order, s.ID)
	}

	sorted := make([]models.Shift, 0, len(shifts))
	for _, sh := range shifts {
		if sh.StartsAt.Before(from) || !sh.StartsAt.Before(to) {
			continue
		}
		sorted = append(sorted, sh)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartsAt.Before(sorted[j].StartsAt) })

	weekHours := make(map[weekKey]float64)
	for _, sh := range sorted {
		line, ok := byID[sh.StaffID]
		if !ok {
			continue
		}
		hours := sh.Hours()
		year, week := sh.StartsAt.ISOWeek()
		key := weekKey{staff: sh.StaffID, year: year, week: week}

		before := weekHours[key]
		weekHours[key] = before + hours

		regular := hours
		if before+hours > WeeklyOvertimeThreshold {
			regular = max(0, WeeklyOvertimeThreshold-before)
		}
		line.Shifts++
		line.RegularHours += regular
		line.OvertimeHours += hours - regular
	}

	report := Report{From: from, To: to, Lines: make([]Line, 0, len(order))}
	for _, id := range order {
		line := byID[id]
		line.RegularPay = line.RegularHours * line.HourlyRate
		line.OvertimePay = line.OvertimeHours * line.HourlyRate * OvertimeMultiplier
		line.GrossPay = line.RegularPay + line.OvertimePay

		report.TotalHours += line.RegularHours + line.OvertimeHours
		report.OvertimeHours += line.OvertimeHours
		report.TotalGross += line.GrossPay
		report.Lines = append(report.Lines, *line)
	}
	return report
}
