// Package billing splits a bill total between a payer and participants.
package billing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Policy selects how a total is divided.
type Policy string

const (
	PolicyEqual      Policy = "equal"
	PolicyCustom     Policy = "custom"
	PolicyPercentage Policy = "percentage"
)

var (
	ErrUnknownPolicy = errors.New("unknown split policy")
	ErrInvalidTotal  = errors.New("total must be a finite non-negative amount")
	ErrInvalidShare  = errors.New("participant share must be a finite non-negative number")
)

// ParsePolicy maps a request string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyEqual, PolicyCustom, PolicyPercentage:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Participant is a person sharing the bill with the payer. Amount is read
// under the custom policy and Percentage under the percentage policy.
type Participant struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount,omitempty"`
	Percentage float64 `json:"percentage,omitempty"`
}

// Share is what one participant owes.
type Share struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Allocation is the result of splitting a total.
//
// Overallocated is set when participants were assigned more than the total
// (custom) or more than 100 percent (percentage). The payer share is then
// floored at zero and Excess holds the overshoot in the policy's unit:
// currency for custom, percentage points for percentage.
type Allocation struct {
	Policy          Policy  `json:"policy"`
	Total           float64 `json:"total"`
	Shares          []Share `json:"shares"`
	PayerAmount     float64 `json:"payer_amount"`
	PayerPercentage float64 `json:"payer_percentage"`
	Overallocated   bool    `json:"overallocated"`
	Excess          float64 `json:"excess"`
}

// Allocate splits total between the payer and participants under policy.
func Allocate(policy Policy, total float64, participants []Participant) (Allocation, error) {
	if !finiteNonNegative(total) {
		return Allocation{}, ErrInvalidTotal
	}
	for _, p := range participants {
		if !finiteNonNegative(p.Amount) || !finiteNonNegative(p.Percentage) {
			return Allocation{}, fmt.Errorf("%w: %s", ErrInvalidShare, p.Name)
		}
	}

	switch policy {
	case PolicyEqual:
		return splitEqual(total, participants), nil
	case PolicyCustom:
		return splitCustom(total, participants), nil
	case PolicyPercentage:
		return splitPercentage(total, participants), nil
	default:
		return Allocation{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

// splitEqual gives the payer and each participant total/(n+1).
func splitEqual(total float64, participants []Participant) Allocation {
	heads := float64(len(participants) + 1)
	each := total / heads
	pct := 100 / heads

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{Name: p.Name, Amount: each, Percentage: pct}
	}

	return Allocation{
		Policy:          PolicyEqual,
		Total:           total,
		Shares:          shares,
		PayerAmount:     each,
		PayerPercentage: pct,
	}
}

func splitCustom(total float64, participants []Participant) Allocation {
	shares := make([]Share, len(participants))
	var assigned float64
	for i, p := range participants {
		shares[i] = Share{Name: p.Name, Amount: p.Amount, Percentage: percentOf(p.Amount, total)}
		assigned += p.Amount
	}

	a := Allocation{
		Policy: PolicyCustom,
		Total:  total,
		Shares: shares,
	}
	a.PayerAmount = math.Max(0, total-assigned)
	a.PayerPercentage = percentOf(a.PayerAmount, total)
	if assigned > total {
		a.Overallocated = true
		a.Excess = assigned - total
	}
	return a
}

func splitPercentage(total float64, participants []Participant) Allocation {
	shares := make([]Share, len(participants))
	var assigned float64
	for i, p := range participants {
		shares[i] = Share{Name: p.Name, Amount: p.Percentage / 100 * total, Percentage: p.Percentage}
		assigned += p.Percentage
	}

	a := Allocation{
		Policy: PolicyPercentage,
		Total:  total,
		Shares: shares,
	}
	a.PayerPercentage = math.Max(0, 100-assigned)
	a.PayerAmount = a.PayerPercentage / 100 * total
	if assigned > 100 {
		a.Overallocated = true
		a.Excess = assigned - 100
	}
	return a
}

// Sum returns the payer amount plus every participant amount.
func (a Allocation) Sum() float64 {
	sum := a.PayerAmount
	for _, s := range a.Shares {
		sum += s.Amount
	}
	return sum
}

// Rounded returns a copy with every amount rounded to cents and every
// percentage to two decimals. The sum may then differ from Total by a few
// cents; use the unrounded allocation for arithmetic.
func (a Allocation) Rounded() Allocation {
	out := a
	out.Total = Round(a.Total)
	out.PayerAmount = Round(a.PayerAmount)
	out.PayerPercentage = Round(a.PayerPercentage)
	out.Excess = Round(a.Excess)
	out.Shares = make([]Share, len(a.Shares))
	for i, s := range a.Shares {
		out.Shares[i] = Share{Name: s.Name, Amount: Round(s.Amount), Percentage: Round(s.Percentage)}
	}
	return out
}

// Round returns v rounded to the nearest cent.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

func percentOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
