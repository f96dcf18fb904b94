package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func friends(names ...string) []Participant {
	ps := make([]Participant, len(names))
	for i, n := range names {
		ps[i] = Participant{Name: n}
	}
	return ps
}

func TestAllocateEqual(t *testing.T) {
	a, err := Allocate(PolicyEqual, 90, friends("ana", "ben"))
	require.NoError(t, err)

	require.Len(t, a.Shares, 2)
	for _, s := range a.Shares {
		assert.InDelta(t, 30.0, s.Amount, tolerance)
	}
	assert.InDelta(t, 30.0, a.PayerAmount, tolerance)
	assert.Equal(t, "30.00", FormatAmount(a.PayerAmount))
	assert.False(t, a.Overallocated)
}

func TestAllocateEqualSumsToTotal(t *testing.T) {
	totals := []float64{0, 1, 10, 99.99, 100, 123.45, 1000.01}
	for _, total := range totals {
		for n := 0; n <= 7; n++ {
			names := make([]string, n)
			for i := range names {
				names[i] = string(rune('a' + i))
			}
			a, err := Allocate(PolicyEqual, total, friends(names...))
			require.NoError(t, err)
			assert.InDelta(t, total, a.Sum(), 1e-6, "total=%v n=%d", total, n)
		}
	}
}

func TestAllocateEqualNoParticipants(t *testing.T) {
	a, err := Allocate(PolicyEqual, 42, nil)
	require.NoError(t, err)
	assert.Empty(t, a.Shares)
	assert.InDelta(t, 42.0, a.PayerAmount, tolerance)
	assert.InDelta(t, 100.0, a.PayerPercentage, tolerance)
}

func TestAllocatePercentage(t *testing.T) {
	a, err := Allocate(PolicyPercentage, 100, []Participant{
		{Name: "ana", Percentage: 40},
		{Name: "ben", Percentage: 35},
	})
	require.NoError(t, err)

	assert.InDelta(t, 25.0, a.PayerPercentage, tolerance)
	assert.InDelta(t, 25.0, a.PayerAmount, tolerance)
	assert.InDelta(t, 40.0, a.Shares[0].Amount, tolerance)
	assert.InDelta(t, 35.0, a.Shares[1].Amount, tolerance)
	assert.InDelta(t, 100.0, a.Sum(), tolerance)
	assert.False(t, a.Overallocated)
}

func TestAllocatePercentageOverallocated(t *testing.T) {
	a, err := Allocate(PolicyPercentage, 80, []Participant{
		{Name: "ana", Percentage: 70},
		{Name: "ben", Percentage: 50},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, a.PayerPercentage)
	assert.Equal(t, 0.0, a.PayerAmount)
	assert.True(t, a.Overallocated)
	assert.InDelta(t, 20.0, a.Excess, tolerance)
}

func TestAllocateCustom(t *testing.T) {
	a, err := Allocate(PolicyCustom, 120, []Participant{
		{Name: "ana", Amount: 50},
		{Name: "ben", Amount: 20},
	})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, a.PayerAmount, tolerance)
	assert.InDelta(t, 41.666666, a.Shares[0].Percentage, 1e-5)
	assert.False(t, a.Overallocated)
	assert.Zero(t, a.Excess)
}

func TestAllocateCustomFloorsPayerAtZero(t *testing.T) {
	a, err := Allocate(PolicyCustom, 50, []Participant{
		{Name: "ana", Amount: 40},
		{Name: "ben", Amount: 25},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, a.PayerAmount)
	assert.True(t, a.Overallocated)
	assert.InDelta(t, 15.0, a.Excess, tolerance)
}

func TestAllocateCustomZeroTotal(t *testing.T) {
	a, err := Allocate(PolicyCustom, 0, friends("ana"))
	require.NoError(t, err)
	assert.Zero(t, a.PayerAmount)
	assert.Zero(t, a.PayerPercentage)
}

func TestAllocateRejectsBadInput(t *testing.T) {
	_, err := Allocate(PolicyEqual, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidTotal)

	_, err = Allocate(PolicyEqual, math.NaN(), nil)
	assert.ErrorIs(t, err, ErrInvalidTotal)

	_, err = Allocate(PolicyCustom, 10, []Participant{{Name: "ana", Amount: -3}})
	assert.ErrorIs(t, err, ErrInvalidShare)

	_, err = Allocate(Policy("tip"), 10, nil)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy(" Percentage ")
	require.NoError(t, err)
	assert.Equal(t, PolicyPercentage, p)

	_, err = ParsePolicy("random")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 33.33, Round(100.0/3))
	assert.Equal(t, "33.33", FormatAmount(100.0/3))
}

func TestRoundedAllocation(t *testing.T) {
	a, err := Allocate(PolicyEqual, 100, []Participant{{Name: "Ana"}, {Name: "Ben"}})
	require.NoError(t, err)

	r := a.Rounded()
	assert.Equal(t, 33.33, r.PayerAmount)
	assert.Equal(t, 33.33, r.PayerPercentage)
	require.Len(t, r.Shares, 2)
	assert.Equal(t, 33.33, r.Shares[0].Amount)
	assert.Equal(t, "Ben", r.Shares[1].Name)

	// the original keeps full precision
	assert.InDelta(t, 100, a.Sum(), 1e-9)
	assert.NotEqual(t, r.Shares[0].Amount, a.Shares[0].Amount)
}
