package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"restaupilot/internal/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommandEqual(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"split", "--total", "90", "-P", "Ana", "-P", "Ben"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Ana")
	assert.Contains(t, out.String(), "30.00")
	assert.NotContains(t, out.String(), "warning")
}

func TestSplitCommandPercentageJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"split", "--total", "100", "--policy", "percentage", "-P", "Ana=40", "-P", "Ben=35", "--json"})

	require.NoError(t, cmd.Execute())
	var alloc billing.Allocation
	require.NoError(t, json.Unmarshal(out.Bytes(), &alloc))
	assert.InDelta(t, 25, alloc.PayerPercentage, 1e-9)
	assert.InDelta(t, 25, alloc.PayerAmount, 1e-9)
}

func TestSplitCommandWarnsOnOverallocation(t *testing.T) {
	var out bytes.Buffer
	err := runSplit(&out, &SplitOptions{
		Total:        50,
		Policy:       "custom",
		Participants: []string{"Ana=40", "Ben=20"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "warning: shares exceed the bill by 10.00")
}

func TestParseParticipants(t *testing.T) {
	_, err := parseParticipants(billing.PolicyCustom, []string{"Ana"})
	assert.Error(t, err)

	_, err = parseParticipants(billing.PolicyEqual, []string{"=3"})
	assert.Error(t, err)

	_, err = parseParticipants(billing.PolicyPercentage, []string{"Ana=forty"})
	assert.Error(t, err)

	got, err := parseParticipants(billing.PolicyEqual, []string{" Ana ", "Ben=ignored"})
	require.NoError(t, err)
	assert.Equal(t, []billing.Participant{{Name: "Ana"}, {Name: "Ben"}}, got)
}
