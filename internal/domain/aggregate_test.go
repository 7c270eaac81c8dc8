package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/stageview/internal/domain"
)

func statuses(states ...domain.State) []domain.Status {
	out := make([]domain.Status, len(states))
	for i, s := range states {
		out[i] = domain.Status{Name: string(s), State: s}
	}
	return out
}

func TestAggregateState_Precedence(t *testing.T) {
	cases := []struct {
		name   string
		states []domain.State
		want   domain.State
	}{
		{"error wins", []domain.State{domain.StateSuccess, domain.StateFailure, domain.StateError}, domain.StateError},
		{"failure over pending", []domain.State{domain.StatePending, domain.StateFailure}, domain.StateFailure},
		{"pending over success", []domain.State{domain.StateSuccess, domain.StatePending}, domain.StatePending},
		{"all success", []domain.State{domain.StateSuccess, domain.StateSuccess}, domain.StateSuccess},
		{"success mixed with unknown", []domain.State{domain.StateSuccess, domain.StateUnknown}, domain.StateUnknown},
		{"empty", nil, domain.StateUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.AggregateState(statuses(tc.states...)))
		})
	}
}

func TestTrimContext(t *testing.T) {
	assert.Equal(t, "units", domain.TrimContext("test-units", "test"))
	assert.Equal(t, "units", domain.TrimContext("ci/test-units", "ci", "test"))
	assert.Equal(t, "testing", domain.TrimContext("testing", "test"))
	assert.Equal(t, "test", domain.TrimContext("_test_", "deploy"))
}

func TestGroupJobs_KeepsFirstAppearanceOrder(t *testing.T) {
	jobs := []domain.Job{
		{Name: "test-units", Stage: "test", State: domain.StateSuccess},
		{Name: "deploy-staging", Stage: "deploy", State: domain.StatePending},
		{Name: "test-lint", Stage: "test", State: domain.StateFailure},
	}

	stages := domain.GroupJobs(jobs, nil)

	require.Len(t, stages, 2)
	assert.Equal(t, "test", stages[0].Name)
	assert.Equal(t, domain.StateFailure, stages[0].State)
	assert.Equal(t, []domain.Status{
		{Name: "units", State: domain.StateSuccess},
		{Name: "lint", State: domain.StateFailure},
	}, stages[0].Statuses)
	assert.Equal(t, "deploy", stages[1].Name)
	assert.Equal(t, domain.StatePending, stages[1].State)
	assert.Equal(t, "staging", stages[1].Statuses[0].Name)
}
