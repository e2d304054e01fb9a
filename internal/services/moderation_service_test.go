package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarpandeyprofessional/keasy-api/internal/lifecycle"
	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

func TestDecide(t *testing.T) {
	m := newMemStore()
	job := m.addJob(models.Job{Title: "Barista", Approval: models.ApprovalPending})
	svc := NewModerationService(m, nil)

	got, err := svc.Decide(job.ID, lifecycle.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, got.Approval)

	// re-approving succeeds without touching the store
	writes := m.approvalWrites
	got, err = svc.Decide(job.ID, lifecycle.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, got.Approval)
	assert.Equal(t, writes, m.approvalWrites)

	// the decision can be flipped at any time
	got, err = svc.Decide(job.ID, lifecycle.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, got.Approval)
}

func TestDecideUnknownJob(t *testing.T) {
	svc := NewModerationService(newMemStore(), nil)
	_, err := svc.Decide(999, lifecycle.DecisionApprove)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPendingQueue(t *testing.T) {
	m := newMemStore()
	m.addJob(models.Job{Title: "A", Approval: models.ApprovalPending})
	m.addJob(models.Job{Title: "B", Approval: models.ApprovalApproved})
	m.addJob(models.Job{Title: "C", Approval: models.ApprovalPending})
	svc := NewModerationService(m, nil)

	jobs, err := svc.PendingQueue()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "C", jobs[0].Title, "newest first")
}

func TestDecideAllPartialFailure(t *testing.T) {
	m := newMemStore()
	a := m.addJob(models.Job{Title: "A", Approval: models.ApprovalPending})
	b := m.addJob(models.Job{Title: "B", Approval: models.ApprovalPending})
	m.updateApprovalErr[b.ID] = errors.New("store hiccup")
	c := m.addJob(models.Job{Title: "C", Approval: models.ApprovalPending})
	svc := NewModerationService(m, nil)

	results := svc.DecideAll(context.Background(), []uint{a.ID, b.ID, 999, c.ID}, lifecycle.DecisionApprove)
	require.Len(t, results, 4)

	assert.Equal(t, models.ApprovalApproved, results[0].Status)
	assert.Empty(t, results[0].Error)

	assert.NotEmpty(t, results[1].Error, "failed item reports its own error")
	assert.NotEmpty(t, results[2].Error, "missing id reports not found")

	// failure of earlier items never blocks later ones
	assert.Equal(t, models.ApprovalApproved, results[3].Status)

	got, _ := m.GetJob(b.ID)
	assert.Equal(t, models.ApprovalPending, got.Approval, "failed item is left untouched")
}

func TestDecideAllCancelledContext(t *testing.T) {
	m := newMemStore()
	a := m.addJob(models.Job{Title: "A", Approval: models.ApprovalPending})
	svc := NewModerationService(m, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := svc.DecideAll(ctx, []uint{a.ID}, lifecycle.DecisionApprove)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Error)

	got, _ := m.GetJob(a.ID)
	assert.Equal(t, models.ApprovalPending, got.Approval, "cancelled items are not transitioned")
}
