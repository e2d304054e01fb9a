package lifecycle

import (
	"fmt"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
)

// Decision is an admin verdict on a pending (or already decided) job.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision validates a wire value.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApprove, DecisionReject:
		return Decision(s), nil
	}
	return "", fmt.Errorf("unknown decision %q", s)
}

// Target is the approval status a decision drives the job to.
func (d Decision) Target() models.ApprovalStatus {
	if d == DecisionApprove {
		return models.ApprovalApproved
	}
	return models.ApprovalRejected
}

// Apply computes the next approval status. Every state may be driven
// to approved or rejected at any time by an authorized admin; applying
// a decision the job already satisfies is a no-op, and changed reports
// whether a store write is needed. There is no terminal state.
func Apply(current models.ApprovalStatus, d Decision) (next models.ApprovalStatus, changed bool) {
	next = d.Target()
	return next, next != current
}

// Listable says whether the moderation state alone permits public
// listing. Deadline expiry is a separate, independent gate evaluated
// by the jobstatus package.
func Listable(s models.ApprovalStatus) bool {
	return s == models.ApprovalApproved
}
