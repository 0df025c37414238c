package lifecycle

import (
	"github.com/asklio/procurement/constants"
	"github.com/asklio/procurement/internal/common"
	"github.com/asklio/procurement/internal/entity"
	"github.com/asklio/procurement/internal/extraction"
)

// The lifecycle rules are deliberately small: pending is the only state
// this core fully owns. Once a request is open, the downstream workflow
// drives it between open, inprogress and closed, and this core accepts
// those moves unconditionally. The two enforced invariants are:
//
//   - no request reaches open, by any path, while a completeness issue exists
//   - no request is deleted once it has left pending
//
// Completeness shares the rule table with extraction.ComputeIssues; here
// a non-empty report becomes a hard, atomic rejection instead.

// InitialStatus is assigned on creation; creation itself never fails on
// extraction shape.
const InitialStatus = constants.StatusPending

// ValidateTransition checks whether a request may move from one status to
// another given its current field set. A nil error means the transition
// is accepted; the caller must not have mutated anything before asking.
func ValidateTransition(from, to constants.RequestStatus, e entity.Extraction) error {
	if from == to {
		return nil
	}
	// nothing returns to pending once submitted
	if to == constants.StatusPending {
		return &common.TransitionError{From: string(from), To: string(to)}
	}
	if to == constants.StatusOpen {
		return GateSubmit(e)
	}
	return nil
}

// GateSubmit is the single hard gate in the system: it rejects the
// submit transition while any completeness issue exists.
func GateSubmit(e entity.Extraction) error {
	if issues := extraction.ComputeIssues(e); len(issues) > 0 {
		return &common.ValidationError{Fields: issues}
	}
	return nil
}

// CheckDelete permits deletion only while the request is still pending.
// Submitted requests are cancelled or closed by the external workflow,
// never removed.
func CheckDelete(status constants.RequestStatus) error {
	if status != constants.StatusPending {
		return common.NewAppError("NOT_PENDING", "only pending requests can be deleted", common.ErrNotPending)
	}
	return nil
}
