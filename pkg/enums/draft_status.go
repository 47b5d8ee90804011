package enums

import "fmt"

// DraftStatus tracks the review state machine of a scheduling draft.
// pending_review is the only non-terminal state.
type DraftStatus string

const (
	DraftStatusPendingReview DraftStatus = "pending_review"
	DraftStatusApproved      DraftStatus = "approved"
	DraftStatusModified      DraftStatus = "modified"
	DraftStatusRejected      DraftStatus = "rejected"
)

var validDraftStatuses = []DraftStatus{
	DraftStatusPendingReview,
	DraftStatusApproved,
	DraftStatusModified,
	DraftStatusRejected,
}

// String implements fmt.Stringer.
func (d DraftStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DraftStatus.
func (d DraftStatus) IsValid() bool {
	for _, candidate := range validDraftStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a draft in this status can no longer be decided.
func (d DraftStatus) IsTerminal() bool {
	return d == DraftStatusApproved || d == DraftStatusModified || d == DraftStatusRejected
}

// ParseDraftStatus converts raw input into a DraftStatus.
func ParseDraftStatus(value string) (DraftStatus, error) {
	for _, candidate := range validDraftStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid draft status %q", value)
}
