package adjustment

// Status represents the lifecycle status of an adjustment. An adjustment is
// created directly in WAITING_FOR_APPROVAL; there is no separately persisted
// draft state.
type Status string

const (
	StatusWaitingForApproval Status = "waiting_for_approval"
	StatusApproved           Status = "approved"
	StatusCancelled          Status = "cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusWaitingForApproval, StatusApproved, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancellation is a reachable terminal status but is set only through an
// external administrative action; the engine exposes no trigger for it.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusWaitingForApproval:
		return target == StatusApproved || target == StatusCancelled
	case StatusApproved, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for approved or cancelled adjustments
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusCancelled
}
