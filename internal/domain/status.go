package domain

// Status is the taskwarrior status attribute.
type Status string

const (
	StatusPending   Status = "pending"   // Active, not yet done
	StatusCompleted Status = "completed" // Marked done
	StatusDeleted   Status = "deleted"   // Deleted, still exportable
	StatusWaiting   Status = "waiting"   // Hidden until the wait date
	StatusRecurring Status = "recurring" // Recurrence template
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusCompleted,
		StatusDeleted,
		StatusWaiting,
		StatusRecurring,
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusDeleted, StatusWaiting, StatusRecurring:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for statuses that no longer show up as active.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDeleted
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	case StatusDeleted:
		return "Deleted"
	case StatusWaiting:
		return "Waiting"
	case StatusRecurring:
		return "Recurring"
	default:
		return string(s)
	}
}

// Priority is the taskwarrior priority attribute.
type Priority string

const (
	PriorityLow    Priority = "L"
	PriorityMedium Priority = "M"
	PriorityHigh   Priority = "H"
)

// ParsePriority accepts both the short taskwarrior form and the long name.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "L", "l", "low":
		return PriorityLow, true
	case "M", "m", "medium":
		return PriorityMedium, true
	case "H", "h", "high":
		return PriorityHigh, true
	default:
		return "", false
	}
}

// IsValid returns true if the priority is L, M or H.
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Display returns a human-readable representation of the priority.
func (p Priority) Display() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}
