package booking

type Type string

const (
	TypeNone    Type = ""
	TypeWeekend Type = "weekend"
	TypeWeekly  Type = "weekly"
)

func (t Type) String() string {
	if t == TypeNone {
		return "none"
	}
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeWeekend, TypeWeekly:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// HoldsDates reports whether a booking in this status keeps its dates out of
// the calendar.
func (s Status) HoldsDates() bool {
	return s == StatusPending || s == StatusConfirmed
}
