package jobstatus

import (
	"fmt"
	"math"
	"time"
)

// Postings 1-3 days from their deadline get the urgent badge.
const urgentWindowDays = 3

// Status is the deadline-derived state of a posting at one instant.
// It is independent of the moderation state: an approved-but-expired
// job stays approved, it just drops out of active views and loses the
// Apply action.
type Status struct {
	HasDeadline bool `json:"has_deadline"`
	Expired     bool `json:"expired"`
	Urgent      bool `json:"urgent"`
	// DaysLeft is the ceiling of the day difference between deadline
	// and now. Zero on the deadline day, negative once expired.
	DaysLeft int `json:"days_left"`
}

// Evaluate derives the status from an optional deadline. The caller
// injects now so the function stays deterministic.
func Evaluate(deadline *time.Time, now time.Time) Status {
	if deadline == nil {
		return Status{}
	}
	diff := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	return Status{
		HasDeadline: true,
		Expired:     diff < 0,
		Urgent:      diff > 0 && diff <= urgentWindowDays,
		DaysLeft:    diff,
	}
}

// Label renders the badge text for "en" or "ko". Empty when the
// posting has no deadline.
func (s Status) Label(lang string) string {
	if !s.HasDeadline {
		return ""
	}
	ko := lang == "ko"
	switch {
	case s.Expired:
		if ko {
			return fmt.Sprintf("%d일 전 마감", -s.DaysLeft)
		}
		return fmt.Sprintf("expired %s ago", enDays(-s.DaysLeft))
	case s.DaysLeft == 0:
		if ko {
			return "오늘 마감"
		}
		return "expires today"
	default:
		if ko {
			return fmt.Sprintf("%d일 남음", s.DaysLeft)
		}
		return fmt.Sprintf("%s left", enDays(s.DaysLeft))
	}
}

// Korean counters don't inflect, English does.
func enDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
