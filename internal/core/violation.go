package core

// ViolationCode identifies which rule a proposed reschedule breaks.
type ViolationCode string

const (
	CodeBusinessHoursOutside ViolationCode = "BUSINESS_HOURS_OUTSIDE"
	CodeNoticeTooSoon        ViolationCode = "NOTICE_TOO_SOON"
	CodeTimeConflict         ViolationCode = "TIME_CONFLICT"
)

// Violation is one broken rule. A validation run returns zero or more of
// these; an empty list means the reschedule is approved.
type Violation struct {
	Code    ViolationCode  `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
