package repository

// LessonView selects which part of a lesson document is shown.
type LessonView string

const (
	ViewFull   LessonView = "full"
	ViewGuide  LessonView = "guide"
	ViewScript LessonView = "script"
)

// IsValidView returns true if v is a supported view.
func IsValidView(v LessonView) bool {
	switch v {
	case ViewFull, ViewGuide, ViewScript:
		return true
	default:
		return false
	}
}

// DefaultView returns the default view.
func DefaultView() LessonView { return ViewFull }

// NormalizeView converts raw string to a valid view (or default).
func NormalizeView(s string) LessonView {
	if s == "" {
		return DefaultView()
	}
	v := LessonView(s)
	if IsValidView(v) {
		return v
	}
	return DefaultView()
}
