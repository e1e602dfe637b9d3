package domain

import "time"

// Initial values for a freshly created library.
const (
	DefaultDailyTarget = 20
	DefaultOCRLang     = "eng"
	DefaultLibraryName = "Default"
	DefaultUserName    = "Student"
)

// DayLayout is the calendar-day format used for activity tracking.
const DayLayout = "2006-01-02"

// Badge names, listed in the order they can be awarded.
const (
	BadgeFirstUpload   = "First Upload"
	BadgeBookworm      = "Bookworm"
	BadgePerfectScore  = "Perfect Score"
	BadgeTargetReached = "Target Reached"
	Badge3DayStreak    = "3-Day Streak"
	Badge7DayStreak    = "7-Day Streak"
)

// Library is the full contents of one Library Store: the ordered
// documents plus lightweight user counters and settings.
type Library struct {
	// Documents in insertion order. Order is display order only.
	Documents []Document

	// User holds gamification counters.
	User UserStats

	// Settings holds per-library preferences.
	Settings Settings
}

// UserStats holds the learner's profile and gamification counters.
type UserStats struct {
	// Name is the learner's display name.
	Name string

	// DailyTarget is the number of quiz questions to answer each day.
	DailyTarget int

	// TodayCount is the number of quiz questions answered on LastActive.
	TodayCount int

	// Streak is the number of consecutive active days.
	Streak int

	// Badges lists awarded badge names in award order.
	Badges []string

	// LastActive is the last active calendar day (YYYY-MM-DD). Empty if never active.
	LastActive string
}

// HasBadge returns true if the named badge has been awarded.
func (u UserStats) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// Settings holds user preferences persisted with the library.
type Settings struct {
	// OCRLang is the tesseract language code used for recognition.
	OCRLang string

	// VoiceEnabled toggles speech output.
	VoiceEnabled bool
}

// NewLibrary returns an empty library with initial values.
func NewLibrary() Library {
	return Library{
		Documents: []Document{},
		User: UserStats{
			Name:        DefaultUserName,
			DailyTarget: DefaultDailyTarget,
			Badges:      []string{},
		},
		Settings: Settings{
			OCRLang:      DefaultOCRLang,
			VoiceEnabled: true,
		},
	}
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (l Library) Clone() Library {
	out := l
	out.Documents = append([]Document{}, l.Documents...)
	out.User.Badges = append([]string{}, l.User.Badges...)
	return out
}

// IndexOf returns the position of the document with the given ID, or -1.
func (l Library) IndexOf(id string) int {
	for i, d := range l.Documents {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Day formats t as a calendar day in its own location.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}
