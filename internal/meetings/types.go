package meetings

import (
	"time"
)

// MeetingType classifies a meeting. The vocabulary is fixed; anything
// outside it is stored as TypeRegular.
type MeetingType string

const (
	TypeStandup    MeetingType = "standup"
	TypePlanning   MeetingType = "planning"
	TypeReview     MeetingType = "review"
	TypeBrainstorm MeetingType = "brainstorm"
	TypeOneOnOne   MeetingType = "1on1"
	TypeAllHands   MeetingType = "all-hands"
	TypeRegular    MeetingType = "regular"
)

// KnownMeetingTypes lists the fixed meeting-type vocabulary.
var KnownMeetingTypes = []MeetingType{
	TypeStandup, TypePlanning, TypeReview, TypeBrainstorm,
	TypeOneOnOne, TypeAllHands, TypeRegular,
}

// NormalizeMeetingType maps a raw string onto the fixed vocabulary,
// falling back to TypeRegular for anything unknown.
func NormalizeMeetingType(s string) MeetingType {
	t := MeetingType(s)
	for _, known := range KnownMeetingTypes {
		if t == known {
			return t
		}
	}
	return TypeRegular
}

// Meeting is a single calendar event owned by the Store. All fields are
// immutable after creation except EffectivenessScore, which is written
// by the Scorer.
type Meeting struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Participants       []string    `json:"participants"`
	Start              time.Time   `json:"start_time"`
	End                time.Time   `json:"end_time"`
	TimeZone           string      `json:"timezone"`
	Organizer          string      `json:"organizer"`
	Agenda             string      `json:"agenda,omitempty"`
	Location           string      `json:"location,omitempty"`
	Type               MeetingType `json:"meeting_type"`
	EffectivenessScore *float64    `json:"effectiveness_score,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

// Duration returns the meeting length.
func (m Meeting) Duration() time.Duration {
	return m.End.Sub(m.Start)
}

// DurationMinutes returns the meeting length in fractional minutes.
func (m Meeting) DurationMinutes() float64 {
	return m.End.Sub(m.Start).Minutes()
}

// HasParticipant reports whether user is on the participant list.
func (m Meeting) HasParticipant(user string) bool {
	for _, p := range m.Participants {
		if p == user {
			return true
		}
	}
	return false
}

// UserPreference describes a user's declared scheduling preferences.
// Preferences are created at initialization and never mutated by engine
// operations.
type UserPreference struct {
	UserID            string         `json:"user_id"`
	WorkStartHour     int            `json:"work_start_hour"`
	WorkEndHour       int            `json:"work_end_hour"`
	TimeZone          string         `json:"timezone"`
	MaxDailyMeetings  int            `json:"max_daily_meetings"`
	PreferredDuration int            `json:"preferred_meeting_duration"`
	MinBreak          int            `json:"break_time_between_meetings"`
	WorkDays          []time.Weekday `json:"work_days,omitempty"`
}

// DefaultWorkDays is the working-weekday set applied when a preference
// record does not specify one.
var DefaultWorkDays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}
