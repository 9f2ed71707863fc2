package meetings

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns all meeting and preference records. It supports many
// concurrent readers; writers take the exclusive lock so readers never
// observe a partially written record.
type Store struct {
	mu          sync.RWMutex
	meetings    map[string]*Meeting
	preferences map[string]*UserPreference
	now         func() time.Time
}

// NewStore creates an empty store. The now function is used to stamp
// CreatedAt on inserted meetings; pass nil for time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		meetings:    make(map[string]*Meeting),
		preferences: make(map[string]*UserPreference),
		now:         now,
	}
}

// PutMeeting validates and inserts a meeting. A blank ID is assigned a
// fresh UUID; a blank organizer defaults to the first participant.
// CreatedAt is stamped by the store and is immutable afterwards.
func (s *Store) PutMeeting(m Meeting) (Meeting, error) {
	if len(m.Participants) == 0 {
		return Meeting{}, invalidInputf("meeting requires at least one participant")
	}
	if !m.Start.Before(m.End) {
		return Meeting{}, invalidInputf("meeting end %s must be after start %s",
			m.End.Format(time.RFC3339), m.Start.Format(time.RFC3339))
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Organizer == "" {
		m.Organizer = m.Participants[0]
	}
	if m.Type == "" {
		m.Type = TypeRegular
	}
	m.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := m
	stored.Participants = append([]string(nil), m.Participants...)
	s.meetings[stored.ID] = &stored
	return stored, nil
}

// Meeting returns the meeting with the given id, or ErrMeetingNotFound.
func (s *Store) Meeting(id string) (Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[id]
	if !ok {
		return Meeting{}, ErrMeetingNotFound
	}
	return copyMeeting(m), nil
}

// Meetings returns a snapshot of every stored meeting. The returned
// slice is owned by the caller.
func (s *Store) Meetings() []Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		out = append(out, copyMeeting(m))
	}
	return out
}

// MeetingsFor returns a snapshot of all meetings that include user as a
// participant. An unknown user simply has no meetings.
func (s *Store) MeetingsFor(user string) []Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Meeting
	for _, m := range s.meetings {
		if m.HasParticipant(user) {
			out = append(out, copyMeeting(m))
		}
	}
	return out
}

// SetEffectivenessScore writes the effectiveness score of a stored
// meeting. This is the only mutation allowed after creation; concurrent
// writers follow last-writer-wins under the exclusive lock.
func (s *Store) SetEffectivenessScore(id string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meetings[id]
	if !ok {
		return ErrMeetingNotFound
	}
	m.EffectivenessScore = &score
	return nil
}

// PutPreference inserts or replaces the preference record for a user.
func (s *Store) PutPreference(p UserPreference) error {
	if p.UserID == "" {
		return invalidInputf("preference requires a user id")
	}
	if p.WorkStartHour < 0 || p.WorkEndHour > 23 || p.WorkStartHour > p.WorkEndHour {
		return invalidInputf("working hours %d-%d out of range", p.WorkStartHour, p.WorkEndHour)
	}
	if p.MaxDailyMeetings <= 0 {
		return invalidInputf("max daily meetings must be positive")
	}
	if len(p.WorkDays) == 0 {
		p.WorkDays = append([]time.Weekday(nil), DefaultWorkDays...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := p
	s.preferences[stored.UserID] = &stored
	return nil
}

// Preference returns the preference record for a user, or
// ErrPreferenceNotFound.
func (s *Store) Preference(user string) (UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.preferences[user]
	if !ok {
		return UserPreference{}, ErrPreferenceNotFound
	}
	out := *p
	out.WorkDays = append([]time.Weekday(nil), p.WorkDays...)
	return out, nil
}

// Len returns the number of stored meetings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meetings)
}

// PreferenceCount returns the number of stored preference records.
func (s *Store) PreferenceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.preferences)
}

func copyMeeting(m *Meeting) Meeting {
	out := *m
	out.Participants = append([]string(nil), m.Participants...)
	if m.EffectivenessScore != nil {
		score := *m.EffectivenessScore
		out.EffectivenessScore = &score
	}
	return out
}
