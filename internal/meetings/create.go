package meetings

import (
	"time"
)

// CreateOptions carries the optional knobs of a meeting creation
// request.
type CreateOptions struct {
	// PreferredStart pins the meeting start. When zero, the top-ranked
	// optimal slot over the next week is used, falling back to
	// tomorrow 10:00 UTC when no slot is viable.
	PreferredStart time.Time
	Agenda         string
	Location       string
	Type           MeetingType
	TimeZone       string
	Organizer      string
}

// CreateMeetingResult bundles the stored meeting with the organizer's
// conflict report for the chosen interval.
type CreateMeetingResult struct {
	Meeting   Meeting        `json:"meeting"`
	Conflicts ConflictReport `json:"conflicts"`
	Message   string         `json:"message"`
}

// CreateMeeting validates the request, picks a start time, stores the
// meeting and reports any conflicts the organizer already has in the
// chosen interval. Conflicts do not block creation; they are surfaced
// in the result.
func (s *Scheduler) CreateMeeting(title string, participants []string, durationMinutes int, opts CreateOptions) (CreateMeetingResult, error) {
	if title == "" {
		return CreateMeetingResult{}, invalidInputf("meeting title is required")
	}
	if len(participants) == 0 {
		return CreateMeetingResult{}, invalidInputf("at least one participant is required")
	}
	if durationMinutes <= 0 {
		return CreateMeetingResult{}, invalidInputf("duration must be a positive number of minutes")
	}

	start := opts.PreferredStart
	if start.IsZero() {
		recommendation, err := s.FindOptimalSlots(participants, durationMinutes, 7)
		if err != nil {
			return CreateMeetingResult{}, err
		}
		if len(recommendation.Slots) > 0 {
			start = recommendation.Slots[0].Start
		} else {
			now := s.now().UTC()
			tomorrow := now.AddDate(0, 0, 1)
			start = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.UTC)
		}
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	organizer := opts.Organizer
	if organizer == "" {
		organizer = participants[0]
	}
	timeZone := opts.TimeZone
	if timeZone == "" {
		if prefs, err := s.store.Preference(organizer); err == nil {
			timeZone = prefs.TimeZone
		} else {
			timeZone = "UTC"
		}
	}

	// Conflicts are checked before the insert so the new meeting does
	// not report itself.
	conflicts, err := s.DetectConflicts(organizer, start, end)
	if err != nil {
		return CreateMeetingResult{}, err
	}

	stored, err := s.store.PutMeeting(Meeting{
		Title:        title,
		Participants: participants,
		Start:        start,
		End:          end,
		TimeZone:     timeZone,
		Organizer:    organizer,
		Agenda:       opts.Agenda,
		Location:     opts.Location,
		Type:         opts.Type,
	})
	if err != nil {
		return CreateMeetingResult{}, err
	}

	message := "Meeting created successfully"
	if conflicts.HasConflicts {
		message = "Meeting created with conflicts detected"
	}
	return CreateMeetingResult{
		Meeting:   stored,
		Conflicts: conflicts,
		Message:   message,
	}, nil
}
