package meetings

import (
	"time"
)

// Scheduler answers availability, conflict and slot-search questions
// over the store. CreateMeeting is its only writing operation.
type Scheduler struct {
	store *Store
	now   func() time.Time
}

// NewScheduler creates a scheduler over the given store. Pass nil for
// now to use time.Now.
func NewScheduler(store *Store, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{store: store, now: now}
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapMinutes returns the whole minutes shared by two intervals,
// never negative.
func OverlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !start.Before(end) {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

// IsAvailable reports whether user has no stored meeting overlapping
// the interval [start, end).
func (s *Scheduler) IsAvailable(user string, start, end time.Time) bool {
	for _, m := range s.store.MeetingsFor(user) {
		if Overlaps(start, end, m.Start, m.End) {
			return false
		}
	}
	return true
}

// AvailableParticipants filters participants down to those available in
// the interval, preserving input order.
func (s *Scheduler) AvailableParticipants(participants []string, start, end time.Time) []string {
	available := make([]string, 0, len(participants))
	for _, p := range participants {
		if s.IsAvailable(p, start, end) {
			available = append(available, p)
		}
	}
	return available
}

// Conflict describes one stored meeting overlapping a queried interval.
type Conflict struct {
	MeetingID      string    `json:"meeting_id"`
	Title          string    `json:"title"`
	Start          time.Time `json:"start_time"`
	End            time.Time `json:"end_time"`
	OverlapMinutes int       `json:"overlap_minutes"`
}

// ConflictReport is the result of a conflict-detection query.
type ConflictReport struct {
	UserID       string     `json:"user_id"`
	QueryStart   time.Time  `json:"query_start"`
	QueryEnd     time.Time  `json:"query_end"`
	HasConflicts bool       `json:"has_conflicts"`
	Conflicts    []Conflict `json:"conflicts"`
	Count        int        `json:"conflict_count"`
}

// DetectConflicts reports every meeting of user that overlaps the
// interval [start, end). A user with no stored meetings, including an
// entirely unknown user, yields an empty report rather than an error.
func (s *Scheduler) DetectConflicts(user string, start, end time.Time) (ConflictReport, error) {
	if !start.Before(end) {
		return ConflictReport{}, invalidInputf("query end must be after start")
	}

	report := ConflictReport{
		UserID:     user,
		QueryStart: start,
		QueryEnd:   end,
		Conflicts:  []Conflict{},
	}
	for _, m := range s.store.MeetingsFor(user) {
		if !Overlaps(start, end, m.Start, m.End) {
			continue
		}
		report.Conflicts = append(report.Conflicts, Conflict{
			MeetingID:      m.ID,
			Title:          m.Title,
			Start:          m.Start,
			End:            m.End,
			OverlapMinutes: OverlapMinutes(start, end, m.Start, m.End),
		})
	}
	report.Count = len(report.Conflicts)
	report.HasConflicts = report.Count > 0
	return report, nil
}
