package meetings

import (
	"sort"
	"time"
)

// Candidate slots are generated on half-hour boundaries inside this
// window. A slot may run past the window end; only the start must fall
// inside it.
const (
	slotWindowStartHour = 8
	slotWindowEndHour   = 18
	maxReturnedSlots    = 10
)

// Slot is a candidate meeting interval with its heuristic score and the
// participants free during it.
type Slot struct {
	Start                 time.Time `json:"start_time"`
	End                   time.Time `json:"end_time"`
	Score                 float64   `json:"score"`
	AvailableParticipants []string  `json:"available_participants"`
}

// SlotRecommendation ranks candidate slots for a meeting request.
type SlotRecommendation struct {
	Participants    []string `json:"participants"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []Slot   `json:"slots"`
	TotalAnalyzed   int      `json:"total_analyzed"`
}

// FindOptimalSlots scans every half-hour boundary between 08:00 and
// 18:00 on each weekday within daysAhead days and scores each candidate
// interval. Slots scoring zero are discarded; the top ten survivors are
// returned ordered by descending score, earlier start first on ties.
func (s *Scheduler) FindOptimalSlots(participants []string, durationMinutes, daysAhead int) (SlotRecommendation, error) {
	if len(participants) == 0 {
		return SlotRecommendation{}, invalidInputf("at least one participant is required")
	}
	if durationMinutes <= 0 {
		return SlotRecommendation{}, invalidInputf("duration must be a positive number of minutes")
	}
	if daysAhead < 0 {
		return SlotRecommendation{}, invalidInputf("days ahead must not be negative")
	}

	duration := time.Duration(durationMinutes) * time.Minute
	now := s.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var slots []Slot
	for offset := 0; offset <= daysAhead; offset++ {
		date := day.AddDate(0, 0, offset)
		wd := date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for hour := slotWindowStartHour; hour < slotWindowEndHour; hour++ {
			for _, minute := range []int{0, 30} {
				start := date.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
				end := start.Add(duration)
				score := s.scoreSlot(participants, start, end)
				if score <= 0 {
					continue
				}
				slots = append(slots, Slot{
					Start:                 start,
					End:                   end,
					Score:                 score,
					AvailableParticipants: s.AvailableParticipants(participants, start, end),
				})
			}
		}
	}

	total := len(slots)
	// Generation order is ascending start time, so a stable sort keeps
	// earlier starts first among equal scores.
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Score > slots[j].Score
	})
	if len(slots) > maxReturnedSlots {
		slots = slots[:maxReturnedSlots]
	}
	if slots == nil {
		slots = []Slot{}
	}

	return SlotRecommendation{
		Participants:    participants,
		DurationMinutes: durationMinutes,
		Slots:           slots,
		TotalAnalyzed:   total,
	}, nil
}

// scoreSlot applies the heuristic desirability rules to one candidate
// interval. The result is floored at zero.
func (s *Scheduler) scoreSlot(participants []string, start, end time.Time) float64 {
	score := 100.0

	availableCount := 0
	for _, p := range participants {
		if s.IsAvailable(p, start, end) {
			availableCount++
		} else {
			score -= 30
		}
	}
	if availableCount == len(participants) {
		score += 50
	}

	switch hour := start.Hour(); {
	case hour >= 9 && hour <= 16:
		score += 20
	case hour >= 8 && hour <= 17:
		score += 10
	default:
		score -= 20
	}

	if start.Hour() == 12 {
		score -= 15
	}

	switch start.Weekday() {
	case time.Tuesday, time.Wednesday, time.Thursday:
		score += 10
	case time.Monday, time.Friday:
		score += 5
	}

	if score < 0 {
		return 0
	}
	return score
}
