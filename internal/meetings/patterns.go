package meetings

import (
	"math"
	"time"
)

// Analyzer aggregates a user's historical meetings into patterns and
// team-level workload figures.
type Analyzer struct {
	store *Store
	now   func() time.Time
}

// NewAnalyzer creates an analyzer over the given store. Pass nil for
// now to use time.Now.
func NewAnalyzer(store *Store, now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{store: store, now: now}
}

// Period selects how far back a pattern analysis looks.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// PatternAnalysis is the aggregated view of one user's meeting history.
type PatternAnalysis struct {
	UserID             string  `json:"user_id"`
	Period             Period  `json:"period"`
	TotalMeetings      int     `json:"total_meetings"`
	TotalHours         float64 `json:"total_hours"`
	AverageDurationMin float64 `json:"average_meeting_duration"`
	// MeetingsPerDay divides by 7 for the week period and by 30 for both
	// month and all.
	MeetingsPerDay   float64             `json:"meetings_per_day"`
	DayFrequency     map[string]int      `json:"day_frequency"`
	HourFrequency    map[int]int         `json:"hour_frequency"`
	DurationBuckets  map[int]int         `json:"duration_distribution"`
	TypeFrequency    map[MeetingType]int `json:"meeting_type_frequency"`
	AvgEffectiveness float64             `json:"average_effectiveness_score"`
	Insights         []string            `json:"productivity_insights"`
}

// AnalyzePatterns filters the user's meetings to those starting at or
// after the period cutoff and computes frequency and duration
// statistics plus heuristic insights.
func (a *Analyzer) AnalyzePatterns(user string, period Period) (PatternAnalysis, error) {
	var cutoff time.Time
	now := a.now().UTC()
	switch period {
	case PeriodWeek:
		cutoff = now.AddDate(0, 0, -7)
	case PeriodMonth:
		cutoff = now.AddDate(0, 0, -30)
	case PeriodAll:
		// zero time: everything qualifies
	default:
		return PatternAnalysis{}, invalidInputf("period must be one of week, month, all")
	}

	var filtered []Meeting
	for _, m := range a.store.MeetingsFor(user) {
		if !m.Start.Before(cutoff) {
			filtered = append(filtered, m)
		}
	}

	analysis := PatternAnalysis{
		UserID:          user,
		Period:          period,
		TotalMeetings:   len(filtered),
		DayFrequency:    make(map[string]int),
		HourFrequency:   make(map[int]int),
		DurationBuckets: make(map[int]int),
		TypeFrequency:   make(map[MeetingType]int),
	}

	var totalHours float64
	var scoreSum float64
	var scoreCount int
	for _, m := range filtered {
		totalHours += m.Duration().Hours()
		analysis.DayFrequency[m.Start.Weekday().String()]++
		analysis.HourFrequency[m.Start.Hour()]++
		analysis.DurationBuckets[int(m.DurationMinutes())]++
		analysis.TypeFrequency[m.Type]++
		if m.EffectivenessScore != nil {
			scoreSum += *m.EffectivenessScore
			scoreCount++
		}
	}

	analysis.TotalHours = round2(totalHours)
	if len(filtered) > 0 {
		analysis.AverageDurationMin = round1(totalHours * 60 / float64(len(filtered)))
	}
	divisor := 30.0
	if period == PeriodWeek {
		divisor = 7.0
	}
	analysis.MeetingsPerDay = round1(float64(len(filtered)) / divisor)
	if scoreCount > 0 {
		analysis.AvgEffectiveness = round2(scoreSum / float64(scoreCount))
	}
	analysis.Insights = productivityInsights(filtered)
	return analysis, nil
}

// productivityInsights evaluates each insight rule independently in a
// fixed order.
func productivityInsights(ms []Meeting) []string {
	if len(ms) == 0 {
		return []string{"No meetings found for analysis."}
	}

	var insights []string
	count := float64(len(ms))

	var totalHours float64
	var early, late, long int
	var scoreSum float64
	var scoreCount int
	for _, m := range ms {
		totalHours += m.Duration().Hours()
		if m.Start.Hour() < 9 {
			early++
		}
		if m.Start.Hour() >= 17 {
			late++
		}
		if m.DurationMinutes() > 60 {
			long++
		}
		if m.EffectivenessScore != nil {
			scoreSum += *m.EffectivenessScore
			scoreCount++
		}
	}

	if totalHours > 20 {
		insights = append(insights, "High meeting load detected. Consider consolidating or declining non-essential meetings.")
	}
	if float64(early) > count*0.3 {
		insights = append(insights, "Many early morning meetings. Consider if these align with peak productivity hours.")
	}
	if float64(late) > count*0.2 {
		insights = append(insights, "Frequent late meetings detected. This may impact work-life balance.")
	}
	if scoreCount > 0 {
		avg := scoreSum / float64(scoreCount)
		if avg < 6.0 {
			insights = append(insights, "Meeting effectiveness is below average. Consider improving agenda preparation and time management.")
		} else if avg > 8.0 {
			insights = append(insights, "Excellent meeting effectiveness! Keep up the good practices.")
		}
	}
	if float64(long) > count*0.4 {
		insights = append(insights, "Many long meetings detected. Consider breaking them into shorter, focused sessions.")
	}
	return insights
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
