package meetings

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ScheduleIssueSummary is the analysis half of a schedule optimization:
// the problems found in the trailing 30 days of a user's calendar.
type ScheduleIssueSummary struct {
	TotalMeetings    int      `json:"total_meetings"`
	AvgDailyMeetings float64  `json:"avg_daily_meetings"`
	HeavyDays        int      `json:"heavy_meeting_days"`
	OffHoursMeetings int      `json:"off_hours_meetings"`
	BackToBack       int      `json:"back_to_back_meetings"`
	LongMeetings     int      `json:"long_meetings"`
	Issues           []string `json:"issues"`
}

// Recommendation is one fixed-template schedule-change recommendation.
type Recommendation struct {
	Type             string `json:"type"`
	Priority         string `json:"priority"`
	Description      string `json:"description"`
	Action           string `json:"action"`
	EstimatedBenefit string `json:"estimated_benefit"`
}

// Savings estimates the potential gains of applying the recommended
// changes, capped for diminishing returns.
type Savings struct {
	HoursPerWeek         int     `json:"time_saved_hours_per_week"`
	ProductivityPercent  int     `json:"productivity_gain_percent"`
	FocusHoursPerWeek    float64 `json:"focus_time_gained_hours_week"`
	EstimatedMonthlyText string  `json:"estimated_monthly_benefit"`
}

// ScheduleOptimization is the full result of a schedule review.
type ScheduleOptimization struct {
	UserID          string               `json:"user_id"`
	Analysis        ScheduleIssueSummary `json:"current_schedule_analysis"`
	Recommendations []Recommendation     `json:"optimization_recommendations"`
	Savings         Savings              `json:"potential_time_savings"`
	Priorities      []string             `json:"implementation_priority"`
}

// savingsByType is the fixed per-recommendation-type savings lookup.
var savingsByType = map[string]struct {
	hoursPerWeek        int
	productivityPercent int
}{
	"meeting_distribution":  {2, 15},
	"time_alignment":        {1, 10},
	"buffer_time":           {3, 20},
	"duration_optimization": {4, 25},
	"meeting_reduction":     {5, 30},
	"time_blocking":         {6, 35},
}

// Caps applied when summing savings across recommendations.
const (
	maxSavedHoursPerWeek   = 15
	maxProductivityPercent = 50
)

// ScheduleOptimizer reviews a user's recent calendar against their
// declared preferences.
type ScheduleOptimizer struct {
	store *Store
	now   func() time.Time
}

// NewScheduleOptimizer creates an optimizer over the given store. Pass
// nil for now to use time.Now.
func NewScheduleOptimizer(store *Store, now func() time.Time) *ScheduleOptimizer {
	if now == nil {
		now = time.Now
	}
	return &ScheduleOptimizer{store: store, now: now}
}

// OptimizeSchedule scans the trailing 30 days of the user's meetings
// against their preference record and produces calendar-hygiene
// recommendations with estimated savings. A user without a preference
// record yields ErrPreferenceNotFound.
func (o *ScheduleOptimizer) OptimizeSchedule(user string) (ScheduleOptimization, error) {
	prefs, err := o.store.Preference(user)
	if err != nil {
		return ScheduleOptimization{}, err
	}

	cutoff := o.now().UTC().AddDate(0, 0, -workloadWindowDays)
	var recent []Meeting
	for _, m := range o.store.MeetingsFor(user) {
		if !m.Start.Before(cutoff) {
			recent = append(recent, m)
		}
	}

	analysis := analyzeSchedule(recent, prefs)
	recs := scheduleRecommendations(analysis, prefs)
	return ScheduleOptimization{
		UserID:          user,
		Analysis:        analysis,
		Recommendations: recs,
		Savings:         potentialSavings(recs),
		Priorities:      prioritize(recs),
	}, nil
}

func analyzeSchedule(recent []Meeting, prefs UserPreference) ScheduleIssueSummary {
	summary := ScheduleIssueSummary{
		TotalMeetings:    len(recent),
		AvgDailyMeetings: round1(float64(len(recent)) / workloadWindowDays),
		Issues:           []string{},
	}

	perDay := make(map[string]int)
	for _, m := range recent {
		perDay[m.Start.Format("2006-01-02")]++
		hour := m.Start.Hour()
		if hour < prefs.WorkStartHour || hour > prefs.WorkEndHour {
			summary.OffHoursMeetings++
		}
		if prefs.PreferredDuration > 0 && m.DurationMinutes() > float64(prefs.PreferredDuration)*1.5 {
			summary.LongMeetings++
		}
	}
	for _, count := range perDay {
		if count > prefs.MaxDailyMeetings {
			summary.HeavyDays++
		}
	}
	summary.BackToBack = countBackToBack(recent, prefs.MinBreak)

	if summary.HeavyDays > 0 {
		summary.Issues = append(summary.Issues,
			fmt.Sprintf("Heavy meeting days detected: %d days exceed preferred limit", summary.HeavyDays))
	}
	if count := len(recent); count > 0 {
		if float64(summary.OffHoursMeetings) > float64(count)*0.2 {
			summary.Issues = append(summary.Issues,
				fmt.Sprintf("Many meetings outside preferred hours: %d meetings", summary.OffHoursMeetings))
		}
		if float64(summary.BackToBack) > float64(count)*0.3 {
			summary.Issues = append(summary.Issues,
				fmt.Sprintf("Frequent back-to-back meetings: %d instances", summary.BackToBack))
		}
		if float64(summary.LongMeetings) > float64(count)*0.3 {
			summary.Issues = append(summary.Issues,
				fmt.Sprintf("Many meetings exceed preferred duration: %d meetings", summary.LongMeetings))
		}
	}
	return summary
}

// countBackToBack counts consecutive pairs, ordered by start time, with
// a gap of at least zero but less than minBreak minutes. Overlapping
// meetings (negative gap) are conflicts, not back-to-back pairs, and do
// not count here.
func countBackToBack(ms []Meeting, minBreak int) int {
	if len(ms) < 2 {
		return 0
	}
	sorted := append([]Meeting(nil), ms...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	count := 0
	for i := 0; i < len(sorted)-1; i++ {
		gap := sorted[i+1].Start.Sub(sorted[i].End).Minutes()
		if gap >= 0 && gap < float64(minBreak) {
			count++
		}
	}
	return count
}

func scheduleRecommendations(analysis ScheduleIssueSummary, prefs UserPreference) []Recommendation {
	var recs []Recommendation

	if analysis.HeavyDays > 0 {
		recs = append(recs, Recommendation{
			Type:             "meeting_distribution",
			Priority:         "high",
			Description:      "Redistribute meetings to avoid overloaded days",
			Action:           "Move some meetings from heavy days to lighter days",
			EstimatedBenefit: "Reduce daily meeting fatigue and improve focus",
		})
	}
	if analysis.OffHoursMeetings > 0 {
		recs = append(recs, Recommendation{
			Type:             "time_alignment",
			Priority:         "medium",
			Description:      "Align meetings with preferred working hours",
			Action:           fmt.Sprintf("Reschedule meetings to %d:00-%d:00", prefs.WorkStartHour, prefs.WorkEndHour),
			EstimatedBenefit: "Improve meeting engagement and work-life balance",
		})
	}
	if analysis.BackToBack > 0 {
		recs = append(recs, Recommendation{
			Type:             "buffer_time",
			Priority:         "high",
			Description:      "Add buffer time between meetings",
			Action:           fmt.Sprintf("Ensure %d minutes between consecutive meetings", prefs.MinBreak),
			EstimatedBenefit: "Reduce context switching and allow for preparation time",
		})
	}
	if analysis.LongMeetings > 0 {
		recs = append(recs, Recommendation{
			Type:             "duration_optimization",
			Priority:         "medium",
			Description:      "Optimize meeting durations",
			Action:           fmt.Sprintf("Target %d minutes per meeting", prefs.PreferredDuration),
			EstimatedBenefit: "Improve focus and reduce meeting fatigue",
		})
	}
	if analysis.AvgDailyMeetings > 4 {
		recs = append(recs, Recommendation{
			Type:             "meeting_reduction",
			Priority:         "medium",
			Description:      "Reduce overall meeting load",
			Action:           "Evaluate necessity of recurring meetings and decline optional ones",
			EstimatedBenefit: "Increase focused work time and productivity",
		})
	}

	// Always worth suggesting, independent of the findings.
	recs = append(recs, Recommendation{
		Type:             "time_blocking",
		Priority:         "low",
		Description:      "Implement focused work blocks",
		Action:           "Block 2-3 hour periods for deep work without meetings",
		EstimatedBenefit: "Improve productivity and reduce fragmentation",
	})
	return recs
}

func potentialSavings(recs []Recommendation) Savings {
	hours := 0
	productivity := 0
	for _, rec := range recs {
		if estimate, ok := savingsByType[rec.Type]; ok {
			hours += estimate.hoursPerWeek
			productivity += estimate.productivityPercent
		}
	}
	if hours > maxSavedHoursPerWeek {
		hours = maxSavedHoursPerWeek
	}
	if productivity > maxProductivityPercent {
		productivity = maxProductivityPercent
	}
	return Savings{
		HoursPerWeek:         hours,
		ProductivityPercent:  productivity,
		FocusHoursPerWeek:    round1(float64(hours) * 0.8),
		EstimatedMonthlyText: fmt.Sprintf("%d hours of reclaimed time", hours*4),
	}
}

func prioritize(recs []Recommendation) []string {
	byPriority := map[string][]string{}
	for _, rec := range recs {
		byPriority[rec.Priority] = append(byPriority[rec.Priority], rec.Description)
	}

	var out []string
	for _, p := range []struct{ key, label string }{
		{"high", "High Priority"},
		{"medium", "Medium Priority"},
		{"low", "Low Priority"},
	} {
		if descriptions := byPriority[p.key]; len(descriptions) > 0 {
			out = append(out, fmt.Sprintf("%s: %s", p.label, strings.Join(descriptions, ", ")))
		}
	}
	return out
}
