package meetings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestPreference(user string) UserPreference {
	return UserPreference{
		UserID:            user,
		WorkStartHour:     9,
		WorkEndHour:       17,
		MaxDailyMeetings:  4,
		PreferredDuration: 30,
		MinBreak:          15,
	}
}

func TestOptimizeScheduleNoPreference(t *testing.T) {
	optimizer := NewScheduleOptimizer(newTestStore(), fixedNow)

	_, err := optimizer.OptimizeSchedule("stranger@company.com")
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
	assert.True(t, IsNotFound(err))
}

func TestOptimizeScheduleEmptyCalendar(t *testing.T) {
	store := newTestStore()
	optimizer := NewScheduleOptimizer(store, fixedNow)
	require.NoError(t, store.PutPreference(defaultTestPreference("alice@company.com")))

	optimization, err := optimizer.OptimizeSchedule("alice@company.com")
	require.NoError(t, err)

	assert.Equal(t, 0, optimization.Analysis.TotalMeetings)
	// The time-blocking recommendation is always present.
	require.Len(t, optimization.Recommendations, 1)
	assert.Equal(t, "time_blocking", optimization.Recommendations[0].Type)
	assert.Equal(t, []string{"Low Priority: Implement focused work blocks"}, optimization.Priorities)
	assert.Equal(t, 6, optimization.Savings.HoursPerWeek)
	assert.Equal(t, 35, optimization.Savings.ProductivityPercent)
	assert.InDelta(t, 4.8, optimization.Savings.FocusHoursPerWeek, 0.001)
	assert.Equal(t, "24 hours of reclaimed time", optimization.Savings.EstimatedMonthlyText)
}

func TestOptimizeScheduleFindsIssues(t *testing.T) {
	store := newTestStore()
	optimizer := NewScheduleOptimizer(store, fixedNow)
	require.NoError(t, store.PutPreference(defaultTestPreference("alice@company.com")))

	// Five back-to-back hour-long meetings on one recent day, starting
	// before work hours. All exceed 1.5x the preferred 30 minutes.
	day := time.Date(2025, 6, 11, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		start := day.Add(time.Duration(i) * time.Hour)
		_, err := store.PutMeeting(Meeting{
			Title:        "Busy",
			Participants: []string{"alice@company.com"},
			Start:        start,
			End:          start.Add(time.Hour),
		})
		require.NoError(t, err)
	}

	optimization, err := optimizer.OptimizeSchedule("alice@company.com")
	require.NoError(t, err)

	analysis := optimization.Analysis
	assert.Equal(t, 5, analysis.TotalMeetings)
	assert.Equal(t, 1, analysis.HeavyDays)
	// 07:00 and 08:00 fall outside the 9-17 window.
	assert.Equal(t, 2, analysis.OffHoursMeetings)
	assert.Equal(t, 4, analysis.BackToBack)
	assert.Equal(t, 5, analysis.LongMeetings)

	types := make([]string, 0, len(optimization.Recommendations))
	for _, rec := range optimization.Recommendations {
		types = append(types, rec.Type)
	}
	assert.Contains(t, types, "meeting_distribution")
	assert.Contains(t, types, "time_alignment")
	assert.Contains(t, types, "buffer_time")
	assert.Contains(t, types, "duration_optimization")
	assert.Contains(t, types, "time_blocking")

	// Summed savings hit the caps.
	assert.Equal(t, 15, optimization.Savings.HoursPerWeek)
	assert.Equal(t, 50, optimization.Savings.ProductivityPercent)
	assert.InDelta(t, 12.0, optimization.Savings.FocusHoursPerWeek, 0.001)
}

func TestCountBackToBack(t *testing.T) {
	day := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	meeting := func(start time.Time, minutes int) Meeting {
		return Meeting{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
	}

	// Zero gap counts, a gap below the break counts, a comfortable gap
	// does not.
	ms := []Meeting{
		meeting(day, 60),                     // 09:00-10:00
		meeting(day.Add(time.Hour), 30),      // 10:00-10:30, gap 0
		meeting(day.Add(100*time.Minute), 30), // 10:40-11:10, gap 10
		meeting(day.Add(3*time.Hour), 30),    // 12:00-12:30, gap 50
	}
	assert.Equal(t, 2, countBackToBack(ms, 15))

	// Overlapping meetings are conflicts, not back-to-back pairs.
	overlapping := []Meeting{
		meeting(day, 60),
		meeting(day.Add(30*time.Minute), 60),
	}
	assert.Equal(t, 0, countBackToBack(overlapping, 15))

	// Input order does not matter.
	reversed := []Meeting{ms[3], ms[1], ms[0], ms[2]}
	assert.Equal(t, 2, countBackToBack(reversed, 15))

	assert.Equal(t, 0, countBackToBack(ms[:1], 15))
}

func TestOptimizeScheduleIgnoresOldMeetings(t *testing.T) {
	store := newTestStore()
	optimizer := NewScheduleOptimizer(store, fixedNow)
	require.NoError(t, store.PutPreference(defaultTestPreference("alice@company.com")))

	old := fixedNow().AddDate(0, 0, -45)
	_, err := store.PutMeeting(Meeting{
		Title:        "Ancient",
		Participants: []string{"alice@company.com"},
		Start:        old,
		End:          old.Add(time.Hour),
	})
	require.NoError(t, err)

	optimization, err := optimizer.OptimizeSchedule("alice@company.com")
	require.NoError(t, err)
	assert.Equal(t, 0, optimization.Analysis.TotalMeetings)
}
