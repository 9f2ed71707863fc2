package meetings

import (
	"fmt"
	"strings"
)

// workloadWindowDays is the trailing window used for workload figures.
const workloadWindowDays = 30

// MemberWorkload holds per-member meeting-load figures over the
// trailing 30 days.
type MemberWorkload struct {
	Member           string              `json:"member"`
	TotalMeetings    int                 `json:"total_meetings_30d"`
	TotalHours       float64             `json:"total_hours_30d"`
	DailyAvgMeetings float64             `json:"daily_avg_meetings"`
	DailyAvgHours    float64             `json:"daily_avg_hours"`
	TypeFrequency    map[MeetingType]int `json:"meeting_types"`
	Score            float64             `json:"workload_score"`
}

// TeamWorkloadStats aggregates workload figures across a team.
type TeamWorkloadStats struct {
	AvgDailyHours     float64 `json:"avg_daily_hours"`
	AvgDailyMeetings  float64 `json:"avg_daily_meetings"`
	AvgWorkloadScore  float64 `json:"avg_workload_score"`
	MaxWorkloadMember string  `json:"max_workload_member"`
	MinWorkloadMember string  `json:"min_workload_member"`
	ScoreVariance     float64 `json:"workload_variance"`
}

// WorkloadReport is the result of a team workload analysis.
type WorkloadReport struct {
	Members         []string          `json:"team_members"`
	Workloads       []MemberWorkload  `json:"workload_analysis"`
	TeamStats       TeamWorkloadStats `json:"team_statistics"`
	Recommendations []string          `json:"balance_recommendations"`
	AnalysisPeriod  string            `json:"analysis_period"`
}

// CalculateWorkload computes per-member load scores over the trailing
// 30 days plus team statistics and rebalancing recommendations. Member
// order is preserved from the input; ties for max/min go to the earlier
// member.
func (a *Analyzer) CalculateWorkload(members []string) (WorkloadReport, error) {
	if len(members) == 0 {
		return WorkloadReport{}, invalidInputf("at least one team member is required")
	}

	cutoff := a.now().UTC().AddDate(0, 0, -workloadWindowDays)
	workloads := make([]MemberWorkload, 0, len(members))
	for _, member := range members {
		wl := MemberWorkload{
			Member:        member,
			TypeFrequency: make(map[MeetingType]int),
		}
		var totalHours float64
		for _, m := range a.store.MeetingsFor(member) {
			if m.Start.Before(cutoff) {
				continue
			}
			wl.TotalMeetings++
			totalHours += m.Duration().Hours()
			wl.TypeFrequency[m.Type]++
		}
		dailyMeetings := float64(wl.TotalMeetings) / workloadWindowDays
		dailyHours := totalHours / workloadWindowDays

		wl.TotalHours = round2(totalHours)
		wl.DailyAvgMeetings = round2(dailyMeetings)
		wl.DailyAvgHours = round2(dailyHours)
		wl.Score = WorkloadScore(dailyHours, dailyMeetings)
		workloads = append(workloads, wl)
	}

	stats := teamStats(workloads)
	return WorkloadReport{
		Members:         members,
		Workloads:       workloads,
		TeamStats:       stats,
		Recommendations: workloadRecommendations(workloads, stats),
		AnalysisPeriod:  "Last 30 days",
	}, nil
}

// WorkloadScore combines daily meeting hours and counts into a bounded
// [0,100] overload indicator. Four hours or six meetings per day each
// saturate their sub-term.
func WorkloadScore(dailyHours, dailyMeetings float64) float64 {
	hoursScore := dailyHours / 4.0 * 100
	if hoursScore > 100 {
		hoursScore = 100
	}
	meetingsScore := dailyMeetings / 6.0 * 100
	if meetingsScore > 100 {
		meetingsScore = 100
	}
	return round1(hoursScore*0.7 + meetingsScore*0.3)
}

func teamStats(workloads []MemberWorkload) TeamWorkloadStats {
	if len(workloads) == 0 {
		return TeamWorkloadStats{}
	}

	var hoursSum, meetingsSum, scoreSum float64
	scores := make([]float64, 0, len(workloads))
	maxIdx, minIdx := 0, 0
	for i, wl := range workloads {
		hoursSum += wl.DailyAvgHours
		meetingsSum += wl.DailyAvgMeetings
		scoreSum += wl.Score
		scores = append(scores, wl.Score)
		if wl.Score > workloads[maxIdx].Score {
			maxIdx = i
		}
		if wl.Score < workloads[minIdx].Score {
			minIdx = i
		}
	}

	n := float64(len(workloads))
	return TeamWorkloadStats{
		AvgDailyHours:     round2(hoursSum / n),
		AvgDailyMeetings:  round2(meetingsSum / n),
		AvgWorkloadScore:  round1(scoreSum / n),
		MaxWorkloadMember: workloads[maxIdx].Member,
		MinWorkloadMember: workloads[minIdx].Member,
		ScoreVariance:     round1(populationVariance(scores)),
	}
}

// populationVariance divides by n, not n-1.
func populationVariance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return sq / float64(len(values))
}

func workloadRecommendations(workloads []MemberWorkload, stats TeamWorkloadStats) []string {
	var recs []string

	var overloaded, underloaded []string
	standups := 0
	for _, wl := range workloads {
		if wl.Score > 70 {
			overloaded = append(overloaded, wl.Member)
		}
		if wl.Score < 30 {
			underloaded = append(underloaded, wl.Member)
		}
		standups += wl.TypeFrequency[TypeStandup]
	}

	if len(overloaded) > 0 {
		recs = append(recs, fmt.Sprintf("High workload detected for: %s. Consider redistributing meetings.",
			strings.Join(overloaded, ", ")))
	}
	if len(underloaded) > 0 && len(overloaded) > 0 {
		recs = append(recs, fmt.Sprintf("Consider shifting some meetings from %s to %s.",
			strings.Join(overloaded, ", "), strings.Join(underloaded, ", ")))
	}
	if stats.ScoreVariance > 400 {
		recs = append(recs, "High workload variance across team. Work on more even distribution.")
	}
	if stats.AvgWorkloadScore > 60 {
		recs = append(recs, "Team overall meeting load is high. Consider meeting-free time blocks.")
	} else if stats.AvgWorkloadScore < 20 {
		recs = append(recs, "Team meeting load is low. Consider if more collaboration is needed.")
	}
	if standups > len(workloads)*10 {
		recs = append(recs, "High number of standup meetings. Consider consolidating or reducing frequency.")
	}
	return recs
}
