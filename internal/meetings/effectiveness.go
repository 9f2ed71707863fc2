package meetings

// Component weights of the overall effectiveness score. They sum to
// 1.0, so the overall score is a convex combination of the components.
const (
	weightDuration   = 0.25
	weightEngagement = 0.20
	weightAgenda     = 0.20
	weightOutcome    = 0.20
	weightTime       = 0.15
)

// agendaAdherenceByType is the fixed per-type adherence table; types
// not listed score the default 7.0.
var agendaAdherenceByType = map[MeetingType]float64{
	TypeStandup:    8.5,
	TypeOneOnOne:   8.0,
	TypePlanning:   7.5,
	TypeReview:     7.0,
	TypeBrainstorm: 6.5,
	TypeAllHands:   6.0,
}

// ScoreComponents are the five quality dimensions of one meeting, each
// floored at 1.0.
type ScoreComponents struct {
	DurationEfficiency    float64 `json:"duration_efficiency"`
	ParticipantEngagement float64 `json:"participant_engagement"`
	AgendaAdherence       float64 `json:"agenda_adherence"`
	OutcomeClarity        float64 `json:"outcome_clarity"`
	TimeManagement        float64 `json:"time_management"`
}

// EffectivenessReport is the result of scoring one meeting.
type EffectivenessReport struct {
	MeetingID    string            `json:"meeting_id"`
	MeetingTitle string            `json:"meeting_title"`
	OverallScore float64           `json:"overall_score"`
	Components   ScoreComponents   `json:"score_components"`
	Rating       string            `json:"effectiveness_rating"`
	Suggestions  []string          `json:"improvement_suggestions"`
	Benchmarks   map[string]string `json:"benchmarks"`
}

// Scorer computes effectiveness scores and writes them back into the
// store.
type Scorer struct {
	store *Store
}

// NewScorer creates a scorer over the given store.
func NewScorer(store *Store) *Scorer {
	return &Scorer{store: store}
}

// ScoreMeeting computes the weighted effectiveness score of a stored
// meeting and, as a documented side effect, writes the overall score
// back onto the meeting record.
func (s *Scorer) ScoreMeeting(id string) (EffectivenessReport, error) {
	m, err := s.store.Meeting(id)
	if err != nil {
		return EffectivenessReport{}, err
	}

	components := scoreComponents(m)
	overall := components.DurationEfficiency*weightDuration +
		components.ParticipantEngagement*weightEngagement +
		components.AgendaAdherence*weightAgenda +
		components.OutcomeClarity*weightOutcome +
		components.TimeManagement*weightTime

	if err := s.store.SetEffectivenessScore(id, overall); err != nil {
		return EffectivenessReport{}, err
	}

	return EffectivenessReport{
		MeetingID:    id,
		MeetingTitle: m.Title,
		OverallScore: round2(overall),
		Components: ScoreComponents{
			DurationEfficiency:    round2(components.DurationEfficiency),
			ParticipantEngagement: round2(components.ParticipantEngagement),
			AgendaAdherence:       round2(components.AgendaAdherence),
			OutcomeClarity:        round2(components.OutcomeClarity),
			TimeManagement:        round2(components.TimeManagement),
		},
		Rating:      EffectivenessRating(overall),
		Suggestions: improvementSuggestions(components, m),
		Benchmarks: map[string]string{
			"excellent":         ">= 8.0",
			"good":              "6.0 - 7.9",
			"needs_improvement": "< 6.0",
		},
	}, nil
}

func scoreComponents(m Meeting) ScoreComponents {
	minutes := m.DurationMinutes()

	var duration float64
	switch {
	case minutes >= 30 && minutes <= 60:
		duration = 9.0
	case (minutes >= 15 && minutes < 30) || (minutes > 60 && minutes <= 90):
		duration = 7.0
	case minutes < 15 || minutes > 120:
		duration = 4.0
	default:
		duration = 6.0
	}

	var engagement float64
	switch count := len(m.Participants); {
	case count >= 2 && count <= 6:
		engagement = 8.5
	case count <= 10:
		engagement = 7.0
	default:
		engagement = 5.5
	}

	adherence, ok := agendaAdherenceByType[m.Type]
	if !ok {
		adherence = 7.0
	}

	var outcome float64
	switch {
	case m.Type == TypeStandup || m.Type == TypeOneOnOne || m.Type == TypeReview:
		outcome = 8.0
	case minutes > 90:
		outcome = 5.5
	default:
		outcome = 7.0
	}

	var timeMgmt float64
	switch hour := m.Start.Hour(); {
	case hour >= 9 && hour <= 16:
		timeMgmt = 8.0
	case hour >= 8 && hour <= 17:
		timeMgmt = 7.0
	default:
		timeMgmt = 5.0
	}
	// Very long meetings lose time-management points after the floor is
	// applied to the base value, matching the documented rule.
	if minutes > 120 {
		timeMgmt -= 2.0
	}

	return ScoreComponents{
		DurationEfficiency:    floor1(duration),
		ParticipantEngagement: floor1(engagement),
		AgendaAdherence:       floor1(adherence),
		OutcomeClarity:        floor1(outcome),
		TimeManagement:        timeMgmt,
	}
}

func floor1(v float64) float64 {
	if v < 1.0 {
		return 1.0
	}
	return v
}

// EffectivenessRating converts a numeric score into its rating band.
func EffectivenessRating(score float64) string {
	switch {
	case score >= 8.0:
		return "Excellent"
	case score >= 6.0:
		return "Good"
	case score >= 4.0:
		return "Needs Improvement"
	default:
		return "Poor"
	}
}

// improvementSuggestions triggers independently per component falling
// below its threshold, plus a generic pair for low overall quality.
func improvementSuggestions(c ScoreComponents, m Meeting) []string {
	var suggestions []string
	minutes := m.DurationMinutes()

	if c.DurationEfficiency < 6.0 {
		if minutes > 90 {
			suggestions = append(suggestions, "Consider breaking long meetings into shorter, focused sessions")
		} else if minutes < 15 {
			suggestions = append(suggestions, "Very short meetings may benefit from asynchronous communication instead")
		}
	}
	if c.ParticipantEngagement < 7.0 {
		if len(m.Participants) > 8 {
			suggestions = append(suggestions, "Large meetings can reduce engagement. Consider smaller working groups")
		}
		suggestions = append(suggestions, "Use interactive formats like round-robin or breakout sessions")
	}
	if c.AgendaAdherence < 7.0 {
		suggestions = append(suggestions,
			"Prepare and share a detailed agenda 24-48 hours in advance",
			"Assign a facilitator to keep discussions on track")
	}
	if c.OutcomeClarity < 7.0 {
		suggestions = append(suggestions,
			"End meetings with clear action items and owners",
			"Send follow-up summary within 24 hours")
	}
	if c.TimeManagement < 7.0 {
		suggestions = append(suggestions, "Schedule meetings during peak productivity hours (9 AM - 4 PM)")
		if minutes > 60 {
			suggestions = append(suggestions, "Include breaks for meetings longer than 60 minutes")
		}
	}

	mean := (c.DurationEfficiency + c.ParticipantEngagement + c.AgendaAdherence +
		c.OutcomeClarity + c.TimeManagement) / 5
	if mean < 6.0 {
		suggestions = append(suggestions,
			"Consider if this meeting could be replaced with asynchronous communication",
			"Implement a meeting effectiveness feedback system")
	}
	return suggestions
}
