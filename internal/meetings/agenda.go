package meetings

import (
	"strings"
)

// AgendaItem is one entry of a suggested agenda.
type AgendaItem struct {
	Item        string `json:"item"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Minutes     int    `json:"minutes"`
}

// AgendaSuggestion is a structured agenda proposal for a meeting topic.
type AgendaSuggestion struct {
	Topic             string       `json:"meeting_topic"`
	Participants      []string     `json:"participants"`
	Items             []AgendaItem `json:"items"`
	EstimatedDuration int          `json:"estimated_duration"`
	PreparationTips   []string     `json:"preparation_tips"`
	SuccessFactors    []string     `json:"success_factors"`
}

// agendaTemplate holds the topic-specific middle section of an agenda.
type agendaTemplate struct {
	keywords []string
	items    []AgendaItem
}

// AgendaGenerator classifies a free-text topic against an ordered
// keyword table and assembles a time-budgeted agenda. The lookup tables
// are built once at construction and never mutated.
type AgendaGenerator struct {
	templates   []agendaTemplate
	generic     []AgendaItem
	typeMinutes map[string]int
	opening     []AgendaItem
	closing     []AgendaItem
}

// NewAgendaGenerator builds a generator with the fixed template,
// duration and tip tables.
func NewAgendaGenerator() *AgendaGenerator {
	return &AgendaGenerator{
		opening: []AgendaItem{
			{Item: "Welcome and introductions", Type: "opening", Description: "Brief introductions if needed"},
			{Item: "Meeting objectives", Type: "overview", Description: "Review goals and expected outcomes"},
		},
		closing: []AgendaItem{
			{Item: "Action items and owners", Type: "action", Description: "Assign specific tasks with clear ownership"},
			{Item: "Next meeting and follow-up", Type: "closing", Description: "Schedule follow-up and confirm next steps"},
		},
		// Checked in order; first keyword match wins.
		templates: []agendaTemplate{
			{
				keywords: []string{"planning", "strategy"},
				items: []AgendaItem{
					{Item: "Current status review", Type: "review", Description: "Assess current progress and challenges"},
					{Item: "Goal setting and priorities", Type: "planning", Description: "Define objectives and key priorities"},
					{Item: "Resource allocation", Type: "planning", Description: "Discuss budget, timeline, and team assignments"},
					{Item: "Risk assessment", Type: "analysis", Description: "Identify potential risks and mitigation strategies"},
				},
			},
			{
				keywords: []string{"review", "retrospective"},
				items: []AgendaItem{
					{Item: "Achievements and wins", Type: "review", Description: "Celebrate successes and positive outcomes"},
					{Item: "Challenges and lessons learned", Type: "review", Description: "Discuss obstacles and key learnings"},
					{Item: "Process improvements", Type: "improvement", Description: "Identify areas for optimization"},
					{Item: "Action items for next period", Type: "planning", Description: "Define next steps and responsibilities"},
				},
			},
			{
				keywords: []string{"brainstorm", "ideation"},
				items: []AgendaItem{
					{Item: "Problem definition", Type: "framing", Description: "Clearly define the challenge or opportunity"},
					{Item: "Idea generation", Type: "brainstorming", Description: "Open brainstorming session - all ideas welcome"},
					{Item: "Idea evaluation", Type: "analysis", Description: "Assess and prioritize generated ideas"},
					{Item: "Next steps selection", Type: "decision", Description: "Choose ideas to pursue and assign owners"},
				},
			},
			{
				keywords: []string{"standup", "sync"},
				items: []AgendaItem{
					{Item: "Round-robin updates", Type: "update", Description: "Each participant shares progress and blockers"},
					{Item: "Blocker resolution", Type: "problem-solving", Description: "Address any impediments or challenges"},
					{Item: "Coordination needs", Type: "coordination", Description: "Identify collaboration opportunities"},
				},
			},
		},
		generic: []AgendaItem{
			{Item: "Main discussion topics", Type: "discussion", Description: "Core agenda items for the meeting"},
			{Item: "Decision points", Type: "decision", Description: "Items requiring group decisions"},
			{Item: "Information sharing", Type: "information", Description: "Updates and announcements"},
		},
		typeMinutes: map[string]int{
			"opening":         5,
			"overview":        5,
			"review":          10,
			"planning":        15,
			"analysis":        12,
			"improvement":     10,
			"framing":         8,
			"brainstorming":   20,
			"decision":        10,
			"update":          15,
			"problem-solving": 12,
			"coordination":    8,
			"discussion":      15,
			"information":     8,
			"action":          10,
			"closing":         5,
		},
	}
}

// defaultItemMinutes is assigned to agenda items whose type has no
// entry in the duration table.
const defaultItemMinutes = 10

var agendaSuccessFactors = []string{
	"Start and end on time",
	"Keep discussions focused on agenda items",
	"Assign clear action items with owners",
	"Follow up within 24 hours",
}

var basePreparationTips = []string{
	"Send agenda 24-48 hours in advance",
	"Include any pre-reading materials or documents",
	"Test technology and meeting links beforehand",
	"Prepare key questions to guide discussion",
}

// Generate assembles an agenda for the topic: a fixed opening pair, the
// topic-matched template items, and a fixed closing pair, with per-item
// minutes from the duration table.
func (g *AgendaGenerator) Generate(topic string, participants []string) (AgendaSuggestion, error) {
	if topic == "" {
		return AgendaSuggestion{}, invalidInputf("meeting topic is required")
	}

	items := append([]AgendaItem(nil), g.opening...)
	items = append(items, g.topicItems(topic)...)
	items = append(items, g.closing...)

	total := 0
	for i := range items {
		minutes, ok := g.typeMinutes[items[i].Type]
		if !ok {
			minutes = defaultItemMinutes
		}
		items[i].Minutes = minutes
		total += minutes
	}

	return AgendaSuggestion{
		Topic:             topic,
		Participants:      participants,
		Items:             items,
		EstimatedDuration: total,
		PreparationTips:   g.preparationTips(topic, participants),
		SuccessFactors:    agendaSuccessFactors,
	}, nil
}

// topicItems returns the first template whose keywords match the topic,
// or the generic items.
func (g *AgendaGenerator) topicItems(topic string) []AgendaItem {
	lower := strings.ToLower(topic)
	for _, tmpl := range g.templates {
		for _, kw := range tmpl.keywords {
			if strings.Contains(lower, kw) {
				return tmpl.items
			}
		}
	}
	return g.generic
}

// preparationTips assembles the base tips plus conditional additions
// for large groups and decision or brainstorm topics.
func (g *AgendaGenerator) preparationTips(topic string, participants []string) []string {
	tips := append([]string(nil), basePreparationTips...)

	if len(participants) > 5 {
		tips = append(tips,
			"Consider assigning a facilitator for large group dynamics",
			"Use structured discussion formats (e.g., round-robin)")
	}

	lower := strings.ToLower(topic)
	if strings.Contains(lower, "decision") {
		tips = append(tips,
			"Prepare decision criteria and evaluation framework",
			"Gather relevant data and analysis beforehand")
	}
	if strings.Contains(lower, "brainstorm") {
		tips = append(tips,
			"Set ground rules for creative thinking",
			"Prepare stimulus materials or examples")
	}
	return tips
}
