// Package meetings implements the scheduling-intelligence engine: an
// in-memory store of meetings and user preferences plus the analysis
// components built on top of it.
//
// The engine is split into small composable pieces that all share one
// Store: the Scheduler answers availability, conflict and slot-search
// questions; the Analyzer aggregates historical meetings into patterns
// and workload figures; the Scorer rates individual meetings; the
// ScheduleOptimizer recommends calendar-hygiene changes; and the
// AgendaGenerator builds agenda templates from a free-text topic.
//
// All components are deterministic computations over the current store
// snapshot. The only write performed outside meeting creation is the
// effectiveness score written back by Scorer.ScoreMeeting.
package meetings
