// Package seed builds deterministic demo datasets for the meetings
// engine. The engine itself never depends on randomness; everything
// here is driven by an explicit seed so a given seed always produces
// the same users, preferences and meetings.
package seed
