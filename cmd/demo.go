package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meetfewer/meetfewer/internal/meetings"
	"github.com/meetfewer/meetfewer/internal/seed"
)

func newDemoCmd() *cobra.Command {
	var (
		demoSeed     int64
		demoMeetings int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed sample data and run every scheduling analysis once",
		Long: `Seed the in-memory store with a deterministic sample dataset and run each
of the scheduling-intelligence operations once, printing their JSON results.
Useful for exploring what the MCP tools return without wiring up a client.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(demoSeed, demoMeetings)
		},
	}

	cmd.Flags().Int64Var(&demoSeed, "demo-seed", 42, "Random seed for the demo dataset")
	cmd.Flags().IntVar(&demoMeetings, "demo-meetings", seed.DefaultMeetingCount, "Number of demo meetings to seed")

	return cmd
}

func runDemo(seedValue int64, meetingCount int) error {
	store := meetings.NewStore(nil)
	builder := seed.NewBuilder(seedValue, nil)
	count, err := builder.Populate(store, meetingCount)
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	users := seed.Users()
	scheduler := meetings.NewScheduler(store, nil)
	analyzer := meetings.NewAnalyzer(store, nil)
	scorer := meetings.NewScorer(store)
	optimizer := meetings.NewScheduleOptimizer(store, nil)
	agenda := meetings.NewAgendaGenerator()

	fmt.Printf("meetfewer demo: %d meetings, %d users (seed %d)\n", count, len(users), seedValue)

	// 1. Create a meeting
	created, err := scheduler.CreateMeeting(
		"Product Strategy Session",
		[]string{users[0], users[3], users[5]},
		90,
		meetings.CreateOptions{
			Agenda:         "Discuss Q2 product roadmap and feature priorities",
			Type:           meetings.TypePlanning,
			PreferredStart: time.Now().UTC().AddDate(0, 0, 2).Truncate(time.Hour),
		},
	)
	if err != nil {
		return err
	}
	printSection("create_meeting", created)

	// 2. Find optimal slots
	slots, err := scheduler.FindOptimalSlots([]string{users[0], users[1], users[2]}, 60, 7)
	if err != nil {
		return err
	}
	printSection("find_optimal_slots", slots)

	// 3. Detect conflicts around the meeting we just created
	conflicts, err := scheduler.DetectConflicts(users[0],
		created.Meeting.Start.Add(30*time.Minute),
		created.Meeting.Start.Add(90*time.Minute))
	if err != nil {
		return err
	}
	printSection("detect_scheduling_conflicts", conflicts)

	// 4. Analyze patterns
	patterns, err := analyzer.AnalyzePatterns(users[0], meetings.PeriodMonth)
	if err != nil {
		return err
	}
	printSection("analyze_meeting_patterns", patterns)

	// 5. Generate an agenda
	suggestion, err := agenda.Generate("Sprint Retrospective", users[:4])
	if err != nil {
		return err
	}
	printSection("generate_agenda_suggestions", suggestion)

	// 6. Workload balance across the whole roster
	workload, err := analyzer.CalculateWorkload(users)
	if err != nil {
		return err
	}
	printSection("calculate_workload_balance", workload)

	// 7. Score the meeting created above
	score, err := scorer.ScoreMeeting(created.Meeting.ID)
	if err != nil {
		return err
	}
	printSection("score_meeting_effectiveness", score)

	// 8. Optimize the first user's schedule
	optimization, err := optimizer.OptimizeSchedule(users[0])
	if err != nil {
		return err
	}
	printSection("optimize_meeting_schedule", optimization)

	return nil
}

func printSection(title string, v interface{}) {
	fmt.Printf("\n=== %s ===\n", title)
	rendered, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("error rendering result: %v\n", err)
		return
	}
	fmt.Println(string(rendered))
}
