package server

import (
	"context"
	"sync"

	"github.com/meetfewer/meetfewer/internal/instrumentation"
	"github.com/meetfewer/meetfewer/internal/meetings"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	store     *meetings.Store
	scheduler *meetings.Scheduler
	analyzer  *meetings.Analyzer
	scorer    *meetings.Scorer
	optimizer *meetings.ScheduleOptimizer
	agenda    *meetings.AgendaGenerator
	metrics   *instrumentation.Metrics
	audit     *instrumentation.AuditLogger
	mu        sync.RWMutex
	shutdown  bool
}

// NewServerContext creates a new server context wired to a fresh meeting store.
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	return NewServerContextWithStore(ctx, meetings.NewStore(nil))
}

// NewServerContextWithStore creates a new server context around an existing store.
// This is used when demo data has been seeded before the server starts.
func NewServerContextWithStore(ctx context.Context, store *meetings.Store) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:       shutdownCtx,
		cancel:    cancel,
		store:     store,
		scheduler: meetings.NewScheduler(store, nil),
		analyzer:  meetings.NewAnalyzer(store, nil),
		scorer:    meetings.NewScorer(store),
		optimizer: meetings.NewScheduleOptimizer(store, nil),
		agenda:    meetings.NewAgendaGenerator(),
		shutdown:  false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Store returns the meeting store.
func (sc *ServerContext) Store() *meetings.Store {
	return sc.store
}

// Scheduler returns the slot finder and conflict detector.
func (sc *ServerContext) Scheduler() *meetings.Scheduler {
	return sc.scheduler
}

// Analyzer returns the pattern and workload analyzer.
func (sc *ServerContext) Analyzer() *meetings.Analyzer {
	return sc.analyzer
}

// Scorer returns the effectiveness scorer.
func (sc *ServerContext) Scorer() *meetings.Scorer {
	return sc.scorer
}

// Optimizer returns the schedule optimizer.
func (sc *ServerContext) Optimizer() *meetings.ScheduleOptimizer {
	return sc.optimizer
}

// AgendaGenerator returns the agenda suggestion generator.
func (sc *ServerContext) AgendaGenerator() *meetings.AgendaGenerator {
	return sc.agenda
}

// SetMetrics sets the metrics recorder for tool instrumentation.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil if instrumentation is not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// RecordMeetingsStored moves the stored-meeting gauge by delta. Safe to
// call when instrumentation is not configured.
func (sc *ServerContext) RecordMeetingsStored(ctx context.Context, delta int64) {
	if m := sc.Metrics(); m != nil {
		m.AddStoredMeetings(ctx, delta)
	}
}

// SetAuditLogger sets the audit logger for tool invocations.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.audit = al
}

// AuditLogger returns the audit logger, or nil if audit logging is not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.audit
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
