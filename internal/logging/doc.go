// Package logging holds the structured logging conventions used across
// meetfewer, built on the standard library's slog.
//
// It defines the shared attribute keys (operation, component, tool,
// meeting_id, status), small constructors for them, and WithOperation,
// WithComponent and WithTool for deriving scoped loggers:
//
//	logger := logging.WithComponent(slog.Default(), "scheduler")
//	logger.Info("slots computed", logging.Status(logging.StatusSuccess))
//
// Participant emails are personal data. Log them through UserHash or
// Domain rather than raw, so entries stay correlatable without leaking
// addresses.
package logging
