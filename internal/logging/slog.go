package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
)

// Shared attribute keys so log lines stay greppable across packages.
const (
	KeyOperation = "operation"
	KeyComponent = "component"
	KeyUserHash  = "user_hash"
	KeyMeetingID = "meeting_id"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyTool      = "tool"
)

// Status values. Duplicated from the instrumentation package because
// instrumentation imports logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger carrying the operation attribute.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger carrying the tool attribute.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithComponent returns a logger carrying the component attribute.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String(KeyComponent, component))
}

// Attribute constructors for one-off log calls.

func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

func Component(component string) slog.Attr {
	return slog.String(KeyComponent, component)
}

func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

func MeetingID(id string) slog.Attr {
	return slog.String(KeyMeetingID, id)
}

func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns an error attribute. A nil error yields an empty group,
// which slog drops from output, so Err(maybeNil) is always safe to
// pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail hashes a user identifier so log entries correlate
// without exposing the address itself.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// UserHash returns the anonymized user attribute under a consistent
// key.
func UserHash(email string) slog.Attr {
	return slog.String(KeyUserHash, AnonymizeEmail(email))
}

// ExtractDomain returns the domain half of an email address, or ""
// when the input is not a plain user@domain string.
func ExtractDomain(email string) string {
	if email == "" {
		return ""
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// Domain returns the email domain attribute, a lower-cardinality
// alternative to logging the full address.
func Domain(email string) slog.Attr {
	return slog.String("user_domain", ExtractDomain(email))
}
