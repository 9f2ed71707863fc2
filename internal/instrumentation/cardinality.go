package instrumentation

import "strings"

// ExtractUserDomain reduces an email address to its domain for metric
// labels, keeping label cardinality proportional to the number of
// organizations rather than users. Anything that is not a plain
// user@domain string maps to "unknown".
//
// Example:
//
//	ExtractUserDomain("alice@company.com")  // "company.com"
//	ExtractUserDomain("user@gmail.com")     // "gmail.com"
//	ExtractUserDomain("invalid")            // "unknown"
//	ExtractUserDomain("")                   // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}
	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}
	return "unknown"
}

// Operation label values for engine metrics. Status and Component
// constants live in config.go.
const (
	OperationGet             = "get"
	OperationCreate          = "create"
	OperationFindSlots       = "find_slots"
	OperationDetectConflicts = "detect_conflicts"
	OperationAnalyzePatterns = "analyze_patterns"
	OperationWorkload        = "workload"
	OperationScore           = "score"
	OperationOptimize        = "optimize"
	OperationAgenda          = "agenda"
)
