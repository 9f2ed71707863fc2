package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUserDomain(t *testing.T) {
	cases := map[string]string{
		"alice@company.com":          "company.com",
		"user@gmail.com":             "gmail.com",
		"admin@company.org":          "company.org",
		"test@subdomain.example.com": "subdomain.example.com",
		"@domain.com":                "domain.com",
		"invalid":                    "unknown",
		"":                           "unknown",
		"@":                          "unknown",
		"user@":                      "unknown",
		"a@b@c":                      "unknown",
	}
	for email, want := range cases {
		assert.Equal(t, want, ExtractUserDomain(email), "email %q", email)
	}
}

func TestOperationConstants(t *testing.T) {
	// These values end up as metric label values; dashboards depend on
	// them staying stable.
	assert.Equal(t, "get", OperationGet)
	assert.Equal(t, "create", OperationCreate)
	assert.Equal(t, "find_slots", OperationFindSlots)
	assert.Equal(t, "detect_conflicts", OperationDetectConflicts)
	assert.Equal(t, "analyze_patterns", OperationAnalyzePatterns)
	assert.Equal(t, "workload", OperationWorkload)
	assert.Equal(t, "score", OperationScore)
	assert.Equal(t, "optimize", OperationOptimize)
	assert.Equal(t, "agenda", OperationAgenda)
}
