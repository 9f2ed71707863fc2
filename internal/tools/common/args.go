package common

import (
	"fmt"
	"strings"
	"time"
)

// GetUserFromArgs extracts the user identifier from request arguments.
// Returns an empty string when no user is specified.
func GetUserFromArgs(args map[string]interface{}) string {
	if userVal, ok := args["user_id"].(string); ok {
		return strings.TrimSpace(userVal)
	}
	return ""
}

// RequireString extracts a required string argument.
func RequireString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || strings.TrimSpace(val) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return strings.TrimSpace(val), nil
}

// OptionalString extracts an optional string argument, returning fallback
// when the argument is absent or empty.
func OptionalString(args map[string]interface{}, key, fallback string) string {
	if val, ok := args[key].(string); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}

// OptionalInt extracts an optional numeric argument as an int. MCP
// delivers JSON numbers as float64.
func OptionalInt(args map[string]interface{}, key string, fallback int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	return fallback
}

// RequirePositiveInt extracts a required numeric argument that must be
// greater than zero.
func RequirePositiveInt(args map[string]interface{}, key string) (int, error) {
	val, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return int(val), nil
}

// ParseTime parses an RFC3339 timestamp argument.
func ParseTime(args map[string]interface{}, key string) (time.Time, error) {
	raw, err := RequireString(args, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format: %v", key, err)
	}
	return t, nil
}

// ParseStringList extracts a list argument. It accepts either a JSON
// array of strings or a comma-separated string, mirroring how different
// MCP clients encode list parameters.
func ParseStringList(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				out = append(out, strings.TrimSpace(p))
			}
		}
		return out
	default:
		return nil
	}
}
