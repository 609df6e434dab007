package steady

import (
	"fmt"
	"strings"
	"time"
)

// Reference-date sanity bounds enforced before any scoring happens.
const (
	maxFutureDays = 7
	maxPastDays   = 365
)

// IsValidUserID reports whether an identifier is acceptable as a user
// key: nonempty, at most 64 characters, alphanumeric plus hyphen and
// underscore. Validation happens entirely before the engine runs.
func IsValidUserID(userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" || len(userID) > 64 {
		return false
	}
	for _, r := range userID {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// ValidateRequest checks a user identifier and an optional reference
// date string, and returns every problem found as a plain error
// string. An empty list means the request may reach the engine. When
// rawDate is empty the current instant is used as the reference.
func ValidateRequest(userID, rawDate string, now time.Time) (time.Time, []string) {
	var errs []string

	if strings.TrimSpace(userID) == "" {
		errs = append(errs, "user id is required")
	} else if !IsValidUserID(userID) {
		errs = append(errs, "user id may only contain letters, digits, hyphens and underscores")
	}

	reference := now
	if rawDate != "" {
		parsed, err := parseReferenceDate(rawDate)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("invalid reference date %q", rawDate))
		case parsed.After(now.AddDate(0, 0, maxFutureDays)):
			errs = append(errs, "reference date is more than 7 days in the future")
		case parsed.Before(now.AddDate(0, 0, -maxPastDays)):
			errs = append(errs, "reference date is more than 1 year in the past")
		default:
			reference = parsed
		}
	}

	return reference, errs
}

// parseReferenceDate accepts a plain calendar date or a full RFC 3339
// timestamp.
func parseReferenceDate(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
